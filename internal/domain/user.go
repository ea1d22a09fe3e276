package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the local projection of an identity-provider account.
// Only the fields needed for fan-out and display are kept.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Actor is the verified identity performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role UserRole
}
