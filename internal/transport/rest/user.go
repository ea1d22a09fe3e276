package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/domain"
	"github.com/heartmarshall/storyflow-backend/internal/service/user"
)

type userService interface {
	Register(ctx context.Context, input user.RegisterInput) (*domain.User, error)
	GetMe(ctx context.Context) (*domain.User, error)
	SetUserRole(ctx context.Context, targetUserID uuid.UUID, role domain.UserRole) (*domain.User, error)
	ListUsers(ctx context.Context, role *domain.UserRole, limit, offset int) ([]domain.User, int, error)
}

// UserHandler serves the local user directory.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

type registerRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type setRoleRequest struct {
	Role string `json:"role"`
}

// Register handles POST /api/users/me. It records (or refreshes) the
// caller's profile under the role carried by the token.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	u, err := h.svc.Register(r.Context(), user.RegisterInput{Email: req.Email, Name: req.Name})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// Me handles GET /api/users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetMe(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// List handles GET /api/admin/users?role=&limit=&offset=.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := parsePage(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var role *domain.UserRole
	if v := r.URL.Query().Get("role"); v != "" {
		ur := domain.UserRole(v)
		if !ur.IsValid() {
			handleError(h.log, w, r, domain.NewValidationError("role", "unknown role"))
			return
		}
		role = &ur
	}

	users, total, err := h.svc.ListUsers(r.Context(), role, p.limit, p.offset)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]userResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}
	writeJSON(w, http.StatusOK, listResponse[userResponse]{Items: out, Total: total})
}

// SetRole handles PATCH /api/admin/users/{id}/role.
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req setRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	u, err := h.svc.SetUserRole(r.Context(), id, domain.UserRole(req.Role))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}
