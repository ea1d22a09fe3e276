package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/storyflow-backend/internal/service/achievement"
)

type achievementService interface {
	ListForUser(ctx context.Context) (*achievement.Summary, error)
}

// AchievementHandler serves the caller's achievement progress.
type AchievementHandler struct {
	svc achievementService
	log *slog.Logger
}

// NewAchievementHandler creates an AchievementHandler.
func NewAchievementHandler(svc achievementService, logger *slog.Logger) *AchievementHandler {
	return &AchievementHandler{svc: svc, log: logger.With("handler", "achievement")}
}

// List handles GET /api/achievements.
func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.ListForUser(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAchievementsResponse(sum))
}
