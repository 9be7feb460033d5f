package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/parkmoor/clubhouse/internal/portal/domain"
	"github.com/parkmoor/clubhouse/internal/portal/service"
	"github.com/parkmoor/clubhouse/pkg/httpx"
)

// DashboardHandler renders the authenticated landing page: the user's
// uploaded files and their recent login activity.
type DashboardHandler struct {
	ArtifactService *service.ArtifactService
	ActivityService *service.ActivityService
	Logger          *slog.Logger
}

type dashboardPage struct {
	Username  string
	Artifacts []domain.Artifact
	Events    []domain.LoginEvent
	Notice    string
}

func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	username := httpx.UsernameFromContext(r.Context())
	userID := httpx.UserIDFromContext(r.Context())

	page := dashboardPage{Username: username}

	artifacts, err := h.ArtifactService.List(r.Context(), username)
	switch {
	case errors.Is(err, service.ErrStoreUnavailable):
		h.Logger.Error("list artifacts failed", "username", username, "err", err)
		page.Notice = "File storage is temporarily unavailable."
	case err != nil:
		h.Logger.Error("list artifacts failed", "username", username, "err", err)
		page.Notice = "Could not load your files."
	default:
		page.Artifacts = artifacts
	}

	events, err := h.ActivityService.Recent(r.Context(), userID, 10)
	if err != nil {
		h.Logger.Error("list login events failed", "user_id", userID, "err", err)
	} else {
		page.Events = events
	}

	httpx.NoCache(w)
	render(w, h.Logger, http.StatusOK, "dashboard.html.tmpl", page)
}
