package http

import (
	"log/slog"
	"net/http"
)

// HomeHandler serves the public landing page.
type HomeHandler struct {
	Logger *slog.Logger
}

func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render(w, h.Logger, http.StatusOK, "welcome.html.tmpl", nil)
}
