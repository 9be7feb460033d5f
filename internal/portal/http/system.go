package http

import (
	"net/http"
	"time"

	"github.com/parkmoor/clubhouse/internal/portal/session"
	"github.com/parkmoor/clubhouse/internal/portal/store"
	"github.com/parkmoor/clubhouse/pkg/httpx"
)

type healthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *healthChecks `json:"checks,omitempty"`
}

type healthChecks struct {
	Database string `json:"database"`
	Sessions string `json:"sessions"`
}

// LivezHandler reports process liveness. It returns 200 whenever the
// process is up, independent of backing stores.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, healthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler reports readiness to serve traffic, checking the
// credential store and the session store.
func ReadyzHandler(startTime time.Time, version string, st store.Store, sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &healthChecks{
			Database: "ok",
			Sessions: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if err := sessions.Ping(r.Context()); err != nil {
			checks.Sessions = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, healthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
