package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/parkmoor/clubhouse/internal/portal/service"
	"github.com/parkmoor/clubhouse/internal/portal/session"
	"github.com/parkmoor/clubhouse/pkg/httpx"
)

// LoginHandler renders the login form and establishes sessions.
type LoginHandler struct {
	LoginService *service.LoginService
	Tokens       *session.TokenManager
	Cookies      session.CookieOptions
	Logger       *slog.Logger
}

type loginPage struct {
	Error    string
	Username string
}

// HandleGet renders the login form.
func (h *LoginHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	render(w, h.Logger, http.StatusOK, "login.html.tmpl", loginPage{})
}

// HandlePost authenticates the submitted credentials. On success the
// signed session token is set as a cookie and the browser is sent to
// the dashboard. Failures re-render the form with a single message
// that never says whether the username exists.
func (h *LoginHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	sess, err := h.LoginService.Login(r.Context(), username, password, httpx.IPKeyExtractor(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadCredentials), errors.Is(err, service.ErrValidation):
			render(w, h.Logger, http.StatusUnauthorized, "login.html.tmpl", loginPage{
				Error:    "Invalid username or password.",
				Username: username,
			})
		case errors.Is(err, service.ErrStoreUnavailable):
			h.Logger.Error("login failed", "err", err)
			render(w, h.Logger, http.StatusServiceUnavailable, "login.html.tmpl", loginPage{
				Error:    "Service temporarily unavailable. Please try again.",
				Username: username,
			})
		default:
			h.Logger.Error("login failed", "err", err)
			render(w, h.Logger, http.StatusInternalServerError, "login.html.tmpl", loginPage{
				Error: "Something went wrong. Please try again.",
			})
		}
		return
	}

	token, err := h.Tokens.Mint(sess)
	if err != nil {
		h.Logger.Error("mint session token failed", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	session.SetCookie(w, token, sess.ExpiresAt, h.Cookies)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
