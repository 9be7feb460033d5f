package session

import (
	"net/http"
	"time"
)

// CookieName is the session cookie. The __Host- prefix pins it to this
// host over HTTPS with Path=/; plain "session" is used when the
// deployment runs without TLS (dev).
const (
	CookieName    = "__Host-session"
	CookieNameDev = "session"
)

// CookieOptions defines how session cookies are issued.
type CookieOptions struct {
	Secure   bool
	SameSite http.SameSite
}

func (o CookieOptions) name() string {
	if o.Secure {
		return CookieName
	}
	return CookieNameDev
}

func (o CookieOptions) sameSite() http.SameSite {
	if o.SameSite == 0 {
		return http.SameSiteLaxMode
	}
	return o.SameSite
}

// SetCookie issues the session cookie holding the signed token.
func SetCookie(w http.ResponseWriter, token string, expiresAt time.Time, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.name(),
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.sameSite(),
	})
}

// ClearCookie removes the session cookie from the client.
func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.name(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.sameSite(),
	})
}

// ReadCookie extracts the raw session token from the request, trying
// the secure name first.
func ReadCookie(r *http.Request) (string, bool) {
	for _, name := range []string{CookieName, CookieNameDev} {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			return c.Value, true
		}
	}
	return "", false
}
