package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/parkmoor/clubhouse/internal/portal/service"
	"github.com/parkmoor/clubhouse/internal/portal/session"
	"github.com/parkmoor/clubhouse/internal/portal/store"
	"github.com/parkmoor/clubhouse/pkg/httpx"
	"github.com/parkmoor/clubhouse/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	tokens       *session.TokenManager
	cookies      session.CookieOptions
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store           store.Store
	sessions        session.Store
	SignupService   *service.SignupService
	LoginService    *service.LoginService
	SessionService  *service.SessionService
	ArtifactService *service.ArtifactService
	ActivityService *service.ActivityService
}

func NewRouter(
	tokens *session.TokenManager,
	cookies session.CookieOptions,
	buildVersion string,
	st store.Store,
	sessions session.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		tokens:       tokens,
		cookies:      cookies,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		sessions:     sessions,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerPublic()
	r.registerAccount()
	r.registerDashboard()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerPublic() {
	home := &HomeHandler{Logger: r.logger}
	r.Mux.Handle("GET /{$}",
		httpx.Chain(home,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAccount() {
	signupHandler := &SignupHandler{
		SignupService: r.SignupService,
		Logger:        r.logger,
	}

	// GET /signup - lenient rate limit (just displays the form)
	r.Mux.Handle("GET /signup",
		httpx.Chain(http.HandlerFunc(signupHandler.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /signup - strict rate limit (account creation)
	r.Mux.Handle("POST /signup",
		httpx.Chain(http.HandlerFunc(signupHandler.HandlePost),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	loginHandler := &LoginHandler{
		LoginService: r.LoginService,
		Tokens:       r.tokens,
		Cookies:      r.cookies,
		Logger:       r.logger,
	}

	// GET /login - lenient rate limit (just displays the form)
	r.Mux.Handle("GET /login",
		httpx.Chain(http.HandlerFunc(loginHandler.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /login - strict rate limit (authentication attempts)
	// Note: Rate limited by IP + username form field to prevent brute force
	r.Mux.Handle("POST /login",
		httpx.Chain(http.HandlerFunc(loginHandler.HandlePost),
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)

	logoutHandler := &LogoutHandler{
		SessionService: r.SessionService,
		Tokens:         r.tokens,
		Cookies:        r.cookies,
		Logger:         r.logger,
	}

	// GET /logout - works with or without a live session
	r.Mux.Handle("GET /logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerDashboard() {
	requireSession := RequireSession(r.tokens, r.SessionService, r.logger)

	dashboardHandler := &DashboardHandler{
		ArtifactService: r.ArtifactService,
		ActivityService: r.ActivityService,
		Logger:          r.logger,
	}

	// GET /dashboard - session gated, lenient rate limit by user
	r.Mux.Handle("GET /dashboard",
		httpx.Chain(dashboardHandler,
			requireSession,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	uploadHandler := &UploadHandler{
		ArtifactService: r.ArtifactService,
		Logger:          r.logger,
	}

	// POST /upload - session gated, moderate rate limit by user
	r.Mux.Handle("POST /upload",
		httpx.Chain(uploadHandler,
			requireSession,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.sessions),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
