// Package httpserver is the HTTP edge of the forum: JSON endpoints, live
// event streams over SSE and WebSocket, metrics and health probes.
package httpserver

import (
	"forum-lab/auth"
	"forum-lab/domain"
	"forum-lab/observability"
	"forum-lab/services"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Dependencies struct {
	Log                  *slog.Logger
	Auth                 services.IAuthService
	Forum                services.IForumService
	Notifications        services.INotificationService
	Issuer               *auth.TokenIssuer
	Metrics              *observability.Metrics
	Gatherer             prometheus.Gatherer
	ConnectionBufferSize int
}

// NewRouter wires every route. Event stream routes also accept the token as
// a query parameter.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(deps.Log))
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware(deps.Metrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	authHandler := NewAuthHandler(deps.Log, deps.Auth)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	for _, kind := range []domain.RoomKind{domain.PublicRoom, domain.PrivateRoom} {
		h := NewForumHandler(deps.Log, deps.Forum, kind)
		r.Route(basePath(kind), func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware(deps.Issuer, false))
				r.Post("/", h.CreateRoom)
				r.Get("/", h.ListRooms)
				r.Get("/{roomID}", h.GetRoom)
				r.Delete("/{roomID}", h.DeleteRoom)
				r.Put("/{roomID}/memo", h.UpdateMemo)
				r.Post("/{roomID}/notify", h.SetNotify)
				r.Get("/{roomID}/posts", h.ListPosts)
				r.Get("/{roomID}/posts/search", h.SearchPosts)
				r.Post("/{roomID}/posts", h.CreatePost)
				r.Post("/{roomID}/replies", h.CreateReply)
				if kind == domain.PrivateRoom {
					r.Post("/{roomID}/invitations", h.Invite)
					r.Post("/{roomID}/exit", h.Exit)
				}
			})
			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware(deps.Issuer, true))
				r.Get("/{roomID}/events", h.Events(deps.ConnectionBufferSize))
				r.Get("/{roomID}/ws", h.WebSocket(upgrader, deps.ConnectionBufferSize))
			})
		})
	}

	notificationHandler := NewNotificationHandler(deps.Log, deps.Notifications)
	r.Route("/notifications", func(r chi.Router) {
		r.Use(auth.Middleware(deps.Issuer, false))
		r.Get("/", notificationHandler.List)
		r.Get("/count", notificationHandler.Count)
		r.Post("/read-all", notificationHandler.MarkAllRead)
		r.Post("/{notificationID}/read", notificationHandler.MarkRead)
	})
	return r
}

func basePath(kind domain.RoomKind) string {
	if kind == domain.PrivateRoom {
		return "/privates"
	}
	return "/rooms"
}

// RequestLogger writes one structured line per request once it is served.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// MetricsMiddleware records RED metrics labelled by route pattern.
func MetricsMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if metrics == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			// Route pattern (e.g. /rooms/{roomID}) instead of raw path
			routeCtx := chi.RouteContext(r.Context())
			path := r.URL.Path
			if routeCtx != nil && routeCtx.RoutePattern() != "" {
				path = routeCtx.RoutePattern()
			}

			status := strconv.Itoa(ww.Status())
			metrics.HTTPDuration.WithLabelValues(path, r.Method, status).Observe(time.Since(start).Seconds())
			metrics.HTTPRequests.WithLabelValues(path, r.Method, status).Inc()
		})
	}
}
