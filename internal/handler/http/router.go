package http

import (
	"log/slog"
	"os"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/handler/http/middleware"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	env string,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	reconcilerHandler ReconcilerHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "sistem-absensi"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/events", attendanceHandler.RecordEvent)

				// Supervisor and above
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSupervision)
					r.Get("/", attendanceHandler.List)
					r.Get("/today", attendanceHandler.TodayStatus)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Submit)
				r.Get("/history", leaveHandler.History)

				// Approval chain only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Get("/pending", leaveHandler.Pending)
					r.Post("/{id}/decision", leaveHandler.Decide)
				})
			})

			// Management only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManagement)
				r.Get("/reconciler/status", reconcilerHandler.Status)
			})
		})
	})
	return r
}
