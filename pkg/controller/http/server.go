package http

import (
	"net/http"
	"time"

	"github.com/acreflow/leadflow/pkg/usecase"
	"github.com/acreflow/leadflow/pkg/utils/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api/leads", func(r chi.Router) {
		r.Post("/", s.createLead)
		r.Get("/", s.listLeads)

		r.Route("/{leadID}", func(r chi.Router) {
			r.Get("/", s.getLead)
			r.Patch("/", s.updateLead)
			r.Delete("/", s.deleteLead)

			r.Post("/assign", s.assignLead)
			r.Post("/forward", s.forwardLead)
			r.Post("/complete", s.completeLead)
			r.Post("/reject", s.rejectLead)
			r.Post("/progress", s.setProgress)

			r.Route("/followups", func(r chi.Router) {
				r.Get("/", s.listFollowUps)
				r.Post("/", s.addFollowUp)
				r.Post("/{index}/hide", s.hideFollowUp)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
