package app

import (
	"errors"
	"net/http"

	"github.com/gapfit/gapfit/internal/config"
	"github.com/gapfit/gapfit/pkg/student"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Propagate X-Student-Id header into context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			studentIdHeader := req.Header.Get("X-Student-Id")
			ctx := req.Context()

			if studentIdHeader != "" {
				s, err := deps.StudentService.GetStudent(ctx, studentIdHeader)
				if err != nil {
					if errors.Is(err, student.ErrNoStudent) {
						log.Debugf("student not found: %s", studentIdHeader)
						http.Error(w, "student not found", http.StatusForbidden)
						return
					}
					log.Errorf("failed to get student: %v", err)
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				ctx = student.WithStudent(ctx, s)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
