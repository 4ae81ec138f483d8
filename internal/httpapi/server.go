// Package httpapi serves the task store over HTTP for remote clients.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sandeepkv93/todod/internal/auth"
	"github.com/sandeepkv93/todod/internal/service"
	"github.com/sandeepkv93/todod/internal/storage"
	"github.com/sirupsen/logrus"
)

type Server struct {
	repo   storage.Repository
	auth   *auth.Service
	log    *logrus.Logger
	router *mux.Router

	Now           func() time.Time
	ReminderClock string
}

func NewServer(repo storage.Repository, authSvc *auth.Service, log *logrus.Logger) *Server {
	s := &Server{
		repo:          repo,
		auth:          authSvc,
		log:           log,
		Now:           time.Now,
		ReminderClock: service.DefaultReminderClock,
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.logRequests)
	router.HandleFunc("/healthz", s.health).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", s.register).Methods("POST")
	api.HandleFunc("/auth/login", s.login).Methods("POST")

	protected := api.NewRoute().Subrouter()
	protected.Use(s.requireAuth)
	protected.HandleFunc("/tasks", s.listTasks).Methods("GET")
	protected.HandleFunc("/tasks", s.createTask).Methods("POST")
	protected.HandleFunc("/tasks/summary", s.taskSummary).Methods("GET")
	protected.HandleFunc("/tasks/week", s.taskWeek).Methods("GET")
	protected.HandleFunc("/tasks/buckets", s.taskBuckets).Methods("GET")
	protected.HandleFunc("/tasks/{id}/status", s.updateTaskStatus).Methods("PATCH")
	protected.HandleFunc("/tasks/{id}/completed", s.setTaskCompleted).Methods("PATCH")
	protected.HandleFunc("/tasks/{id}", s.deleteTask).Methods("DELETE")
	protected.HandleFunc("/reminders", s.listReminders).Methods("GET")
	protected.HandleFunc("/reminders/{id}/read", s.setReminderRead).Methods("PATCH")
	protected.HandleFunc("/reminders/{id}", s.deleteReminder).Methods("DELETE")
	return router
}

// ListenAndServe runs until ctx is cancelled, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// tasksFor scopes the store to the authenticated user.
func (s *Server) tasksFor(r *http.Request) *service.Tasks {
	svc := service.NewTasks(s.repo, userIDFrom(r.Context()))
	svc.Now = s.Now
	svc.ReminderClock = s.ReminderClock
	return svc
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
