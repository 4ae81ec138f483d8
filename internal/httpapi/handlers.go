package httpapi

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sandeepkv93/todod/internal/auth"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/taskview"
)

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	grant, err := s.auth.Register(r.Context(), req)
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	s.log.WithField("user_id", grant.User.ID).Info("user registered")
	respondWithJSON(w, http.StatusCreated, grant)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	grant, err := s.auth.Login(r.Context(), req)
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, grant)
}

// listTasks returns the user's tasks, optionally only those stored with
// ?status=.
func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	svc := s.tasksFor(r)
	raw := r.URL.Query().Get("status")
	if raw == "" {
		tasks, err := svc.FetchTasks(r.Context())
		if err != nil {
			s.respondWithErr(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, tasks)
		return
	}
	status, err := model.ParseStatus(raw)
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	tasks, err := svc.FetchTasksByStatus(r.Context(), status)
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tasks)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var in model.NewTask
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	task, err := s.tasksFor(r).CreateTask(r.Context(), in)
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, task)
}

func (s *Server) taskSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := taskview.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	tasks, err := s.tasksFor(r).FetchTasks(r.Context())
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, taskview.Summarize(tasks, filter))
}

type weekResponse struct {
	Week taskview.Week    `json:"week"`
	Day  taskview.DayView `json:"day"`
}

// taskWeek lays out the week containing ?date= (default today) with ?today=
// overriding the server's calendar day.
func (s *Server) taskWeek(w http.ResponseWriter, r *http.Request) {
	today, err := s.dateParam(r, "today", s.today())
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	selected, err := s.dateParam(r, "date", today)
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	tasks, err := s.tasksFor(r).FetchTasks(r.Context())
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, weekResponse{
		Week: taskview.WeekOf(tasks, today, selected),
		Day:  taskview.Day(tasks, selected),
	})
}

func (s *Server) taskBuckets(w http.ResponseWriter, r *http.Request) {
	today, err := s.dateParam(r, "today", s.today())
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	tasks, err := s.tasksFor(r).FetchTasks(r.Context())
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, taskview.GroupByDay(tasks, today))
}

type statusRequest struct {
	Status string `json:"status"`
}

func (s *Server) updateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	status, err := model.ParseStatus(req.Status)
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	task, err := s.tasksFor(r).UpdateTaskStatus(r.Context(), mux.Vars(r)["id"], status)
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

type completedRequest struct {
	Completed bool `json:"completed"`
}

func (s *Server) setTaskCompleted(w http.ResponseWriter, r *http.Request) {
	var req completedRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	task, err := s.tasksFor(r).SetTaskCompleted(r.Context(), mux.Vars(r)["id"], req.Completed)
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.tasksFor(r).DeleteTask(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listReminders(w http.ResponseWriter, r *http.Request) {
	filter, err := taskview.ParseReminderFilter(r.URL.Query().Get("type"))
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	reminders, err := s.tasksFor(r).FetchReminders(r.Context())
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	if filter != taskview.ReminderFilterAll {
		reminders = taskview.SummarizeReminders(reminders, filter, s.today()).Visible
	}
	respondWithJSON(w, http.StatusOK, reminders)
}

type readRequest struct {
	IsRead bool `json:"isRead"`
}

func (s *Server) setReminderRead(w http.ResponseWriter, r *http.Request) {
	var req readRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	rem, err := s.tasksFor(r).SetReminderRead(r.Context(), mux.Vars(r)["id"], req.IsRead)
	if err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, rem)
}

func (s *Server) deleteReminder(w http.ResponseWriter, r *http.Request) {
	if err := s.tasksFor(r).DeleteReminder(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.respondWithErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) today() model.Date {
	return model.DateOf(s.Now().Local())
}

func (s *Server) dateParam(r *http.Request, name string, fallback model.Date) (model.Date, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	return model.ParseDate(raw)
}
