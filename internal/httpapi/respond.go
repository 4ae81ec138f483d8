package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sandeepkv93/todod/internal/auth"
	"github.com/sandeepkv93/todod/internal/backend"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/taskview"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorResponse{Error: message})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// respondWithErr maps domain errors to status codes and logs the rest.
func (s *Server) respondWithErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, backend.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		respondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrEmailTaken):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrPasswordMismatch),
		errors.Is(err, auth.ErrInvalidRegistration),
		errors.Is(err, model.ErrTitleRequired),
		errors.Is(err, model.ErrInvalidStatus),
		errors.Is(err, model.ErrInvalidDate),
		errors.Is(err, taskview.ErrInvalidFilter):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.WithError(err).WithField("path", r.URL.Path).Error("internal error")
		respondWithError(w, http.StatusInternalServerError, "internal error")
	}
}
