package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/pathakanu/linkLater/internal/dialog"
	"github.com/pathakanu/linkLater/internal/model"
	"github.com/pathakanu/linkLater/internal/reminder"
)

// Reminders is the reminder service as seen by the HTTP layer.
type Reminders interface {
	Add(ctx context.Context, text string, at time.Time) (model.Reminder, error)
	List(ctx context.Context) ([]model.Reminder, error)
	Now() time.Time
}

// Handlers serves the share endpoint and the reminder list.
type Handlers struct {
	reminders    Reminders
	defaultDelay time.Duration
	logger       *log.Logger
}

// NewHandlers creates Handlers.
func NewHandlers(reminders Reminders, defaultDelay time.Duration, logger *log.Logger) *Handlers {
	return &Handlers{reminders: reminders, defaultDelay: defaultDelay, logger: logger}
}

// ShareRequest is what another app hands over when sharing text.
type ShareRequest struct {
	Text string `json:"text"`
	Time string `json:"time,omitempty"`
}

// ReminderResponse is a reminder as rendered for API clients.
type ReminderResponse struct {
	Text  string    `json:"text"`
	Time  time.Time `json:"time"`
	Label string    `json:"label"`
}

// ShareResponse confirms a created reminder.
type ShareResponse struct {
	Reminder ReminderResponse `json:"reminder"`
	Message  string           `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ListReminders returns the stored list in insertion order.
func (h *Handlers) ListReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.reminders.List(r.Context())
	if err != nil {
		h.logger.Printf("api: list reminders: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not read reminders"})
		return
	}

	now := h.reminders.Now()
	out := make([]ReminderResponse, 0, len(reminders))
	for _, rem := range reminders {
		out = append(out, toResponse(rem, now))
	}
	writeJSON(w, http.StatusOK, out)
}

// Share creates a reminder from shared text. The time is optional and defaults
// to the configured delay from now.
func (h *Handlers) Share(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	now := h.reminders.Now()
	draft := dialog.NewDraft(req.Text, now, h.defaultDelay)
	at, err := dialog.FutureTime(req.Time, now, draft.Time)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	draft.Time = at

	text, at, ok := draft.Confirm()
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: reminder.ErrEmptyText.Error()})
		return
	}

	created, err := h.reminders.Add(r.Context(), text, at)
	switch {
	case errors.Is(err, reminder.ErrEmptyText), errors.Is(err, reminder.ErrNoTime):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	case err != nil:
		h.logger.Printf("api: add reminder: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "reminder scheduled but could not be saved"})
		return
	}

	writeJSON(w, http.StatusCreated, ShareResponse{
		Reminder: toResponse(created, now),
		Message:  "Successfully created a Reminder!",
	})
}

func toResponse(r model.Reminder, now time.Time) ReminderResponse {
	return ReminderResponse{Text: r.Text, Time: r.Time, Label: r.Label(now)}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
