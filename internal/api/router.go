package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the HTTP endpoints. webhook handles inbound Twilio messages and may be nil.
func NewRouter(h *Handlers, webhook http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	r.HandleFunc("/reminders", h.ListReminders).Methods("GET")
	r.HandleFunc("/share", h.Share).Methods("POST")
	if webhook != nil {
		r.Handle("/twilio/webhook", webhook).Methods("POST")
	}
	return r
}
