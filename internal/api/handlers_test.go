package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pathakanu/linkLater/internal/model"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type fakeReminders struct {
	added  []model.Reminder
	addErr error
}

func (f *fakeReminders) Add(_ context.Context, text string, at time.Time) (model.Reminder, error) {
	r := model.Reminder{Text: text, Time: at}
	if f.addErr != nil {
		return r, f.addErr
	}
	f.added = append(f.added, r)
	return r, nil
}

func (f *fakeReminders) List(context.Context) ([]model.Reminder, error) { return f.added, nil }
func (f *fakeReminders) Now() time.Time                                { return testNow }

func newTestServer(t *testing.T) (*httptest.Server, *fakeReminders) {
	t.Helper()
	reminders := &fakeReminders{}
	webhook := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "webhook")
	})
	srv := httptest.NewServer(NewRouter(NewHandlers(reminders, time.Hour, log.New(io.Discard, "", 0)), webhook))
	t.Cleanup(srv.Close)
	return srv, reminders
}

func postShare(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/share", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /share: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestShareDefaultTime(t *testing.T) {
	t.Parallel()
	srv, reminders := newTestServer(t)

	resp := postShare(t, srv, `{"text":"https://go.dev/blog"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out ShareResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Message != "Successfully created a Reminder!" || out.Reminder.Label != "13:00" {
		t.Fatalf("unexpected response %+v", out)
	}
	if len(reminders.added) != 1 || !reminders.added[0].Time.Equal(testNow.Add(time.Hour)) {
		t.Fatalf("unexpected reminders %+v", reminders.added)
	}
}

func TestShareWithTime(t *testing.T) {
	t.Parallel()
	srv, reminders := newTestServer(t)

	resp := postShare(t, srv, `{"text":"stand up","time":"09:15"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	want := time.Date(2026, 10, 16, 9, 15, 0, 0, time.UTC)
	if !reminders.added[0].Time.Equal(want) {
		t.Fatalf("time = %v, want %v", reminders.added[0].Time, want)
	}
}

func TestShareRejectsBadInput(t *testing.T) {
	t.Parallel()
	srv, reminders := newTestServer(t)

	for _, body := range []string{`{"text":""}`, `{"text":"   "}`, `{"text":"x","time":"whenever"}`, `not json`,
		`{"text":"x","time":"2026-10-15T11:00:00Z"}`, `{"text":"x","time":"in 9999999 days"}`} {
		if resp := postShare(t, srv, body); resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", body, resp.StatusCode)
		}
	}
	if len(reminders.added) != 0 {
		t.Fatalf("rejected shares must not create reminders")
	}
}

func TestShareStoreFailure(t *testing.T) {
	t.Parallel()
	srv, reminders := newTestServer(t)
	reminders.addErr = errors.New("disk full")

	if resp := postShare(t, srv, `{"text":"x"}`); resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
}

func TestListReminders(t *testing.T) {
	t.Parallel()
	srv, reminders := newTestServer(t)
	reminders.added = []model.Reminder{{Text: "legacy"}, {Text: "soon", Time: testNow.Add(time.Hour)}}

	resp, err := http.Get(srv.URL + "/reminders")
	if err != nil {
		t.Fatalf("GET /reminders: %v", err)
	}
	defer resp.Body.Close()

	var out []ReminderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[0].Label != "Unknown time" || out[1].Label != "13:00" {
		t.Fatalf("unexpected list %+v", out)
	}
}

func TestRoutes(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if strings.TrimSpace(string(body)) != "OK" {
		t.Fatalf("health body = %q", body)
	}

	resp, err = http.Post(srv.URL+"/twilio/webhook", "application/x-www-form-urlencoded", strings.NewReader("Body=hi"))
	if err != nil {
		t.Fatalf("POST webhook: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "webhook" {
		t.Fatalf("webhook not routed: %q", body)
	}

	resp, err = http.Get(srv.URL + "/share")
	if err != nil {
		t.Fatalf("GET /share: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("GET /share status = %d, want 405", resp.StatusCode)
	}
}
