package bot

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pathakanu/linkLater/internal/dialog"
	"github.com/pathakanu/linkLater/internal/model"
	myopenai "github.com/pathakanu/linkLater/internal/openai"
)

// Reminders is the part of the reminder service the bot drives.
type Reminders interface {
	Add(ctx context.Context, text string, at time.Time) (model.Reminder, error)
	List(ctx context.Context) ([]model.Reminder, error)
	Now() time.Time
}

// Bot turns inbound WhatsApp messages into reminders. Any text that is not a command is
// treated as shared content; the bot then asks when to remind about it.
type Bot struct {
	reminders    Reminders
	openAI       *myopenai.Client
	defaultDelay time.Duration
	state        *conversationStore
	logger       *log.Logger
}

// New creates a Bot. openAI may be an inert client.
func New(reminders Reminders, openAI *myopenai.Client, defaultDelay time.Duration, logger *log.Logger) *Bot {
	return &Bot{
		reminders:    reminders,
		openAI:       openAI,
		defaultDelay: defaultDelay,
		state:        newConversationStore(),
		logger:       logger,
	}
}

// Handler returns the HTTP handler for incoming Twilio messages.
func (b *Bot) Handler() http.HandlerFunc {
	return b.handleIncomingMessage
}

// handleIncomingMessage processes Twilio webhook POST requests.
func (b *Bot) handleIncomingMessage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		b.logger.Printf("webhook: parse error: %v", err)
		b.writeTwilioResponse(w, "Sorry, I couldn't understand that request.")
		return
	}

	from := r.FormValue("From")
	body := strings.TrimSpace(r.FormValue("Body"))
	if from == "" || body == "" {
		b.writeTwilioResponse(w, "Send me a link or a note and I'll remind you about it later.")
		return
	}

	userID := sanitizeWhatsAppNumber(from)
	if draft, ok := b.state.Take(userID); ok {
		b.writeTwilioResponse(w, b.handleTimeResponse(r.Context(), userID, draft, body))
		return
	}

	switch b.determineIntent(r.Context(), body, strings.ToLower(body)) {
	case myopenai.IntentListReminders:
		list := b.listReminders(r.Context())
		if list == "" {
			b.writeTwilioResponse(w, "No items added yet. Share a link with me to get started!")
			return
		}
		b.writeTwilioResponse(w, list)
	case myopenai.IntentHelp:
		b.writeTwilioResponse(w, helpResponse())
	default:
		draft := *dialog.NewDraft(body, b.reminders.Now(), b.defaultDelay)
		b.state.SetDraft(userID, draft)
		b.writeTwilioResponse(w, askForTime(draft))
	}
}

func (b *Bot) determineIntent(ctx context.Context, message, lowerMessage string) myopenai.Intent {
	if isListRequest(lowerMessage) {
		return myopenai.IntentListReminders
	}
	if isHelpRequest(lowerMessage) {
		return myopenai.IntentHelp
	}
	if !b.openAI.Enabled() {
		return myopenai.IntentAddReminder
	}

	intent, err := b.openAI.ClassifyIntent(ctx, message)
	if err != nil {
		if !errors.Is(err, myopenai.ErrClientNotInitialised) {
			b.logger.Printf("intent classification error: %v", err)
		}
		return myopenai.IntentAddReminder
	}

	switch intent {
	case myopenai.IntentListReminders, myopenai.IntentHelp:
		return intent
	default:
		return myopenai.IntentAddReminder
	}
}

// handleTimeResponse completes a pending draft with the time the user replied with.
// The draft has already been taken from the conversation store; it is put back when the
// user has to answer again.
func (b *Bot) handleTimeResponse(ctx context.Context, userID string, draft dialog.Draft, reply string) string {
	if isCancelRequest(strings.ToLower(reply)) {
		return "Okay, I won't remind you about that."
	}

	now := b.reminders.Now()
	at, err := dialog.FutureTime(reply, now, draft.Time)
	switch {
	case errors.Is(err, dialog.ErrPastTime):
		b.state.Restore(userID, draft)
		return "That time has already passed. " + askForTime(draft)
	case err != nil:
		b.state.Restore(userID, draft)
		return "I couldn't read that time. " + askForTime(draft)
	}
	draft.Time = at

	text, at, ok := draft.Confirm()
	if !ok {
		return "I lost track of that reminder. Please send it again."
	}

	reminder, err := b.reminders.Add(ctx, text, at)
	if err != nil {
		b.logger.Printf("add reminder: %v", err)
		return "I couldn't save the reminder, but I'll still try to notify you."
	}
	return fmt.Sprintf("Successfully created a Reminder! I'll remind you about %q at %s.", reminder.Text, reminder.Label(now))
}

// listReminders returns a human-readable list of stored reminders.
func (b *Bot) listReminders(ctx context.Context) string {
	reminders, err := b.reminders.List(ctx)
	if err != nil {
		b.logger.Printf("list reminders error: %v", err)
		return ""
	}
	if len(reminders) == 0 {
		return ""
	}

	now := b.reminders.Now()
	var sb strings.Builder
	sb.WriteString("Here are your reminders:\n")
	for i, r := range reminders {
		sb.WriteString(fmt.Sprintf("%d. %s (Reminder scheduled for %s)\n", i+1, r.Text, r.Label(now)))
	}
	return sb.String()
}

func (b *Bot) writeTwilioResponse(w http.ResponseWriter, message string) {
	twiml := struct {
		XMLName xml.Name `xml:"Response"`
		Message string   `xml:"Message"`
	}{
		Message: message,
	}

	w.Header().Set("Content-Type", "application/xml")
	if err := xml.NewEncoder(w).Encode(twiml); err != nil {
		b.logger.Printf("twilio response encode: %v", err)
	}
}

func askForTime(draft dialog.Draft) string {
	return fmt.Sprintf("When should I remind you? Reply with a time like 18:30 or \"in 2 hours\", or \"ok\" for %s.", draft.Time.Format("15:04"))
}

func isListRequest(body string) bool {
	return strings.Contains(body, "show my reminders") ||
		strings.Contains(body, "list my reminders") ||
		strings.Contains(body, "show reminders") ||
		strings.Contains(body, "list reminders") ||
		body == "list"
}

func isHelpRequest(body string) bool {
	return body == "help" || body == "?"
}

func isCancelRequest(body string) bool {
	return body == "cancel" || body == "never mind" || body == "nevermind"
}

func sanitizeWhatsAppNumber(from string) string {
	// Twilio prepends whatsapp: to the number.
	return strings.TrimPrefix(from, "whatsapp:")
}

func helpResponse() string {
	return "Share a link or send any note and I'll ask when to remind you.\n- Reply \"18:30\", \"in 20 minutes\" or \"ok\" to pick the time\n- \"List reminders\" shows what's scheduled\n- \"Cancel\" drops a reminder you haven't timed yet"
}

// conversationStore holds one pending draft per sender. Drafts are stored by value so
// a handler never shares one with another request.
type conversationStore struct {
	mu     sync.Mutex
	drafts map[string]dialog.Draft
}

func newConversationStore() *conversationStore {
	return &conversationStore{
		drafts: make(map[string]dialog.Draft),
	}
}

func (c *conversationStore) SetDraft(userID string, draft dialog.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drafts[userID] = draft
}

// Take removes and returns the sender's draft, so only one reply can complete it.
func (c *conversationStore) Take(userID string) (dialog.Draft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	draft, ok := c.drafts[userID]
	if ok {
		delete(c.drafts, userID)
	}
	return draft, ok
}

// Restore puts a taken draft back unless the sender has started a new one meanwhile.
func (c *conversationStore) Restore(userID string, draft dialog.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.drafts[userID]; !ok {
		c.drafts[userID] = draft
	}
}
