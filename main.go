package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pathakanu/linkLater/internal/api"
	"github.com/pathakanu/linkLater/internal/bot"
	"github.com/pathakanu/linkLater/internal/config"
	"github.com/pathakanu/linkLater/internal/linkpreview"
	"github.com/pathakanu/linkLater/internal/notify"
	myopenai "github.com/pathakanu/linkLater/internal/openai"
	"github.com/pathakanu/linkLater/internal/prefs"
	"github.com/pathakanu/linkLater/internal/reminder"
	"github.com/pathakanu/linkLater/internal/store"
	"github.com/pathakanu/linkLater/internal/tui"
	"github.com/pathakanu/linkLater/internal/twilio"
	"github.com/pathakanu/linkLater/internal/worker"
)

func main() {
	var (
		runTUI     bool
		sharedText string
	)
	flag.BoolVar(&runTUI, "tui", false, "Open the terminal UI instead of serving HTTP")
	flag.StringVar(&sharedText, "share", "", "Text to pre-fill the add-reminder dialog with (implies -tui)")
	flag.Parse()
	if sharedText != "" {
		runTUI = true
	}

	logger := log.New(os.Stdout, "[linkLater] ", log.LstdFlags|log.Lshortfile)
	cfg := config.Load()

	if runTUI {
		// The terminal belongs to the UI; keep logs out of it.
		logFile, err := os.OpenFile("linklater.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.Fatalf("open log file: %v", err)
		}
		defer logFile.Close()
		logger.SetOutput(logFile)
		log.SetOutput(logFile)
	}

	kv, err := prefs.Open(cfg, logger)
	if err != nil {
		logger.Fatalf("prefs init failed: %v", err)
	}
	listStore := store.New(kv, logger)

	scheduler := worker.NewScheduler(cfg.LocalTimezone, logger)
	openAIClient := myopenai.New(cfg.OpenAIAPIKey)

	opts := []reminder.Option{reminder.WithRemovalPolicy(store.ParseRemovalPolicy(cfg.RemovePolicy))}
	if titler := buildTitler(cfg, openAIClient); len(titler) > 0 {
		opts = append(opts, reminder.WithTitler(titler))
	}
	service := reminder.New(listStore, scheduler, buildNotifier(cfg, logger), logger, opts...)

	scheduler.Start()
	defer scheduler.Stop()

	if runTUI {
		changes, unsubscribe := listStore.Subscribe()
		defer unsubscribe()
		if err := tui.Run(tui.NewApp(service, changes, cfg.DefaultDelay, sharedText)); err != nil {
			logger.Printf("tui: %v", err)
		}
		return
	}

	reminderBot := bot.New(service, openAIClient, cfg.DefaultDelay, logger)
	handlers := api.NewHandlers(service, cfg.DefaultDelay, logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.NewRouter(handlers, reminderBot.Handler()),
	}

	go func() {
		logger.Printf("server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	waitForShutdown(server, logger)
}

func buildNotifier(cfg *config.Config, logger *log.Logger) notify.Notifier {
	notifiers := notify.Multi{notify.NewLogNotifier(logger)}

	if cfg.TwilioAccountSID != "" && cfg.NotifyWhatsAppTo != "" {
		client := twilio.New(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber, logger)
		notifiers = append(notifiers, notify.NewWhatsApp(client, cfg.NotifyWhatsAppTo))
		logger.Printf("notify: WhatsApp delivery to %s enabled", cfg.NotifyWhatsAppTo)
	}

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		telegram, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			logger.Printf("notify: telegram disabled: %v", err)
		} else {
			notifiers = append(notifiers, telegram)
			logger.Printf("notify: Telegram delivery enabled")
		}
	}
	return notifiers
}

func buildTitler(cfg *config.Config, openAIClient *myopenai.Client) reminder.FirstTitle {
	var titlers reminder.FirstTitle
	if cfg.LinkPreview {
		titlers = append(titlers, reminder.LinkTitler(linkpreview.NewFetcher(nil)))
	}
	if openAIClient.Enabled() {
		titlers = append(titlers, reminder.OpenAITitler(openAIClient))
	}
	return titlers
}

func waitForShutdown(server *http.Server, logger *log.Logger) {
	stopCtx := make(chan os.Signal, 1)
	signal.Notify(stopCtx, syscall.SIGINT, syscall.SIGTERM)
	<-stopCtx
	logger.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Printf("server shutdown error: %v", err)
	}
}
