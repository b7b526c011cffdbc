package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cardscan/api/internal/config"
	"cardscan/api/internal/httpserver"
	"cardscan/api/internal/logging"
	"cardscan/api/internal/ocr"
	"cardscan/api/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is empty")
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engines, err := ocr.NewEngines(ctx, cfg)
	if err != nil {
		logger.Fatal("init engines", zap.Error(err))
	}
	defer func() { _ = engines.Close() }()
	engine, err := engines.GetEngine(cfg.LLMProvider)
	if err != nil {
		logger.Fatal("select engine", zap.Error(err))
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		logger.Fatal("telegram", zap.Error(err))
	}
	bot.Debug = false

	r := &telegram.Router{
		Bot:     bot,
		Scanner: ocr.NewScanner(engine, logger),
		Region:  cfg.DefaultRegion,
		Log:     logger.Named("telegram"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	addr := "0.0.0.0:" + cfg.Port
	g, gctx := errgroup.WithContext(ctx)

	// webhook when WEBHOOK_URL is set, long polling otherwise
	if webhookURL := strings.TrimSpace(cfg.WebhookURL); webhookURL != "" {
		path := "/webhook/" + shortHash(bot.Token)
		if err := registerWebhook(bot, strings.TrimRight(webhookURL, "/")+path); err != nil {
			logger.Fatal("set webhook", zap.Error(err))
		}
		mux.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
			upd, err := bot.HandleUpdate(req)
			if err != nil {
				logger.Warn("bad webhook update", zap.Error(err))
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			// ack Telegram right away; the scan runs in the background
			go r.HandleUpdate(gctx, *upd)
			w.WriteHeader(http.StatusOK)
		})
		logger.Info("webhook mode", zap.String("path", path))
	} else {
		if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			logger.Warn("delete webhook", zap.Error(err))
		}
		g.Go(func() error {
			runPolling(gctx, bot, logger, func(upd tgbotapi.Update) {
				r.HandleUpdate(gctx, upd)
			})
			return nil
		})
		logger.Info("polling mode")
	}

	g.Go(func() error { return httpserver.Run(gctx, addr, mux, logger) })
	if err := g.Wait(); err != nil {
		logger.Fatal("bot stopped", zap.Error(err))
	}
}

func registerWebhook(bot *tgbotapi.BotAPI, public string) error {
	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		return err
	}
	wh.DropPendingUpdates = true
	_, err = bot.Request(wh)
	return err
}

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") {
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return time.Second
}

func runPolling(ctx context.Context, bot *tgbotapi.BotAPI, logger *zap.Logger, handle func(tgbotapi.Update)) {
	offset := 0
	const maxDelay = 15 * time.Second

	for {
		select {
		case <-ctx.Done():
			logger.Info("polling stopped")
			return
		default:
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := min(retryDelayFromError(err), maxDelay)
			logger.Warn("polling error", zap.Error(err), zap.Duration("retry_in", d))
			select {
			case <-ctx.Done():
				return
			case <-time.After(d):
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}
	}
}

// shortHash is an FNV-1a digest of the token, used as the webhook path.
func shortHash(s string) string {
	h := uint64(1469598103934665603)
	const prime = 1099511628211
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	return strconv.FormatUint(h, 16)
}
