package main

import (
	"context"
	"log"
	"os"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/dchamindu826/norcal-dubs/internal/auth"
	"github.com/dchamindu826/norcal-dubs/internal/config"
	apphttp "github.com/dchamindu826/norcal-dubs/internal/http"
	"github.com/dchamindu826/norcal-dubs/internal/http/handlers"
	"github.com/dchamindu826/norcal-dubs/internal/jsonstore"
	"github.com/dchamindu826/norcal-dubs/internal/modules/admins"
	"github.com/dchamindu826/norcal-dubs/internal/modules/music"
	"github.com/dchamindu826/norcal-dubs/internal/modules/orders"
	"github.com/dchamindu826/norcal-dubs/internal/modules/products"
	"github.com/dchamindu826/norcal-dubs/internal/modules/reviews"
	"github.com/dchamindu826/norcal-dubs/internal/modules/site"
	"github.com/dchamindu826/norcal-dubs/internal/notify"
	"github.com/dchamindu826/norcal-dubs/internal/storage"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	store, err := jsonstore.Open(cfg.DataFile)
	if err != nil {
		log.Fatalf("failed to open data file: %v", err)
	}

	ctx := context.Background()
	files, err := storage.FromConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}
	logger.Info("storage ready", "driver", files.Driver)

	var notifier notify.Service
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		notifier, err = notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("failed to init telegram bot: %v", err)
		}
	} else {
		logger.Warn("telegram not configured, order notifications disabled")
		notifier = &notify.Mock{}
	}

	tokens := auth.NewTokens(cfg.JWTSecret)

	orderSvc := orders.NewService(orders.NewRepo(store), notifier, files.Storage, logger)
	adminSvc := admins.NewService(store)
	siteSvc := site.NewService(store, cfg.UploadDir)

	r := apphttp.NewRouter(logger, apphttp.Deps{
		Cfg:      cfg,
		Tokens:   tokens,
		Orders:   handlers.NewOrdersHandler(orderSvc, files.Storage),
		Products: handlers.NewProductsHandler(products.NewRepo(store), files.Storage),
		Reviews:  handlers.NewReviewsHandler(reviews.NewRepo(store)),
		Music:    handlers.NewMusicHandler(music.NewRepo(store), files.Storage),
		Auth:     handlers.NewAuthHandler(adminSvc, tokens),
		Site:     handlers.NewSiteHandler(siteSvc),
	})

	logger.Info("listening", "addr", cfg.Addr)
	_ = r.Run(cfg.Addr)
}
