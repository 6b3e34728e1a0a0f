package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stylistapi/config"
	"stylistapi/controllers"
	"stylistapi/services"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	err := sentry.Init(sentry.ClientOptions{
		// Set via the SENTRY_DSN environment variable; empty disables reporting.
		Dsn:         os.Getenv("SENTRY_DSN"),
		Environment: cfg.Env,
		Release:     "stylistapi@1.0.0",
		Debug:       false,
		// Set TracesSampleRate to 1.0 to capture 100%
		// of transactions for performance monitoring.
		// We recommend adjusting this value in production,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	defer sentry.Recover()
	defer sentry.Flush(2 * time.Second)

	store := services.NewNotionService(cfg.NotionAPIKey, services.StoreDatabases{
		Wardrobe:       cfg.DBWardrobe,
		StyleInspo:     cfg.DBStyleInspo,
		OutfitRequests: cfg.DBOutfitRequests,
		MyOutfits:      cfg.DBMyOutfits,
		WornToday:      cfg.DBWornToday,
	})
	stylist := services.NewGoogleLLMStylist(cfg.GoogleAPIKey)
	alerts := services.NewAlertService()
	outfits := services.NewOutfitService(store, stylist, alerts)

	poller := services.NewPoller(store, outfits, alerts)
	poller.Start(cfg.PollInterval)

	e := controllers.SetupServer(store, poller, cfg.NotionWebhookSecret)
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(10)))
	e.Use(middleware.Logger())
	e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))

	alerts.ServiceStarted(cfg.Env)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down..")

	poller.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
