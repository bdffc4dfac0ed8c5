package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/planor/portal-api/internal/business/maintenance"
	"github.com/planor/portal-api/internal/business/pricelist"
	"github.com/planor/portal-api/internal/platform/blob"
	"github.com/planor/portal-api/internal/platform/config"
	firestoreclient "github.com/planor/portal-api/internal/platform/firestore"
	apirouter "github.com/planor/portal-api/internal/platform/http"
	"github.com/planor/portal-api/internal/repository"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}

	initLogger(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	firestoreClient, credsSource, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("firestore init")
	}
	defer firestoreClient.Close()

	if err := firestoreclient.Ping(ctx, firestoreClient); err != nil {
		log.Fatal().Err(err).Msg("firestore ping")
	}
	log.Info().
		Str("project", cfg.FirebaseProjectID).
		Str("credentials", credsSource).
		Msg("connected to Firestore")

	buildingRepo := repository.NewBuildingRepository(firestoreClient)
	pricelistRepo := repository.NewPricelistRepository(firestoreClient)
	propertyRepo := repository.NewPropertyRepository(firestoreClient)
	clientRepo := repository.NewClientRepository(firestoreClient)

	fetcher := blob.New(nil, blob.Config{AccessToken: cfg.BlobAccessToken})
	ingestSvc := pricelist.NewService(fetcher, pricelistRepo, buildingRepo)
	calculator := maintenance.NewCalculator(buildingRepo, pricelistRepo)

	router := apirouter.NewRouter(buildingRepo, pricelistRepo, propertyRepo, clientRepo, ingestSvc, calculator, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server listening")

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server exited")
}

func initLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	if parsed, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(parsed)
	}
}
