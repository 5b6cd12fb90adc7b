// The api command runs the substitution-plan HTTP service.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/bszet/subplan"
	"github.com/bszet/subplan/archive"
	"github.com/bszet/subplan/config"
	"github.com/bszet/subplan/handlers"
	"github.com/bszet/subplan/middleware"
	"github.com/bszet/subplan/ocr"
	"github.com/bszet/subplan/reconstruct"
)

func main() {
	cfg := config.Load()
	log := newLogger(cfg)
	slog.SetDefault(log)

	var detector reconstruct.Detector
	client, err := ocr.New(cfg.OCRLanguages)
	switch {
	case errors.Is(err, ocr.ErrOCRNotEnabled):
		log.Warn("OCR support not compiled in, image-only pages will fail")
	case err != nil:
		log.Error("initializing OCR failed", "error", err)
		os.Exit(1)
	default:
		defer client.Close()
		detector = client
	}

	pipeline := subplan.NewPipeline(detector, subplan.Options{
		RowTol: cfg.RowTol,
		DPI:    cfg.RasterDPI,
		Logger: log,
	})

	var store *archive.Store
	if cfg.MinioEndpoint != "" {
		store, err = archive.NewStore(context.Background(), archive.Options{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			UseSSL:    cfg.MinioUseSSL,
			Bucket:    cfg.ArchiveBucket,
		})
		if err != nil {
			log.Error("connecting to archive failed", "error", err)
			os.Exit(1)
		}
	} else {
		log.Warn("no archive endpoint configured, store-pdf disabled")
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	plans := handlers.NewPlanHandler(pipeline, store, log)
	images := handlers.NewImageHandler(cfg.ImagePath, cfg.CacheTTL, cfg.RasterDPI, log)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger(log), middleware.CORS())
	router.GET("/health", handlers.Health)

	api := router.Group("/api/v1", middleware.Auth(cfg.AuthKey))
	api.POST("/parse-pdf", plans.ParsePDF)
	api.POST("/pdf2json", plans.Tables)
	api.POST("/store-pdf", plans.StorePDF)
	api.POST("/pdf2img", images.RenderPDF)
	api.GET("/img/:id", images.GetImage)

	log.Info("listening", "port", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.Production() {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
