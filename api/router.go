package api

import (
	"log/slog"

	"drive-upload-services/application/recording"
	"drive-upload-services/application/upload"
	"drive-upload-services/infrastructure/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func newRouter(logger *slog.Logger, metrics *Metrics) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(RequestLog(logger, metrics))
	router.Use(middleware.Recoverer)
	router.Use(CORS)

	router.Get("/health", health)
	router.Get("/metrics", metrics.handler())
	return router
}

// NewLandmarkRouter serves the landmark recording API
func NewLandmarkRouter(svc *recording.Service, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	metrics := &Metrics{}
	router := newRouter(logger, metrics)

	h := &LandmarkHandler{svc: svc, metrics: metrics, logger: logger}
	router.Post("/store-data", h.StoreData)
	return router
}

// NewUploadRouter serves the multi-file upload API and its HTML form
func NewUploadRouter(svc *upload.Service, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	metrics := &Metrics{}
	router := newRouter(logger, metrics)

	h := &UploadHandler{
		svc:             svc,
		defaultFolderID: cfg.Uploads.DefaultFolderID,
		defaultPolicy:   cfg.Uploads.ConflictPolicy,
		maxMemory:       cfg.Server.MultipartMemoryBytes,
		metrics:         metrics,
		logger:          logger,
	}
	router.Get("/", index)
	router.Post("/upload", h.Upload)
	return router
}
