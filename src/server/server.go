package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	cfg "portfolio/src/configuration"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter registers every route on a fresh gin engine. tracez may be nil.
func NewRouter(config cfg.HttpServerProperties, handler *AppHandler, tracez http.Handler) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(), requestMetrics(), gin.CustomRecovery(recoverPanic))

	corsConfig := cors.Config{
		AllowOrigins:  config.AllowOrigins,
		AllowMethods:  []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept", "Accept-Encoding", "Cache-Control", "User-Agent"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	if config.Pprof {
		pprof.Register(router)
	}

	router.GET("/health", handler.GetHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if tracez != nil {
		router.GET("/tracez", gin.WrapH(tracez))
	}

	api := router.Group("/api")
	api.POST("/contact", handler.PostContact)
	api.POST("/newsletter", handler.PostNewsletter)

	gallery := api.Group("/gallery")
	gallery.GET("/folders", handler.GetFolders)
	gallery.GET("/photos", handler.GetPhotos)
	gallery.GET("/categories", handler.GetCategories)

	router.NoRoute(func(ctx *gin.Context) { ctx.JSON(http.StatusNotFound, gin.H{}) })
	return router
}

// RunServer serves until ctx is cancelled and then drains in-flight requests.
func RunServer(ctx context.Context, config cfg.HttpServerProperties, handler *AppHandler) error {
	gin.SetMode(gin.ReleaseMode)

	tracez, cleanup, err := initializeTracing(config.Name)
	if err != nil {
		return err
	}
	defer cleanup()

	router := NewRouter(config, handler, tracez)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", config.Port),
		Handler:      otelhttp.NewHandler(router, config.Name),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", config.ShutdownTimeout).Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
