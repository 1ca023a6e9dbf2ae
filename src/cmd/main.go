package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	app "portfolio/src/app"
	cfg "portfolio/src/configuration"
	"portfolio/src/notify"
	server "portfolio/src/server"

	"github.com/rs/zerolog/log"
)

func main() {
	config := cfg.ReadProperties()
	if err := cfg.SetupLogging(config.LogLevel, config.LogFormat, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("invalid logging configuration")
	}
	log.Info().Stringer("config", config).Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newObjectStore(ctx, config.S3)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create object store client")
	}
	gallery := app.NewGallery(store,
		app.WithThumbnailSuffixes(config.Gallery.ThumbnailSuffixes),
		app.WithWorkers(config.Gallery.Workers),
	)

	mailer, err := notify.NewSendGridMailer(config.Mail.APIKey, config.Mail.Timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("SENDGRID_API_KEY environment variable is required")
	}
	composer := &notify.Composer{
		From:     config.Mail.From,
		Owner:    config.Mail.Owner,
		SiteName: config.Mail.SiteName,
		Author:   config.Mail.Author,
		SiteURL:  config.Mail.SiteURL,
	}

	handler := server.NewHandler(gallery, mailer, composer,
		server.WithGalleryTimeout(config.Server.GalleryTimeout()))
	if err := server.RunServer(ctx, config.Server, handler); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func newObjectStore(ctx context.Context, props cfg.S3Properties) (app.ObjectStore, error) {
	opts := app.StoreOptions{URLExpiry: props.URLExpiry, Timeout: props.ReadTimeout}
	switch props.Provider {
	case cfg.ProviderMinio:
		return app.NewMinioS3Client(props.Host, props.AccessKey, props.SecretKey, props.Bucket, props.UseSSL, opts)
	case cfg.ProviderAWS:
		return app.NewAWSS3Client(ctx, props.Host, props.Region, props.AccessKey, props.SecretKey, props.Bucket, props.UseSSL, opts)
	default:
		return nil, fmt.Errorf("unknown S3 provider %q", props.Provider)
	}
}
