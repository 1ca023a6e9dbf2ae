package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type (
	Properties struct {
		LogLevel  string `env:"LOG_LEVEL" envDefault:"debug"`
		LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

		S3      S3Properties         `envPrefix:"S3_"`
		Server  HttpServerProperties `envPrefix:"HTTP_"`
		Mail    MailProperties       `envPrefix:"MAIL_"`
		Gallery GalleryProperties    `envPrefix:"GALLERY_"`

		// SendGridAPIKey is the name the site has always used for the mail credential.
		SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	}

	HttpServerProperties struct {
		Name            string        `env:"NAME" envDefault:"portfolio"`
		Port            string        `env:"PORT" envDefault:"8088"`
		ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
		WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
		AllowOrigins    []string      `env:"ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:3000"`
		Pprof           bool          `env:"PPROF" envDefault:"false"`
	}

	S3Properties struct {
		Provider    string        `env:"PROVIDER" envDefault:"minio"`
		Host        string        `env:"HOST" envDefault:"localhost:9000"`
		Region      string        `env:"REGION" envDefault:"us-east-1"`
		AccessKey   string        `env:"ACCESS_KEY"`
		SecretKey   string        `env:"SECRET_KEY"`
		Bucket      string        `env:"BUCKET" envDefault:"portfolio"`
		UseSSL      bool          `env:"USE_SSL" envDefault:"true"`
		ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
		URLExpiry   time.Duration `env:"URL_EXPIRY" envDefault:"1h"`
	}

	MailProperties struct {
		APIKey   string        `env:"API_KEY"`
		From     string        `env:"FROM" envDefault:"tributestream@tributestream.com"`
		Owner    string        `env:"OWNER" envDefault:"tributestream@tributestream.com"`
		SiteName string        `env:"SITE_NAME" envDefault:"Austin's Muses"`
		Author   string        `env:"AUTHOR" envDefault:"Austin Bryan Sanchez"`
		SiteURL  string        `env:"SITE_URL" envDefault:"austinsart.com"`
		Timeout  time.Duration `env:"TIMEOUT" envDefault:"10s"`
	}

	GalleryProperties struct {
		ThumbnailSuffixes []string `env:"THUMBNAIL_SUFFIXES" envSeparator:"," envDefault:"_200x200,_400x400,_300x300"`
		Workers           int      `env:"WORKERS" envDefault:"8"`
	}
)

const (
	ProviderMinio = "minio"
	ProviderAWS   = "aws"
)

// LoadProperties reads an optional .env file and then the process environment.
func LoadProperties(envFiles ...string) (*Properties, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	config := &Properties{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if config.Mail.APIKey == "" {
		config.Mail.APIKey = config.SendGridAPIKey
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// GalleryTimeout is the budget of one gallery request: the write timeout less
// a margin for encoding and writing the response.
func (h HttpServerProperties) GalleryTimeout() time.Duration {
	const margin = 2 * time.Second
	if h.WriteTimeout <= 2*margin {
		return h.WriteTimeout / 2
	}
	return h.WriteTimeout - margin
}

func ReadProperties() *Properties {
	config, err := LoadProperties()
	if err != nil {
		panic(fmt.Errorf("read config error: %w", err))
	}
	return config
}

func (p *Properties) validate() error {
	switch p.S3.Provider {
	case ProviderMinio, ProviderAWS:
	default:
		return fmt.Errorf("unknown S3_PROVIDER %q (must be %q or %q)", p.S3.Provider, ProviderMinio, ProviderAWS)
	}
	if p.S3.Bucket == "" {
		return fmt.Errorf("S3_BUCKET must not be empty")
	}
	if p.Gallery.Workers < 1 {
		return fmt.Errorf("GALLERY_WORKERS must be positive, got %d", p.Gallery.Workers)
	}
	return nil
}

// String hides credentials so the config can be logged at startup.
func (p Properties) String() string {
	return fmt.Sprintf("{log:%s/%s http:%s s3:%s@%s/%s mail:%s->%s key:%t gallery:%v}",
		p.LogLevel, p.LogFormat,
		p.Server.Port,
		p.S3.Provider, p.S3.Host, p.S3.Bucket,
		p.Mail.From, p.Mail.Owner, p.Mail.APIKey != "",
		p.Gallery.ThumbnailSuffixes)
}
