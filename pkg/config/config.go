package config

import (
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	API struct {
		BaseURL string        `env:"API_BASE_URL" env-default:"http://localhost:5000/api"`
		Timeout time.Duration `env:"API_TIMEOUT" env-default:"15s"`
	}
	Session struct {
		TokenPath string `env:"SESSION_TOKEN_PATH" env-default:"./session-token"`
	}
	Cloudinary struct {
		CloudName    string `env:"CLOUDINARY_CLOUD_NAME"`
		UploadPreset string `env:"CLOUDINARY_UPLOAD_PRESET" env-default:"social_media_app"`
	}
	Watcher struct {
		Enabled  bool          `env:"WATCHER_ENABLED" env-default:"false"`
		Interval time.Duration `env:"WATCHER_INTERVAL" env-default:"5m"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}
