package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Addr          string `envconfig:"ADDR" default:":5000"`
	DataFile      string `envconfig:"DATA_FILE" default:"./data/db.json"`
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:5000"`

	JWTSecret string `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`

	StorageDriver  string `envconfig:"STORAGE_DRIVER" default:"local"`
	UploadDir      string `envconfig:"LOCAL_UPLOAD_DIR" default:"./uploads"`
	UploadURLPath  string `envconfig:"LOCAL_UPLOAD_URL_PREFIX" default:"/uploads"`
	S3Region       string `envconfig:"S3_REGION" default:""`
	S3Bucket       string `envconfig:"S3_BUCKET" default:""`
	S3Prefix       string `envconfig:"S3_PREFIX" default:"uploads"`
	S3PublicBase   string `envconfig:"S3_PUBLIC_BASE_URL" default:""`

	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" default:""`
	TelegramChatID   int64  `envconfig:"TELEGRAM_CHAT_ID" default:"0"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
