package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds all environment-driven settings for the server.
// A .env file is loaded by main before this is processed.
type Config struct {
	Port   string `envconfig:"PORT" default:"5001"`
	DBPath string `envconfig:"DB_PATH" default:"skillsync.db"`

	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`

	CloudinaryCloudName string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `envconfig:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `envconfig:"CLOUDINARY_API_SECRET"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
