package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config is read from the environment once at cold start. A missing
// OUTPUT_BUCKET is fatal; everything else has a default.
type Config struct {
	OutputBucket  string `env:"OUTPUT_BUCKET,required"`
	BedrockRegion string `env:"BEDROCK_REGION" envDefault:"us-west-2"`
	ModelID       string `env:"MODEL_ID" envDefault:"stability.sd3-5-large-v1:0"`
	KeyPrefix     string `env:"KEY_PREFIX" envDefault:"sd35/"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}
