package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/minseok4171/aidict/pkg/model"
	"github.com/minseok4171/aidict/pkg/utils"
)

// Config carries everything the binaries read from the environment.
type Config struct {
	Port    int    `env:"PORT" envDefault:"8080"`
	DataDir string `env:"AIDICT_DATA_DIR"`

	GeminiKey   string `env:"GEMINI_KEY"`
	LookupModel string `env:"AIDICT_LOOKUP_MODEL"`
	SpeechModel string `env:"AIDICT_SPEECH_MODEL"`
	Voice       string `env:"AIDICT_VOICE"`

	RequestTimeout time.Duration `env:"AIDICT_REQUEST_TIMEOUT" envDefault:"60s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads a .env file when one is present, then the environment. An
// unset data directory resolves to a per-user default.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, utils.WrapIfNotNil(err)
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = defaultDataDir()
	}
	return cfg, nil
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".aidict"
	}
	return filepath.Join(base, "aidict")
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// LookupOptions translates the configuration into generator options for
// definition lookups.
func (c Config) LookupOptions() []model.GeneratorOption {
	var opts []model.GeneratorOption
	if strings.TrimSpace(c.GeminiKey) != "" {
		opts = append(opts, model.WithAuthToken(c.GeminiKey))
	}
	if strings.TrimSpace(c.LookupModel) != "" {
		opts = append(opts, model.WithModel(c.LookupModel))
	}
	return opts
}

// SpeechOptions translates the configuration into generator options for
// pronunciation synthesis.
func (c Config) SpeechOptions() []model.GeneratorOption {
	var opts []model.GeneratorOption
	if strings.TrimSpace(c.GeminiKey) != "" {
		opts = append(opts, model.WithAuthToken(c.GeminiKey))
	}
	if strings.TrimSpace(c.SpeechModel) != "" {
		opts = append(opts, model.WithModel(c.SpeechModel))
	}
	if strings.TrimSpace(c.Voice) != "" {
		opts = append(opts, model.WithVoice(c.Voice))
	}
	return opts
}
