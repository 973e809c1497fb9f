package universe

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds universe tuning. The zero value is unusable; start from
// DefaultConfig or LoadConfig.
type Config struct {
	// MaxEntities bounds the slot table, reserved null slot included.
	MaxEntities uint32 `toml:"max_entities"`

	// MinFreeIndices gates index recycling: a freed index is reissued only
	// once the free queue holds strictly more than this many entries.
	MinFreeIndices int `toml:"min_free_indices"`

	Logging LoggingConfig `toml:"logging"`

	// Logger overrides the default no-op logger. Not settable from TOML;
	// build one from Logging via NewLogger.
	Logger *zap.Logger `toml:"-"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func DefaultConfig() Config {
	return Config{
		MaxEntities:    1 << 20,
		MinFreeIndices: 1024,
	}
}

// LoadConfig reads TOML tuning over the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// NewLogger builds a zap logger from a logging section.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
		}
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zapCfg.Build()
}
