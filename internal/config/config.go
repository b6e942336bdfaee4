package config

import (
	"errors"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file omits a value.
const (
	defaultTurnTimeout = 30 // seconds
	defaultFallback    = "autoplay"
	defaultRedisAddr   = "localhost:6379"
	defaultShamaBonus  = 10
)

// Config holds the engine process configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Redis  RedisConfig  `yaml:"redis"`
	Rules  RulesConfig  `yaml:"rules"`
}

// EngineConfig controls the match workers.
type EngineConfig struct {
	// TurnTimeout is the per-turn deadline in seconds; 0 disables it.
	TurnTimeout int `yaml:"turn_timeout" env:"SHAMA_TURN_TIMEOUT"`
	// Fallback names the timeout policy: autoplay, pause or forfeit.
	Fallback string `yaml:"fallback" env:"SHAMA_FALLBACK"`
}

// TurnTimeoutDuration returns the per-turn deadline.
func (c *EngineConfig) TurnTimeoutDuration() time.Duration {
	return time.Duration(c.TurnTimeout) * time.Second
}

// RedisConfig configures the optional record sink.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"SHAMA_REDIS_ADDR"`
	Password string `yaml:"password" env:"SHAMA_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"SHAMA_REDIS_DB"`
}

// RulesConfig holds the ruleset switches.
type RulesConfig struct {
	// ShamaBonus is credited to the team capturing the 6♣'s trick.
	ShamaBonus int `yaml:"shama_bonus" env:"SHAMA_BONUS"`
	// MustTrumpIfVoid enables the strict variant: a follower void in the
	// led suit must trump when able.
	MustTrumpIfVoid bool `yaml:"must_trump_if_void" env:"SHAMA_MUST_TRUMP_IF_VOID"`
}

// Load reads the config file, applies defaults, then lets environment
// variables override.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Engine.TurnTimeout == 0 {
		c.Engine.TurnTimeout = defaultTurnTimeout
	}
	if c.Engine.Fallback == "" {
		c.Engine.Fallback = defaultFallback
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
	if c.Rules.ShamaBonus == 0 {
		c.Rules.ShamaBonus = defaultShamaBonus
	}
}
