package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"swapScope/internal/model"
)

// PairConfig describes one pool to screen.
type PairConfig struct {
	Label      string `mapstructure:"label"`
	Pool       string `mapstructure:"pool"`
	AltToken   string `mapstructure:"alt-token"`
	QuoteToken string `mapstructure:"quote-token"`
}

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	RPCURL        string
	RPCHeaders    map[string]string
	Pairs         []PairConfig
	Hours         int
	BlocksPerHour uint64
	ChunkDelay    time.Duration
	MaxRetries    int
	RetryBackoff  time.Duration
	OutDir        string
	DumpRaw       bool
	PGDSN         string
	LogLevel      string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SCREENER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("hours", 5)
	v.SetDefault("blocks-per-hour", uint64(1800))
	v.SetDefault("chunk-delay", 500*time.Millisecond)
	v.SetDefault("max-retries", 5)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("out-dir", "./data")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("screener")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var pairs []PairConfig
	if v.IsSet("pairs") {
		if err := v.UnmarshalKey("pairs", &pairs); err != nil {
			return Config{}, fmt.Errorf("parse pairs: %w", err)
		}
	}

	cfg := Config{
		RPCURL:        v.GetString("rpc"),
		RPCHeaders:    getStringMap(v, "rpc-headers"),
		Pairs:         pairs,
		Hours:         v.GetInt("hours"),
		BlocksPerHour: v.GetUint64("blocks-per-hour"),
		ChunkDelay:    v.GetDuration("chunk-delay"),
		MaxRetries:    v.GetInt("max-retries"),
		RetryBackoff:  v.GetDuration("retry-backoff"),
		OutDir:        v.GetString("out-dir"),
		DumpRaw:       v.GetBool("dump-raw"),
		PGDSN:         v.GetString("pg-dsn"),
		LogLevel:      v.GetString("log-level"),
	}

	if len(cfg.Pairs) == 0 {
		if pair, ok := pairFromFlags(v); ok {
			cfg.Pairs = []PairConfig{pair}
		}
	}

	return cfg, nil
}

// Validate checks the values a run cannot start without.
func (c Config) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	if c.Hours <= 0 {
		return fmt.Errorf("hours must be greater than zero")
	}
	if c.BlocksPerHour == 0 {
		return fmt.Errorf("blocks per hour must be greater than zero")
	}
	if len(c.Pairs) == 0 {
		return fmt.Errorf("at least one pair is required")
	}
	if c.OutDir == "" {
		return fmt.Errorf("out dir is required")
	}
	return nil
}

// Pools converts the configured pairs into pool identities.
func (c Config) Pools() []model.PoolIdentity {
	pools := make([]model.PoolIdentity, 0, len(c.Pairs))
	for _, pair := range c.Pairs {
		label := pair.Label
		if label == "" {
			label = pair.Pool
		}
		pools = append(pools, model.PoolIdentity{
			Label:             label,
			PoolAddress:       pair.Pool,
			AltTokenAddress:   pair.AltToken,
			QuoteTokenAddress: pair.QuoteToken,
		})
	}
	return pools
}

func pairFromFlags(v *viper.Viper) (PairConfig, bool) {
	pool := v.GetString("pool-address")
	if pool == "" {
		return PairConfig{}, false
	}
	return PairConfig{
		Label:      v.GetString("pair-label"),
		Pool:       pool,
		AltToken:   v.GetString("alt-token"),
		QuoteToken: v.GetString("quote-token"),
	}, true
}

func getStringMap(v *viper.Viper, key string) map[string]string {
	if !v.IsSet(key) {
		return map[string]string{}
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case map[string]string:
		return typed
	case map[string]interface{}:
		out := make(map[string]string, len(typed))
		for k, v := range typed {
			out[k] = fmt.Sprintf("%v", v)
		}
		return out
	case string:
		return parseStringMap(typed)
	default:
		return map[string]string{}
	}
}

func parseStringMap(input string) map[string]string {
	out := make(map[string]string)
	if strings.TrimSpace(input) == "" {
		return out
	}
	pairs := strings.Split(input, ",")
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}
