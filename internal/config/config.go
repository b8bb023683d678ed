package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"joeRoute/internal/dex"
)

// Defaults for the Joe V1 deployment on Avalanche C-Chain.
const (
	DefaultChainID      = 43114
	DefaultFactory      = "0x9ad6c38be94206ca50bb0d90783181662f0cfa10"
	DefaultInitCodeHash = "0x0bbca9af0511ad1a1da383135cf3a8d2ac620e549ef9f6ae3a4c33c2fed0af91"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	RPCURL       string
	ChainID      uint64
	Factory      string
	InitCodeHash string
	Path         []string
	Out          string
	PGDSN        string
	ReserveTTL   time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	Concurrency  int
	Decimals     int
	LogLevel     string
}

// Load merges a .env file, config file, environment variables, and flags
// into Config. Environment variables use the JOE_ prefix, e.g. JOE_RPC.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("JOE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("chain-id", uint64(DefaultChainID))
	v.SetDefault("factory", DefaultFactory)
	v.SetDefault("init-code-hash", DefaultInitCodeHash)
	v.SetDefault("reserve-ttl", 15*time.Second)
	v.SetDefault("max-retries", 3)
	v.SetDefault("retry-backoff", 250*time.Millisecond)
	v.SetDefault("concurrency", 4)
	v.SetDefault("decimals", 6)
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
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		RPCURL:       v.GetString("rpc"),
		ChainID:      v.GetUint64("chain-id"),
		Factory:      v.GetString("factory"),
		InitCodeHash: v.GetString("init-code-hash"),
		Path:         getStringSlice(v, "path"),
		Out:          v.GetString("out"),
		PGDSN:        v.GetString("pg-dsn"),
		ReserveTTL:   v.GetDuration("reserve-ttl"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		Concurrency:  v.GetInt("concurrency"),
		Decimals:     v.GetInt("decimals"),
		LogLevel:     v.GetString("log-level"),
	}

	return cfg, nil
}

// Deployment parses the factory deployment constants.
func (c Config) Deployment() (dex.Deployment, error) {
	factory, err := ParseAddress(c.Factory)
	if err != nil {
		return dex.Deployment{}, fmt.Errorf("factory: %w", err)
	}
	initCodeHash, err := ParseHash(c.InitCodeHash)
	if err != nil {
		return dex.Deployment{}, fmt.Errorf("init code hash: %w", err)
	}
	d := dex.Deployment{
		ChainID:      c.ChainID,
		Factory:      factory,
		InitCodeHash: initCodeHash,
	}
	if err := d.Validate(); err != nil {
		return dex.Deployment{}, err
	}
	return d, nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
