package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Cluster connection
	ClusterHost    string        // DX cluster hostname
	ClusterPort    int           // DX cluster telnet port
	Callsign       string        // login callsign sent to the cluster
	IARURegion     int           // 1, 2 or 3; selects the band plan
	CacheCapacity  int           // max spots retained (default 500)
	ConnectTimeout time.Duration // bound on a single dial attempt
	IdleTimeout    time.Duration // silence threshold before reconnecting
	BackoffBase    time.Duration // initial reconnect delay
	BackoffMax     time.Duration // cap on the reconnect delay

	// Query API
	RateLimitBurst  int  // token bucket burst per client IP
	RateLimitPerMin int  // token refill per client IP per minute
	TrustProxy      bool // true => trust X-Forwarded-For headers
}

// fileConfig is the optional YAML file shape. File values act as
// defaults; environment variables always win.
type fileConfig struct {
	ListenPort string `yaml:"listen_port"`
	LogLevel   string `yaml:"log_level"`
	Cluster    struct {
		Host           string `yaml:"host"`
		Port           int    `yaml:"port"`
		Callsign       string `yaml:"callsign"`
		IARURegion     int    `yaml:"iaru_region"`
		CacheCapacity  int    `yaml:"cache_capacity"`
		ConnectTimeout string `yaml:"connect_timeout"`
		IdleTimeout    string `yaml:"idle_timeout"`
		BackoffBase    string `yaml:"backoff_base"`
		BackoffMax     string `yaml:"backoff_max"`
	} `yaml:"cluster"`
}

func Load() *Config {
	file := loadFile(getenv("DXWATCH_CONFIG_FILE", ""))

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("DXWATCH_LISTEN_PORT", fallback(file.ListenPort, ":8080")),
		ShutdownTimeout: mustDuration("DXWATCH_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("DXWATCH_LOG_LEVEL", fallback(file.LogLevel, "info")),
		PrettyLog: mustBool("DXWATCH_PRETTY_LOG", false),

		// Cluster connection
		ClusterHost:    getenv("DXWATCH_CLUSTER_HOST", fallback(file.Cluster.Host, "dxc.nc7j.com")),
		ClusterPort:    getenvInt("DXWATCH_CLUSTER_PORT", fallbackInt(file.Cluster.Port, 7300)),
		Callsign:       getenv("DXWATCH_CALLSIGN", file.Cluster.Callsign),
		IARURegion:     getenvInt("DXWATCH_IARU_REGION", fallbackInt(file.Cluster.IARURegion, 2)),
		CacheCapacity:  getenvInt("DXWATCH_CACHE_CAPACITY", fallbackInt(file.Cluster.CacheCapacity, 500)),
		ConnectTimeout: mustDuration("DXWATCH_CONNECT_TIMEOUT", fileDuration(file.Cluster.ConnectTimeout, 10*time.Second)),
		IdleTimeout:    mustDuration("DXWATCH_IDLE_TIMEOUT", fileDuration(file.Cluster.IdleTimeout, 120*time.Second)),
		BackoffBase:    mustDuration("DXWATCH_BACKOFF_BASE", fileDuration(file.Cluster.BackoffBase, 2*time.Second)),
		BackoffMax:     mustDuration("DXWATCH_BACKOFF_MAX", fileDuration(file.Cluster.BackoffMax, 60*time.Second)),

		// Query API
		RateLimitBurst:  getenvInt("DXWATCH_RATE_LIMIT_BURST", 30),
		RateLimitPerMin: getenvInt("DXWATCH_RATE_LIMIT_PER_MIN", 60),
		TrustProxy:      mustBool("DXWATCH_TRUST_PROXY", false),
	}

	if cfg.Callsign == "" {
		panic("FATAL: DXWATCH_CALLSIGN is not set (and no callsign in the config file)")
	}
	if cfg.IARURegion < 1 || cfg.IARURegion > 3 {
		panic(fmt.Sprintf("FATAL: DXWATCH_IARU_REGION must be 1, 2 or 3, got %d", cfg.IARURegion))
	}
	if cfg.ClusterPort < 1 || cfg.ClusterPort > 65535 {
		panic(fmt.Sprintf("FATAL: invalid DXWATCH_CLUSTER_PORT: %d", cfg.ClusterPort))
	}

	return cfg
}

// loadFile reads the optional YAML config. A missing path is fine; a
// present but unreadable or invalid file is a startup failure.
func loadFile(path string) fileConfig {
	var fc fileConfig
	if path == "" {
		return fc
	}
	data, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("FATAL: failed to read config file %s: %v", path, err))
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		panic(fmt.Sprintf("FATAL: failed to parse config file %s: %v", path, err))
	}
	return fc
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func fallbackInt(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}

func fileDuration(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Sprintf("FATAL: invalid duration %q in config file", v))
	}
	return d
}
