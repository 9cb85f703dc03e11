package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type APIConfig struct {
	Addr          string
	StoreURL      string
	APIToken      string
	TuningFile    string
	LogLevel      slog.Level
	SessionCache  int
	FrameEvery    time.Duration
	AutosaveEvery time.Duration
	Seed          int64
}

type WorkerConfig struct {
	StoreURL   string
	TuningFile string
	LogLevel   slog.Level
	Slots      []string
	Every      time.Duration
	Days       int
	RunOnce    bool
}

type CLIConfig struct {
	StoreURL    string
	TuningFile  string
	APIBaseURL  string
	APIToken    string
	ProfilePath string
}

var dotenvOnce sync.Once

// loadDotEnv reads .env into the process environment once. A missing file is
// not an error; real environment variables always win.
func loadDotEnv() {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
}

func LoadAPIFromEnv() (APIConfig, error) {
	loadDotEnv()
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("DTSIM_API_ADDR", ":8080")
	}

	cfg := APIConfig{
		Addr:          addr,
		StoreURL:      envDefault("DTSIM_STORE_URL", "file://saves"),
		APIToken:      strings.TrimSpace(os.Getenv("DTSIM_API_TOKEN")),
		TuningFile:    strings.TrimSpace(os.Getenv("DTSIM_TUNING_FILE")),
		LogLevel:      ParseLogLevel(os.Getenv("DTSIM_LOG_LEVEL")),
		SessionCache:  envIntDefault("DTSIM_SESSION_CACHE", 64),
		FrameEvery:    envDurationDefault("DTSIM_FRAME_EVERY", 100*time.Millisecond),
		AutosaveEvery: envDurationDefault("DTSIM_AUTOSAVE_EVERY", 30*time.Second),
		Seed:          int64(envIntDefault("DTSIM_SEED", 0)),
	}
	if cfg.SessionCache <= 0 {
		return cfg, fmt.Errorf("DTSIM_SESSION_CACHE must be positive")
	}
	if cfg.FrameEvery <= 0 {
		return cfg, fmt.Errorf("DTSIM_FRAME_EVERY must be positive")
	}
	return cfg, nil
}

func LoadWorkerFromEnv() (WorkerConfig, error) {
	loadDotEnv()
	cfg := WorkerConfig{
		StoreURL:   envDefault("DTSIM_STORE_URL", "file://saves"),
		TuningFile: strings.TrimSpace(os.Getenv("DTSIM_TUNING_FILE")),
		LogLevel:   ParseLogLevel(os.Getenv("DTSIM_LOG_LEVEL")),
		Slots:      envList("DTSIM_WORKER_SLOTS"),
		Every:      envDurationDefault("DTSIM_WORKER_EVERY", time.Minute),
		Days:       envIntDefault("DTSIM_WORKER_DAYS", 1),
		RunOnce:    envBoolDefault("DTSIM_WORKER_RUN_ONCE", false),
	}
	if len(cfg.Slots) == 0 {
		return cfg, fmt.Errorf("DTSIM_WORKER_SLOTS is required")
	}
	if cfg.Days <= 0 || cfg.Days > 365 {
		return cfg, fmt.Errorf("DTSIM_WORKER_DAYS must be within 1..365")
	}
	return cfg, nil
}

func LoadCLIFromEnv() CLIConfig {
	loadDotEnv()
	return CLIConfig{
		StoreURL:    envDefault("DTSIM_STORE_URL", "file://"+defaultSaveDir()),
		TuningFile:  strings.TrimSpace(os.Getenv("DTSIM_TUNING_FILE")),
		APIBaseURL:  strings.TrimRight(envDefault("DTSIM_API_BASE_URL", "http://localhost:8080"), "/"),
		APIToken:    strings.TrimSpace(os.Getenv("DTSIM_API_TOKEN")),
		ProfilePath: envDefault("DTSIM_PROFILE", filepath.Join(baseDir(), "profile.json")),
	}
}

// ParseLogLevel maps debug|info|warn|error to a level; anything else is info.
func ParseLogLevel(v string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dtsim"
	}
	return filepath.Join(home, ".dtsim")
}

func defaultSaveDir() string {
	return filepath.Join(baseDir(), "saves")
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envIntDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBoolDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
