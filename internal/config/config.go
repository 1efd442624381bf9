package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr              string
	AllowOrigins      string
	LogLevel          string
	DefaultDifficulty model.TierMode
	ReadBufferSize    int
	WriteBufferSize   int
}

func Default() Config {
	return Config{
		Addr:              ":3000",
		AllowOrigins:      "http://localhost:5173",
		LogLevel:          "info",
		DefaultDifficulty: model.TierCaptures,
		ReadBufferSize:    1024,
		WriteBufferSize:   1024,
	}
}

// Load builds the config from defaults, then CHESS_* environment variables,
// then command line flags.
func Load(args []string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()
	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}

	difficulty := string(cfg.DefaultDifficulty)
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.AllowOrigins, "allow-origins", cfg.AllowOrigins, "comma separated CORS origins")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")
	fs.StringVar(&difficulty, "difficulty", difficulty, "default computer difficulty")
	fs.IntVar(&cfg.ReadBufferSize, "ws-read-buffer", cfg.ReadBufferSize, "websocket read buffer in bytes")
	fs.IntVar(&cfg.WriteBufferSize, "ws-write-buffer", cfg.WriteBufferSize, "websocket write buffer in bytes")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.DefaultDifficulty = model.TierMode(difficulty)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	strs := map[string]*string{
		"CHESS_ADDR":          &c.Addr,
		"CHESS_ALLOW_ORIGINS": &c.AllowOrigins,
		"CHESS_LOG_LEVEL":     &c.LogLevel,
	}
	for key, dst := range strs {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	if v := getenv("CHESS_DIFFICULTY"); v != "" {
		c.DefaultDifficulty = model.TierMode(v)
	}

	ints := map[string]*int{
		"CHESS_WS_READ_BUFFER":  &c.ReadBufferSize,
		"CHESS_WS_WRITE_BUFFER": &c.WriteBufferSize,
	}
	for key, dst := range ints {
		v := getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
		}
		*dst = n
	}
	return nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	mode, err := model.ParseTierMode(string(c.DefaultDifficulty))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c.DefaultDifficulty = mode
	if c.ReadBufferSize <= 0 || c.WriteBufferSize <= 0 {
		return fmt.Errorf("%w: websocket buffers must be positive", ErrInvalidConfig)
	}
	return nil
}

// Origins splits AllowOrigins for the websocket origin check.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func ParseLogLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info", "":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, s)
}
