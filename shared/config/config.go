package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/itchan-dev/feedback/shared/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const EnvDevelopment = "development"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Env       string         `yaml:"env"` // "development" enables /live.js
	Server    Server         `yaml:"server"`
	Log       Log            `yaml:"log"`
	StaticDir string         `yaml:"static_dir"`
	Widget    Widget         `yaml:"widget"`
	RateLimit RateLimit      `yaml:"rate_limit"`
	Cors      Cors           `yaml:"cors"`
	Storage   Storage        `yaml:"storage"`
	Boards    []domain.Board `yaml:"boards"` // seed data, loaded into storage at startup
}

type Server struct {
	Port            int           `yaml:"port"`
	PublicURL       string        `yaml:"public_url"` // if empty, derived from request host
	SecureHeaders   bool          `yaml:"secure_headers"`
	ConnectSrc      []string      `yaml:"connect_src"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type Widget struct {
	BundlePath  string        `yaml:"bundle_path"` // prebuilt bundle, embedded widget is used when missing
	CacheMaxAge time.Duration `yaml:"cache_max_age"`
}

type RateLimit struct {
	SubmitRPS   float64       `yaml:"submit_rps"` // <= 0 disables
	SubmitBurst int           `yaml:"submit_burst"`
	IdleTTL     time.Duration `yaml:"idle_ttl"`
}

type Cors struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Storage struct {
	Driver string `yaml:"driver"`
}

type Private struct {
	Pg Pg `yaml:"pg"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func (c *Config) IsDevelopment() bool {
	return c.Public.Env == EnvDevelopment
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Public.Server.Port)
}

// Default returns a config that works without any files: memory storage and the demo boards.
func Default() *Config {
	return &Config{Public: Public{
		Server: Server{
			Port:            80,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log:       Log{Level: "info"},
		StaticDir: "public",
		Widget:    Widget{BundlePath: "dist/widget.umd.js", CacheMaxAge: 24 * time.Hour},
		RateLimit: RateLimit{SubmitRPS: 1, SubmitBurst: 5, IdleTTL: 15 * time.Minute},
		Cors:      Cors{AllowedOrigins: []string{"*"}},
		Storage:   Storage{Driver: StorageMemory},
		Boards:    DefaultBoards(),
	}}
}

func DefaultBoards() []domain.Board {
	return []domain.Board{
		{
			Id:             1,
			Slug:           "demo",
			AllowedDomains: domain.Domains{"http://localhost/", "https://embeddable-vue-component.jaw.dev/"},
			Submissions:    []domain.Submission{{Id: 1, Rating: 5, Feedback: "so bad"}},
		},
		{
			Id:             2,
			Slug:           "code-pen",
			AllowedDomains: domain.Domains{"https://cdpn.io/"},
			Submissions:    []domain.Submission{{Id: 1, Rating: 5, Feedback: "so good"}},
		},
	}
}

func loadPath(configPath string, output interface{}) error {
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("can't read config file %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		return fmt.Errorf("can't unmarshal config file %s: %w", configPath, err)
	}
	return nil
}

// Load reads public.yaml (required) and private.yaml (optional) on top of Default,
// then applies environment overrides. A .env file in the working directory is loaded first.
func Load(configFolder string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg := Default()
	cfg.Public.Boards = nil
	if err := loadPath(path.Join(configFolder, "public.yaml"), &cfg.Public); err != nil {
		return nil, err
	}

	privatePath := path.Join(configFolder, "private.yaml")
	if _, err := os.Stat(privatePath); err == nil {
		if err := loadPath(privatePath, &cfg.Private); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if len(cfg.Public.Boards) == 0 {
		cfg.Public.Boards = DefaultBoards()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad(configFolder string) *Config {
	cfg, err := Load(configFolder)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

func loadDotEnv(file string) error {
	if _, err := os.Stat(file); os.IsNotExist(err) {
		return nil
	}
	// existing environment wins over .env
	if err := godotenv.Load(file); err != nil {
		return fmt.Errorf("can't load %s: %w", file, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Public.Server.Port = port
	}
	if v := os.Getenv("NODE_ENV"); v != "" {
		cfg.Public.Env = v
	}
	if v := os.Getenv("PUBLIC_URL"); v != "" {
		cfg.Public.Server.PublicURL = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Public.Storage.Driver = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Public.Log.Level = v
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Public.Storage.Driver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Public.Storage.Driver)
	}

	seen := make(map[string]struct{}, len(c.Public.Boards))
	for _, b := range c.Public.Boards {
		if b.Slug == "" {
			return fmt.Errorf("board %d has empty slug", b.Id)
		}
		if _, ok := seen[b.Slug]; ok {
			return fmt.Errorf("duplicate board slug %q", b.Slug)
		}
		seen[b.Slug] = struct{}{}
	}
	return nil
}
