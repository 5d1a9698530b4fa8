package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

// Duration accepts human-readable values like "24h" in yaml.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err == nil {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}
	var ns int64
	if err := unmarshal(&ns); err != nil {
		return err
	}
	*d = Duration(ns)
	return nil
}

type Public struct {
	JwtTTL        Duration `yaml:"jwt_ttl"`
	SecureCookies bool     `yaml:"secure_cookies"`
	LogLevel      string   `yaml:"log_level"`
	LogJSON       bool     `yaml:"log_json"`
	TemplatesPath string   `yaml:"templates_path"`

	// Login endpoints are rate limited per client IP.
	LoginRatePerSecond float64 `yaml:"login_rate_per_second"`
	LoginBurst         int     `yaml:"login_burst"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
	Pg     Pg     `yaml:"pg"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return time.Duration(s.Public.JwtTTL)
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

// mustValidate panics on missing required fields. A server booting with an
// empty signing key or no database target is a deploy error.
func mustValidate(cfg *Config) {
	if cfg.Public.JwtTTL <= 0 {
		panic("config field jwt_ttl is required")
	}
	if cfg.Public.TemplatesPath == "" {
		panic("config field templates_path is required")
	}
	if cfg.Private.JwtKey == "" {
		panic("config field jwt_key is required")
	}
	if cfg.Private.Pg.Host == "" {
		panic("config field pg.host is required")
	}
	if cfg.Private.Pg.User == "" {
		panic("config field pg.user is required")
	}
	if cfg.Private.Pg.Dbname == "" {
		panic("config field pg.dbname is required")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	mustValidate(cfg)
	return cfg
}
