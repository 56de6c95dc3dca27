package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Env struct {
	AppAddr string
	GinMode string

	Database Database
	JWT      JWT
	Firebase Firebase
	CORS     CORS

	CookieSecure bool
}

type Database struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type JWT struct {
	Secret        string `yaml:"secret"`
	ExpiryMinutes int    `yaml:"expiry_minutes"`
}

func (j JWT) TTL() time.Duration {
	return time.Duration(j.ExpiryMinutes) * time.Minute
}

type Firebase struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
}

// Enabled reports whether any Firebase setting was supplied.
func (f Firebase) Enabled() bool {
	return f.ProjectID != "" || f.CredentialsFile != ""
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// fileConfig mirrors the YAML layout; the app section holds the top-level fields.
type fileConfig struct {
	App struct {
		Addr         string `yaml:"addr"`
		GinMode      string `yaml:"gin_mode"`
		CookieSecure *bool  `yaml:"cookie_secure"`
	} `yaml:"app"`
	Database Database `yaml:"database"`
	JWT      JWT      `yaml:"jwt"`
	Firebase Firebase `yaml:"firebase"`
	CORS     CORS     `yaml:"cors"`
}

func defaults() Env {
	return Env{
		AppAddr: ":8080",
		Database: Database{
			Host: "127.0.0.1",
			Port: 3306,
			User: "root",
			Name: "bus_booking",
		},
		JWT: JWT{ExpiryMinutes: 24 * 60},
		CORS: CORS{AllowedOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}},
	}
}

// LoadEnv reads .env (if present), then the YAML file named by configFile or
// CONFIG_FILE, then environment variables. Later sources win.
func LoadEnv(configFile string) (Env, error) {
	_ = godotenv.Load()

	env := defaults()
	if configFile == "" {
		configFile = strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	}
	if configFile != "" {
		if err := mergeFile(&env, configFile); err != nil {
			return env, err
		}
	}
	applyEnv(&env, os.Getenv)

	if env.JWT.Secret == "" {
		return env, fmt.Errorf("JWT_SECRET is required")
	}
	if env.JWT.ExpiryMinutes <= 0 {
		return env, fmt.Errorf("JWT_EXPIRY_MINUTES must be positive")
	}
	return env, nil
}

func mergeFile(env *Env, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return mergeYAML(env, raw)
}

func mergeYAML(env *Env, raw []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	setStr(&env.AppAddr, fc.App.Addr)
	setStr(&env.GinMode, fc.App.GinMode)
	if fc.App.CookieSecure != nil {
		env.CookieSecure = *fc.App.CookieSecure
	}

	setStr(&env.Database.DSN, fc.Database.DSN)
	setStr(&env.Database.Host, fc.Database.Host)
	setStr(&env.Database.User, fc.Database.User)
	setStr(&env.Database.Password, fc.Database.Password)
	setStr(&env.Database.Name, fc.Database.Name)
	if fc.Database.Port > 0 {
		env.Database.Port = fc.Database.Port
	}

	setStr(&env.JWT.Secret, fc.JWT.Secret)
	if fc.JWT.ExpiryMinutes > 0 {
		env.JWT.ExpiryMinutes = fc.JWT.ExpiryMinutes
	}

	setStr(&env.Firebase.ProjectID, fc.Firebase.ProjectID)
	setStr(&env.Firebase.CredentialsFile, fc.Firebase.CredentialsFile)
	if len(fc.CORS.AllowedOrigins) > 0 {
		env.CORS.AllowedOrigins = fc.CORS.AllowedOrigins
	}
	return nil
}

func applyEnv(env *Env, getenv func(string) string) {
	get := func(k string) string { return strings.TrimSpace(getenv(k)) }

	setStr(&env.AppAddr, get("APP_ADDR"))
	setStr(&env.GinMode, get("GIN_MODE"))
	setStr(&env.Database.DSN, get("DATABASE_DSN"))
	setStr(&env.Database.Host, get("DB_HOST"))
	setStr(&env.Database.User, get("DB_USER"))
	setStr(&env.Database.Password, getenv("DB_PASSWORD"))
	setStr(&env.Database.Name, get("DB_NAME"))
	if n, err := strconv.Atoi(get("DB_PORT")); err == nil && n > 0 {
		env.Database.Port = n
	}
	setStr(&env.JWT.Secret, get("JWT_SECRET"))
	if n, err := strconv.Atoi(get("JWT_EXPIRY_MINUTES")); err == nil {
		env.JWT.ExpiryMinutes = n
	}
	setStr(&env.Firebase.ProjectID, get("FIREBASE_PROJECT_ID"))
	setStr(&env.Firebase.CredentialsFile, get("FIREBASE_CREDENTIALS_FILE"))
	if v := get("CORS_ALLOWED_ORIGINS"); v != "" {
		env.CORS.AllowedOrigins = splitList(v)
	}
	if b, err := strconv.ParseBool(get("COOKIE_SECURE")); err == nil {
		env.CookieSecure = b
	}
}

func setStr(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	out := []string{}
	for _, o := range strings.Split(v, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
