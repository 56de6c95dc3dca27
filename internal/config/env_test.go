package config

import (
	"strings"
	"testing"
	"time"
)

func TestMergeYAMLOverridesDefaults(t *testing.T) {
	env := defaults()
	raw := []byte(`
app:
  addr: ":9090"
  cookie_secure: true
database:
  host: db.internal
  port: 3307
jwt:
  secret: from-file
  expiry_minutes: 30
cors:
  allowed_origins: ["https://bus.example.com"]
`)
	if err := mergeYAML(&env, raw); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if env.AppAddr != ":9090" || !env.CookieSecure {
		t.Fatalf("app section not applied: %+v", env)
	}
	if env.Database.Host != "db.internal" || env.Database.Port != 3307 || env.Database.User != "root" {
		t.Fatalf("database section not merged: %+v", env.Database)
	}
	if env.JWT.TTL() != 30*time.Minute {
		t.Fatalf("ttl = %v", env.JWT.TTL())
	}
	if len(env.CORS.AllowedOrigins) != 1 {
		t.Fatalf("origins = %v", env.CORS.AllowedOrigins)
	}
}

func TestApplyEnvWinsOverFile(t *testing.T) {
	env := defaults()
	env.JWT.Secret = "from-file"
	vars := map[string]string{
		"JWT_SECRET":           "from-env",
		"DB_PORT":              "3310",
		"CORS_ALLOWED_ORIGINS": "http://a.test, http://b.test,",
		"COOKIE_SECURE":        "true",
	}
	applyEnv(&env, func(k string) string { return vars[k] })

	if env.JWT.Secret != "from-env" || env.Database.Port != 3310 || !env.CookieSecure {
		t.Fatalf("env not applied: %+v", env)
	}
	if strings.Join(env.CORS.AllowedOrigins, "|") != "http://a.test|http://b.test" {
		t.Fatalf("origins = %v", env.CORS.AllowedOrigins)
	}
}

func TestFormatDSNFromParts(t *testing.T) {
	d := Database{Host: "127.0.0.1", Port: 3306, User: "app", Password: "pw", Name: "bus"}
	dsn := d.FormatDSN()
	if !strings.HasPrefix(dsn, "app:pw@tcp(127.0.0.1:3306)/bus?") || !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("unexpected dsn %q", dsn)
	}
}

func TestFormatDSNPrefersExplicit(t *testing.T) {
	d := Database{DSN: "u:p@tcp(h:1)/x", Host: "ignored"}
	if d.FormatDSN() != "u:p@tcp(h:1)/x" {
		t.Fatalf("explicit dsn not used")
	}
}
