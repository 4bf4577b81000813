package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected default http port 8080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.Host != "localhost" {
		t.Errorf("expected default http host 'localhost', got %s", cfg.HTTP.Host)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("expected default cache backend 'memory', got %s", cfg.Cache.Backend)
	}
	if cfg.Lexer.AlwaysProduceEndTokens != true {
		t.Errorf("expected default always_produce_end_tokens true, got %v", cfg.Lexer.AlwaysProduceEndTokens)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	configContent := `
http:
  port: 9090
  host: 0.0.0.0
cache:
  backend: redis
  address: localhost:6379
lexer:
  allow_literals_with_line_breaks: true
`
	if err := os.WriteFile("kusto.yml", []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.Host != "0.0.0.0" {
		t.Errorf("expected host '0.0.0.0', got %s", cfg.HTTP.Host)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("expected cache backend 'redis', got %s", cfg.Cache.Backend)
	}
	if !cfg.Lexer.AllowLiteralsWithLineBreaks {
		t.Error("expected allow_literals_with_line_breaks to be true")
	}
}

func TestLoadRejectsInvalidCacheBackend(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	configContent := `
cache:
  backend: mongodb
`
	if err := os.WriteFile("kusto.yml", []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected an error for an unsupported cache backend")
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	configContent := `
http:
  port: 70000
`
	if err := os.WriteFile("kusto.yml", []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected an error for an out-of-range http port")
	}
}
