package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.App.Name != "QuickDesk" {
		t.Errorf("app name %q", cfg.App.Name)
	}
	if cfg.Widget.PollInterval != 1500*time.Millisecond {
		t.Errorf("poll interval %v, want 1.5s", cfg.Widget.PollInterval)
	}
	if cfg.Widget.DefaultCategory != "Urgent To-Do" {
		t.Errorf("default category %q", cfg.Widget.DefaultCategory)
	}
	if cfg.Widget.SelfSender != "You" {
		t.Errorf("self sender %q", cfg.Widget.SelfSender)
	}
	if cfg.Widget.TaskPage != 1 || cfg.Widget.TaskLimit != 5 {
		t.Errorf("task fetch window %d/%d, want 1/5", cfg.Widget.TaskPage, cfg.Widget.TaskLimit)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("WIDGET_POLL_INTERVAL", "3s")
	t.Setenv("WIDGET_SELF_SENDER", "Me")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Widget.PollInterval != 3*time.Second {
		t.Errorf("poll interval %v, want 3s", cfg.Widget.PollInterval)
	}
	if cfg.Widget.SelfSender != "Me" {
		t.Errorf("self sender %q", cfg.Widget.SelfSender)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server port %d", cfg.Server.Port)
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		Name:     "quickdesk",
		SSLMode:  "disable",
	}

	want := "host=localhost port=5432 user=postgres password=secret dbname=quickdesk sslmode=disable"
	if got := db.GetDSN(); got != want {
		t.Errorf("dsn %q, want %q", got, want)
	}
}
