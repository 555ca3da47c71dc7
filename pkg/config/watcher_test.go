package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, path string, days int) {
	t.Helper()
	data := fmt.Sprintf("retention:\n  days: %d\n", days)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

func TestWatcher_DeliversReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfigFile(t, path, 30)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan *Config, 1)
	w := NewWatcher(path)

	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(cfg *Config) {
			select {
			case reloads <- cfg:
			default:
			}
		})
	}()

	// Give the watcher a moment to register before mutating the file.
	time.Sleep(100 * time.Millisecond)
	writeConfigFile(t, path, 14)

	select {
	case cfg := <-reloads:
		if cfg.Retention.Days != 14 {
			t.Errorf("reloaded retention.days = %d, want 14", cfg.Retention.Days)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch() did not return after cancellation")
	}
}

func TestWatcher_KeepsPreviousConfigOnBadReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfigFile(t, path, 30)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan *Config, 1)
	w := NewWatcher(path)
	go func() {
		_ = w.Watch(ctx, func(cfg *Config) {
			select {
			case reloads <- cfg:
			default:
			}
		})
	}()

	time.Sleep(100 * time.Millisecond)

	// An invalid file must not reach the callback.
	if err := os.WriteFile(path, []byte("retention:\n  days: -5\n"), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	select {
	case cfg := <-reloads:
		t.Errorf("invalid config was delivered: %+v", cfg)
	case <-time.After(500 * time.Millisecond):
	}
}
