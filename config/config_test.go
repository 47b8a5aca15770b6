package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	return path
}

func TestNew(t *testing.T) {
	path := writeConfigFile(t, `
app:
  env: dev
  debug: true

server:
  http_addr: ":8080"

mysql:
  host: 127.0.0.1
  port: 3306
  username: root
  password: secret
  database: go_redpacket

redis:
  host: 127.0.0.1
  port: 6379

red_packet:
  expire_hours: 12
  min_unit: 1
  claim_timeout_ms: 500
`)

	conf := New(path)

	if !conf.Debug() {
		t.Error("Debug() = false, want true")
	}
	if conf.Server.HttpAddr != ":8080" {
		t.Errorf("HttpAddr = %q, want :8080", conf.Server.HttpAddr)
	}
	if got := conf.MySQL.Dsn(); got != "root:secret@tcp(127.0.0.1:3306)/go_redpacket?charset=utf8mb4&parseTime=True&loc=Local" {
		t.Errorf("Dsn() = %q", got)
	}
	if got := conf.Redis.Addr(); got != "127.0.0.1:6379" {
		t.Errorf("Addr() = %q, want 127.0.0.1:6379", got)
	}
	if got := conf.RedPacket.ExpireDuration(); got != 12*time.Hour {
		t.Errorf("ExpireDuration() = %v, want 12h", got)
	}
	if got := conf.RedPacket.ClaimTimeout(); got != 500*time.Millisecond {
		t.Errorf("ClaimTimeout() = %v, want 500ms", got)
	}
}

func TestNewDefaults(t *testing.T) {
	// 未提供 red_packet 段时回落到默认值
	path := writeConfigFile(t, `
app:
  env: prod
`)

	conf := New(path)

	if conf.Debug() {
		t.Error("Debug() = true, want false")
	}
	if conf.RedPacket.MinUnit != 1 {
		t.Errorf("MinUnit = %d, want 1", conf.RedPacket.MinUnit)
	}
	if conf.RedPacket.ClaimTimeout() != 2*time.Second {
		t.Errorf("ClaimTimeout() = %v, want 2s", conf.RedPacket.ClaimTimeout())
	}
	if conf.RedPacket.ExpireHours != 0 {
		t.Errorf("ExpireHours = %d, want 0", conf.RedPacket.ExpireHours)
	}
}
