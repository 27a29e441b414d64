package db

import (
	"testing"
	"time"

	"github.com/yigit/unischedule/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = "5433"
	cfg.Database.User = "scheduler"
	cfg.Database.Password = "secret"
	cfg.Database.DBName = "unischedule"
	cfg.Database.MaxOpenConns = 12
	cfg.Database.MaxIdleConns = 3
	cfg.Database.ConnMaxLifetime = "45m"
	return cfg
}

func TestPoolConfig(t *testing.T) {
	pc, err := PoolConfig(testConfig())
	if err != nil {
		t.Fatalf("PoolConfig() error = %v", err)
	}
	if pc.MaxConns != 12 || pc.MinConns != 3 {
		t.Errorf("conns = %d/%d, want 12/3", pc.MaxConns, pc.MinConns)
	}
	if pc.MaxConnLifetime != 45*time.Minute {
		t.Errorf("MaxConnLifetime = %v, want 45m", pc.MaxConnLifetime)
	}
	if pc.ConnConfig.Host != "db.internal" || pc.ConnConfig.Port != 5433 || pc.ConnConfig.Database != "unischedule" {
		t.Errorf("conn = %s:%d/%s", pc.ConnConfig.Host, pc.ConnConfig.Port, pc.ConnConfig.Database)
	}
	if pc.BeforeAcquire == nil {
		t.Error("BeforeAcquire not set")
	}
}

func TestPoolConfig_BadLifetime(t *testing.T) {
	cfg := testConfig()
	cfg.Database.ConnMaxLifetime = "forever"
	if _, err := PoolConfig(cfg); err == nil {
		t.Error("PoolConfig() error = nil, want error")
	}
}
