package command

import (
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Listener: ListenerConfig{Port: 3000},
		Storage:  StorageConfig{Driver: StorageDriverSQLite, Path: filepath.Join(dir, "players.db")},
		Auth:     AuthConfig{Secret: "0123456789abcdef"},
		Journal:  JournalConfig{Enabled: true, Dir: dir},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		mutate func(*Config)
		expErr string
	}{
		"valid": {
			mutate: func(*Config) {},
		},
		"missing port": {
			mutate: func(c *Config) { c.Listener.Port = 0 },
			expErr: "port must be set",
		},
		"unknown storage driver": {
			mutate: func(c *Config) { c.Storage.Driver = "postgres" },
			expErr: `unknown driver "postgres"`,
		},
		"postgres needs a dsn": {
			mutate: func(c *Config) { c.Storage = StorageConfig{Driver: StorageDriverPostgres} },
			expErr: "dsn is required",
		},
		"postgres ignores path": {
			mutate: func(c *Config) {
				c.Storage = StorageConfig{Driver: StorageDriverPostgres, DSN: "postgres://localhost/pixelmmo"}
			},
		},
		"missing storage path": {
			mutate: func(c *Config) { c.Storage.Path = "" },
			expErr: "path is required",
		},
		"short secret": {
			mutate: func(c *Config) { c.Auth.Secret = "short" },
			expErr: "secret must be at least 16 bytes",
		},
		"bad nats timeout": {
			mutate: func(c *Config) { c.Bus.Nats.StartTimeout = "soon" },
			expErr: "parsing start_timeout",
		},
		"redis needs an addr": {
			mutate: func(c *Config) { c.Bus.Driver = BusDriverRedis },
			expErr: "redis: addr is required",
		},
		"unknown bus driver": {
			mutate: func(c *Config) { c.Bus.Driver = "kafka" },
			expErr: `bus: unknown driver "kafka"`,
		},
		"journal without dir": {
			mutate: func(c *Config) { c.Journal.Dir = "" },
			expErr: "dir is required",
		},
		"disabled journal skips checks": {
			mutate: func(c *Config) { c.Journal = JournalConfig{} },
		},
		"missing tuning file": {
			mutate: func(c *Config) { c.Tuning.Path = "/does/not/exist.yaml" },
			expErr: "tuning: invalid path",
		},
		"negative outbound buffer": {
			mutate: func(c *Config) { c.PlayerManager.OutboundBuffer = -1 },
			expErr: "outbound_buffer",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(secretEnv, "")
			cfg := validConfig(t)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAuthConfig_SecretFromEnv(t *testing.T) {
	t.Setenv(secretEnv, "from-the-environment")
	c := AuthConfig{Secret: "from-the-file"}
	testutil.AssertEqual(t, "secret", c.secret(), "from-the-environment")
}

func TestTuningConfig_BuildRules(t *testing.T) {
	c := TuningConfig{}
	rules, err := c.BuildRules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "tick ms", rules.TickMs, 50)
}
