package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 5, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2, cfg.Database.MaxIdleConns)
	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
	assert.False(t, cfg.Database.IsConfigured())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/bookings")
	t.Setenv("DB_MAX_OPEN_CONNS", "8")
	t.Setenv("DB_QUERY_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Database.IsConfigured())
	assert.Equal(t, "postgres://user:pass@db:5432/bookings", cfg.Database.URL)
	assert.Equal(t, 8, cfg.Database.MaxOpenConns)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.IsProduction())
}

func TestDatabaseConfig_ToRepositoryConfig(t *testing.T) {
	dbCfg := DatabaseConfig{
		URL:                "file:bookings.db",
		Driver:             "sqlite",
		MaxOpenConns:       2,
		MaxIdleConns:       4,
		QueryTimeout:       time.Second,
		SlowQueryThreshold: 100 * time.Millisecond,
	}

	repoCfg := dbCfg.ToRepositoryConfig()

	assert.Equal(t, "sqlite", repoCfg.Database.Driver)
	assert.Equal(t, "file:bookings.db", repoCfg.GetDSN())
	assert.Equal(t, "booking_statuses", repoCfg.TableName())
	assert.Equal(t, 2, repoCfg.Pool.MaxOpenConns)
	assert.Equal(t, 2, repoCfg.Pool.MaxIdleConns, "idle connections are capped at the open limit")
	assert.Equal(t, time.Second, repoCfg.Query.Timeout)
	assert.NoError(t, repoCfg.Validate())
}

func TestDatabaseConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  DatabaseConfig
		wantErr bool
	}{
		{"valid", DatabaseConfig{MaxOpenConns: 1, MaxIdleConns: 1}, false},
		{"no open connections", DatabaseConfig{MaxOpenConns: 0}, true},
		{"negative idle", DatabaseConfig{MaxOpenConns: 1, MaxIdleConns: -1}, true},
		{"negative timeout", DatabaseConfig{MaxOpenConns: 1, QueryTimeout: -time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAdaptForLambda(t *testing.T) {
	cfg := &Config{
		LogFormat: "text",
		Database:  DatabaseConfig{MaxOpenConns: 25, MaxIdleConns: 10},
	}

	adaptForLambda(cfg)

	assert.Equal(t, 1, cfg.Database.MaxOpenConns)
	assert.Equal(t, 1, cfg.Database.MaxIdleConns)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestDetectServerless(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "booking-statuses")
	t.Setenv("AWS_REGION", "eu-west-1")

	sc := detectServerless()
	assert.True(t, sc.IsLambda)
	assert.Equal(t, "booking-statuses", sc.FunctionName)
	assert.Equal(t, "eu-west-1", sc.Region)

	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	assert.False(t, detectServerless().IsLambda)
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(&Config{LogLevel: "debug", LogFormat: "json"})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger = NewLogger(&Config{LogLevel: "nonsense"})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
