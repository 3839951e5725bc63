package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_HappyPath(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	tempConfigsSubDir := filepath.Join(tempDir, "configs")
	err = os.Mkdir(tempConfigsSubDir, 0755)
	require.NoError(t, err)

	testAppName := "TestApp"
	testPort := 9090
	testLogLevel := "debug"
	testBackend := "redis"

	envContent := fmt.Sprintf(
		"APP_NAME=%s\nSERVER_PORT=%d\nLOG_LEVEL=%s\nSTORE_BACKEND=%s\n",
		testAppName, testPort, testLogLevel, testBackend,
	)
	envFilePath := filepath.Join(tempConfigsSubDir, "test_happy.env")
	err = os.WriteFile(envFilePath, []byte(envContent), 0644)
	require.NoError(t, err)

	originalWD, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		_ = os.Chdir(originalWD)
	}()

	err = os.Chdir(tempDir)
	require.NoError(t, err)

	cfg, err := LoadConfig("test_happy")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, testAppName, cfg.Application.Name)
	assert.Equal(t, testPort, cfg.Server.Port)
	assert.Equal(t, testLogLevel, cfg.Logging.Level)
	assert.Equal(t, testBackend, cfg.Store.Backend)

	// Defaults fill everything the file does not set
	assert.Equal(t, "development", cfg.Application.Env)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "pf", cfg.Store.Namespace)
	assert.False(t, cfg.Ledger.Strict)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "ledger_mutations", cfg.Kafka.MutationTopic)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 4, cfg.WorkerPool.Size)

	cfgWithName, err := LoadConfigWithName("configs/test_happy") // Viper will look for configs/test_happy.env
	require.NoError(t, err)
	require.NotNil(t, cfgWithName)
	assert.Equal(t, testAppName, cfgWithName.Application.Name)

	// Test LoadConfigWithNameAndType
	cfgWithNameAndType, err := LoadConfigWithNameAndType("configs/test_happy", "env")
	require.NoError(t, err)
	require.NotNil(t, cfgWithNameAndType)
	assert.Equal(t, testAppName, cfgWithNameAndType.Application.Name)
}

func TestLoadConfig_DefaultsAreValid(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	originalWD, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		_ = os.Chdir(originalWD)
	}()

	err = os.Chdir(tempDir)
	require.NoError(t, err)

	// No config file at all: defaults alone must produce a valid config
	cfg, err := LoadConfig("does_not_exist")
	require.NoError(t, err)
	assert.Equal(t, StoreBackendMemory, cfg.Store.Backend)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{
				Port:            8080,
				ShutdownTimeout: 30 * time.Second,
				ReadTimeout:     30 * time.Second,
				WriteTimeout:    30 * time.Second,
				IdleTimeout:     120 * time.Second,
			},
			Store:      StoreConfig{Backend: StoreBackendMemory, Namespace: "pf"},
			WorkerPool: WorkerPoolConfig{Size: 4},
		}
	}

	t.Run("MemoryBackendNeedsNoDatabases", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("UnknownBackend", func(t *testing.T) {
		cfg := base()
		cfg.Store.Backend = "etcd"
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "STORE_BACKEND")
	})

	t.Run("PostgresBackendRequiresURL", func(t *testing.T) {
		cfg := base()
		cfg.Store.Backend = StoreBackendPostgres
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "POSTGRES_URL")
	})

	t.Run("RedisBackendRequiresAddr", func(t *testing.T) {
		cfg := base()
		cfg.Store.Backend = StoreBackendRedis
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "REDIS_ADDR")
	})

	t.Run("KafkaValidatedOnlyWhenEnabled", func(t *testing.T) {
		cfg := base()
		cfg.Kafka.Enabled = true
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "KAFKA_BROKERS")

		cfg.Kafka.Brokers = "localhost:9092"
		cfg.Kafka.MutationTopic = "ledger_mutations"
		cfg.Kafka.MaxWait = time.Second
		assert.NoError(t, cfg.validate())
	})

	t.Run("InvalidPort", func(t *testing.T) {
		cfg := base()
		cfg.Server.Port = 0
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SERVER_PORT")
	})
}
