package runtime

import (
	goruntime "runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("reads sizing from the environment", func(t *testing.T) {
		t.Setenv("ZIO_COMPUTE_WORKERS", "3")
		t.Setenv("ZIO_COMPUTE_QUEUE_SIZE", "32")
		cfg := ConfigFromEnv()
		assert.Equal(t, 3, cfg.ComputeWorkers)
		assert.Equal(t, 32, cfg.ComputeQueueSize)
	})

	t.Run("falls back to defaults when unset", func(t *testing.T) {
		cfg := ConfigFromEnv()
		assert.Equal(t, goruntime.GOMAXPROCS(0), cfg.ComputeWorkers)
		assert.Equal(t, 16, cfg.ComputeQueueSize)
	})
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{ComputeWorkers: -1, ComputeQueueSize: 0}.withDefaults()
	assert.Equal(t, goruntime.GOMAXPROCS(0), cfg.ComputeWorkers)
	assert.Equal(t, 16, cfg.ComputeQueueSize)
}
