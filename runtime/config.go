package runtime

import (
	goruntime "runtime"

	"github.com/spf13/viper"
)

const (
	keyComputeWorkers   = "compute_workers"
	keyComputeQueueSize = "compute_queue_size"
)

// Config sizes the process-wide execution resources. The blocking pool
// is elastic and needs no sizing knob.
type Config struct {
	// ComputeWorkers is the number of computation pool workers.
	// Default: GOMAXPROCS.
	ComputeWorkers int
	// ComputeQueueSize is the per-worker submission queue capacity.
	// Default: 16.
	ComputeQueueSize int
}

func (c Config) withDefaults() Config {
	if c.ComputeWorkers <= 0 {
		c.ComputeWorkers = goruntime.GOMAXPROCS(0)
	}
	if c.ComputeQueueSize <= 0 {
		c.ComputeQueueSize = 16
	}
	return c
}

// ConfigFromEnv reads pool sizing from the environment:
// ZIO_COMPUTE_WORKERS and ZIO_COMPUTE_QUEUE_SIZE. Unset or non-positive
// values fall back to the defaults.
func ConfigFromEnv() Config {
	v := viper.New()
	v.SetEnvPrefix("ZIO")
	v.AutomaticEnv()
	v.SetDefault(keyComputeWorkers, 0)
	v.SetDefault(keyComputeQueueSize, 0)
	return Config{
		ComputeWorkers:   v.GetInt(keyComputeWorkers),
		ComputeQueueSize: v.GetInt(keyComputeQueueSize),
	}.withDefaults()
}
