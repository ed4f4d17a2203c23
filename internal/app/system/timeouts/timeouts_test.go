package timeouts_test

import (
	"testing"
	"time"

	"github.com/edcenterhq/edcenter/internal/app/system/timeouts"
)

func TestConfigureOverridesAndReset(t *testing.T) {
	defer timeouts.Reset()

	timeouts.Configure(timeouts.Config{
		Short: 3 * time.Second,
		Long:  45 * time.Second,
	})

	if got := timeouts.Short(); got != 3*time.Second {
		t.Errorf("Short() = %v, want 3s", got)
	}
	if got := timeouts.Long(); got != 45*time.Second {
		t.Errorf("Long() = %v, want 45s", got)
	}

	// Zero values leave the current settings alone.
	if got := timeouts.Medium(); got != timeouts.DefaultMedium {
		t.Errorf("Medium() = %v, want default %v", got, timeouts.DefaultMedium)
	}
	if got := timeouts.Batch(); got != timeouts.DefaultBatch {
		t.Errorf("Batch() = %v, want default %v", got, timeouts.DefaultBatch)
	}

	timeouts.Reset()
	if got := timeouts.Short(); got != timeouts.DefaultShort {
		t.Errorf("Short() after Reset = %v, want default %v", got, timeouts.DefaultShort)
	}
	if got := timeouts.Long(); got != timeouts.DefaultLong {
		t.Errorf("Long() after Reset = %v, want default %v", got, timeouts.DefaultLong)
	}
}
