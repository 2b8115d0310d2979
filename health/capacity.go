package health

import (
	"context"
	"fmt"
)

// Sized is anything with a bounded number of entries, such as *cache.LRU
// or *cache.MemoryCache.
type Sized interface {
	Len() int
	Cap() int
}

// CapacityCheckerConfig configures a CapacityChecker.
type CapacityCheckerConfig struct {
	// WarningThreshold is the fill ratio that reports degraded.
	// Value should be between 0 and 1. Default: 0.9
	WarningThreshold float64

	// CriticalThreshold is the fill ratio that reports unhealthy. Zero or
	// an out of range value disables it, and a full cache then reports
	// degraded at most.
	// Value should be between 0 and 1 inclusive. Default: 0 (disabled)
	CriticalThreshold float64
}

// CapacityChecker reports how full a cache is.
type CapacityChecker struct {
	name   string
	target Sized
	config CapacityCheckerConfig
}

// NewCapacityChecker creates a checker named name for target. Out of range
// thresholds fall back to the defaults. An enabled critical threshold below
// the warning threshold is raised to it.
func NewCapacityChecker(name string, target Sized, config CapacityCheckerConfig) (*CapacityChecker, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if config.WarningThreshold <= 0 || config.WarningThreshold > 1 {
		config.WarningThreshold = 0.9
	}
	switch {
	case config.CriticalThreshold <= 0 || config.CriticalThreshold > 1:
		config.CriticalThreshold = 0
	case config.CriticalThreshold < config.WarningThreshold:
		config.CriticalThreshold = config.WarningThreshold
	}
	return &CapacityChecker{name: name, target: target, config: config}, nil
}

// Name returns the name of this checker.
func (c *CapacityChecker) Name() string {
	return c.name
}

// Check compares the cache's fill ratio against the thresholds.
func (c *CapacityChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	size, capacity := c.target.Len(), c.target.Cap()
	if capacity <= 0 {
		return Unhealthy("cache has no capacity", ErrCheckFailed)
	}

	ratio := float64(size) / float64(capacity)
	details := map[string]any{
		"entries":       size,
		"capacity":      capacity,
		"remaining":     capacity - size,
		"usage_percent": ratio * 100,
	}

	switch {
	case c.config.CriticalThreshold > 0 && ratio >= c.config.CriticalThreshold:
		return Unhealthy(fmt.Sprintf("cache usage critical: %.1f%%", ratio*100), ErrCheckFailed).WithDetails(details)
	case ratio >= c.config.WarningThreshold:
		return Degraded(fmt.Sprintf("cache usage high: %.1f%%", ratio*100)).WithDetails(details)
	default:
		return Healthy(fmt.Sprintf("cache usage normal: %.1f%%", ratio*100)).WithDetails(details)
	}
}

// Ensure CapacityChecker implements Checker
var _ Checker = (*CapacityChecker)(nil)
