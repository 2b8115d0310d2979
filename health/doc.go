// Package health reports the health of caches.
//
// A Checker returns a Result with a Status of Healthy, Degraded or
// Unhealthy. CapacityChecker watches how full a bounded cache is:
//
//	check, err := health.NewCapacityChecker("sessions", lru, health.CapacityCheckerConfig{
//	    WarningThreshold:  0.80,
//	    CriticalThreshold: 0.95,
//	})
//	result := check.Check(ctx)
//	if result.Status != health.StatusHealthy {
//	    log.Printf("cache pressure: %s", result.Message)
//	}
package health
