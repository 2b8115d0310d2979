package cache

import (
	"math"
	"time"
)

// Expiration is an optional entry lifetime measured from the moment an entry
// is created. The zero value never expires.
type Expiration struct {
	d   time.Duration
	set bool
}

// NoExpiration marks an entry as never expiring.
var NoExpiration = Expiration{}

// ExpireAfter returns an expiration of d. A non-positive d is rejected when
// the expiration is applied to an entry.
func ExpireAfter(d time.Duration) Expiration {
	return Expiration{d: d, set: true}
}

// ExpireAfterMillis returns an expiration of ms milliseconds. Fractions are
// kept down to the nanosecond; values beyond the range of time.Duration are
// clamped. NaN, zero and negative values are rejected when applied.
func ExpireAfterMillis(ms float64) Expiration {
	switch {
	case math.IsNaN(ms):
		return Expiration{set: true}
	case ms <= 0:
		return Expiration{d: -1, set: true}
	}
	ns := ms * float64(time.Millisecond)
	if ns >= math.MaxInt64 {
		return Expiration{d: time.Duration(math.MaxInt64), set: true}
	}
	d := time.Duration(ns)
	if d <= 0 {
		// Sub-nanosecond positive values round up instead of becoming invalid.
		d = 1
	}
	return Expiration{d: d, set: true}
}

// Duration returns the lifetime and whether one is set.
func (e Expiration) Duration() (time.Duration, bool) {
	return e.d, e.set
}

// IsSet reports whether the expiration carries a lifetime.
func (e Expiration) IsSet() bool {
	return e.set
}

// Validate returns ErrInvalidExpiration for a set, non-positive lifetime.
func (e Expiration) Validate() error {
	if e.set && e.d <= 0 {
		return ErrInvalidExpiration
	}
	return nil
}

func (e Expiration) String() string {
	if !e.set {
		return "never"
	}
	return e.d.String()
}
