package cache

import (
	"testing"
	"time"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	if p.DefaultTTL != 5*time.Minute {
		t.Errorf("DefaultTTL = %v, want 5m", p.DefaultTTL)
	}
	if p.MaxTTL != time.Hour {
		t.Errorf("MaxTTL = %v, want 1h", p.MaxTTL)
	}
	if p.MaxEntries != 1024 {
		t.Errorf("MaxEntries = %d, want 1024", p.MaxEntries)
	}
	if !p.Clone {
		t.Error("Clone should be enabled")
	}
	if !p.ShouldCache() {
		t.Error("default policy should cache")
	}
}

func TestNoCachePolicy(t *testing.T) {
	p := NoCachePolicy()
	if p.ShouldCache() {
		t.Error("NoCachePolicy should not cache")
	}
	if p.EffectiveTTL(0) != 0 {
		t.Errorf("EffectiveTTL(0) = %v, want 0", p.EffectiveTTL(0))
	}
	if p.MaxEntries <= 0 {
		t.Errorf("MaxEntries = %d, must stay positive so a cache can be built", p.MaxEntries)
	}
}

func TestPolicy_EffectiveTTL(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		override time.Duration
		want     time.Duration
	}{
		{"override used", Policy{DefaultTTL: time.Minute}, 10 * time.Second, 10 * time.Second},
		{"zero selects default", Policy{DefaultTTL: time.Minute}, 0, time.Minute},
		{"negative selects default", Policy{DefaultTTL: time.Minute}, -time.Second, time.Minute},
		{"clamped to max", Policy{DefaultTTL: time.Minute, MaxTTL: time.Hour}, 2 * time.Hour, time.Hour},
		{"default clamped to max", Policy{DefaultTTL: 2 * time.Hour, MaxTTL: time.Hour}, 0, time.Hour},
		{"no max", Policy{DefaultTTL: time.Minute}, 48 * time.Hour, 48 * time.Hour},
		{"nothing configured", Policy{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.EffectiveTTL(tt.override); got != tt.want {
				t.Errorf("EffectiveTTL(%v) = %v, want %v", tt.override, got, tt.want)
			}
		})
	}
}
