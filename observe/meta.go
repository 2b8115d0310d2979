package observe

// CacheMeta identifies a cache in telemetry.
type CacheMeta struct {
	Namespace string // Owning subsystem (may be empty)
	Name      string // Cache name (required)
}

// CacheID returns the fully qualified cache identifier:
// <namespace>.<name> or <name>.
func (m CacheMeta) CacheID() string {
	if m.Namespace != "" {
		return m.Namespace + "." + m.Name
	}
	return m.Name
}

// SpanName returns the span name for operation op on this cache.
// Format: cache.<op>.<namespace>.<name> or cache.<op>.<name>
func (m CacheMeta) SpanName(op string) string {
	return "cache." + op + "." + m.CacheID()
}

// Validate checks that the metadata names a cache.
func (m CacheMeta) Validate() error {
	if m.Name == "" {
		return ErrMissingCacheName
	}
	return nil
}
