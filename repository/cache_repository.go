package repository

// CacheRepository caches serialized simulation results keyed by a hash of
// the parameter set. A miss is reported via the bool, never as an error.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
