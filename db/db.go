package db

// Store is the narrow key-value surface every piece of local state sits
// behind: the favorites list and the credential keys are each one entry.
// A missing key reads as the empty string without an error; write failures
// are always surfaced to the caller.
type Store interface {
	GetValue(key string) (string, error)
	SetValue(key, value string) error
	DeleteValue(key string) error
	Close() error
}
