//go:build !unix

package store

// Lock is a no-op where flock is unavailable; the in-process mutex still applies.
func (l *fileLock) Lock() error { return nil }

func (l *fileLock) Unlock() error { return nil }
