package store

import "os"

// fileLock is an advisory lock on a file next to the state document.
// Lock and Unlock are platform specific.
type fileLock struct {
	path string
	f    *os.File
}

func newFileLock(path string) *fileLock {
	return &fileLock{path: path}
}
