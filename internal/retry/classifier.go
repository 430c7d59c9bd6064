package retry

import (
	"errors"
	"runtime"
	"syscall"
)

// errorSharingViolation is ERROR_SHARING_VIOLATION, returned on Windows when
// another process holds the file open without write sharing.
const errorSharingViolation = syscall.Errno(32)

// FileLockClassifier treats lock and contention errors from file writes as
// transient. Everything else, including permission and not-found errors,
// is fatal.
type FileLockClassifier struct{}

// NewFileLockClassifier creates a new classifier.
func NewFileLockClassifier() *FileLockClassifier {
	return &FileLockClassifier{}
}

// IsTransient implements projgen.ErrorClassifier.
func (c *FileLockClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	switch errno {
	case syscall.EBUSY, syscall.EAGAIN, syscall.EINTR:
		return true
	}
	return runtime.GOOS == "windows" && errno == errorSharingViolation
}
