package journal

import "errors"

var (
	// ErrValidation indicates the caller supplied an empty text or an
	// out-of-range mood or rating. The caller should re-prompt.
	ErrValidation = errors.New("journal: validation failed")

	// ErrCorruptStore is returned by strict stores when the persisted log
	// cannot be decoded.
	ErrCorruptStore = errors.New("journal: persisted log is corrupt")

	// ErrStorageUnavailable wraps any failure of the underlying KV handle.
	ErrStorageUnavailable = errors.New("journal: storage unavailable")
)
