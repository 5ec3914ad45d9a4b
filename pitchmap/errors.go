package pitchmap

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two failure classes of a mapping call. Wrapped
// errors carry detail; match with errors.Is.
var (
	// ErrConfig reports an invalid Config (bad stretch, inverted pitch
	// range, center pitch outside the range, bad clip bounds).
	ErrConfig = errors.New("pitchmap: invalid configuration")

	// ErrData reports unusable input data (empty series, non-finite values).
	ErrData = errors.New("pitchmap: invalid data")
)

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}

func dataErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrData, fmt.Sprintf(format, args...))
}
