package rollover

import (
	"fmt"
	"os"
)

// RolloverError means the active file could not be renamed. It is the only
// failure of the pipeline that is surfaced synchronously to the trigger
// caller, since losing an active log file must never be silent.
type RolloverError struct {
	Path string
	Err  error
}

func (e *RolloverError) Error() string {
	return fmt.Sprintf("rollover of %s failed: %v", e.Path, e.Err)
}

func (e *RolloverError) Unwrap() error {
	return e.Err
}

// Rename synchronously moves the active file to its temporary path. On any
// failure the source is left untouched, never half-renamed.
func Rename(src string, dst string) error {
	_, err := os.Stat(src)
	if err != nil {
		return &RolloverError{Path: src, Err: err}
	}

	_, err = os.Stat(dst)
	if err == nil {
		return &RolloverError{Path: src, Err: fmt.Errorf("rename target %s already exists", dst)}
	}

	err = os.Rename(src, dst)
	if err != nil {
		return &RolloverError{Path: src, Err: err}
	}

	return nil
}
