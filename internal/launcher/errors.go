package launcher

import (
	"errors"
	"fmt"
)

// ErrNotFound is reported by Store.Load when the config file does not
// exist. The caller decides whether to create a default document.
var ErrNotFound = errors.New("config file not found")

// MalformedConfigError reports a config file whose shape or field
// values do not match the expected document format. Detail names the
// offending section, item, or field for display.
type MalformedConfigError struct {
	Path   string
	Detail string
}

func (e *MalformedConfigError) Error() string {
	return fmt.Sprintf("malformed config %s: %s", e.Path, e.Detail)
}

// IndexError reports a structural edit whose index falls outside the
// current sequence bounds. It indicates the caller used a stale index;
// the edit is rejected and the tree left unchanged.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range (len %d)", e.Op, e.Index, e.Len)
}

// LaunchError reports a failed launch attempt. Err carries the
// underlying OS error for display; launches are fire-and-forget, so a
// LaunchError is recoverable and never fatal.
type LaunchError struct {
	Item string
	Kind ItemType
	Err  error
}

func (e *LaunchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("launch %q (%s) failed", e.Item, e.Kind)
	}
	return fmt.Sprintf("launch %q (%s) failed: %v", e.Item, e.Kind, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }
