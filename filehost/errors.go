package filehost

import (
	"errors"
	"fmt"
)

var (
	// ErrUnpairedToken is returned when the route tokens can't be split into
	// (local path, virtual path) pairs.
	ErrUnpairedToken = errors.New("files must be paired with a display name that clients request them by")
	// ErrVirtualPathSlash is returned for a virtual path without a leading "/".
	ErrVirtualPathSlash = errors.New("file display names must start with a \"/\"")
	ErrNoRoutes         = errors.New("no files to host")
	ErrNoAddresses      = errors.New("no addresses to host on")
	ErrInvalidAddress   = errors.New("invalid address")

	ErrMalformedRequest = errors.New("malformed request line")
	ErrNotFound         = errors.New("path not found")
	ErrFileOpen         = errors.New("failed to open file")
	ErrFileRead         = errors.New("failed to read file")
)

// ConfigError reports unusable startup configuration. Nothing is bound when
// one is returned.
type ConfigError struct {
	Token string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid configuration at %q: %v", e.Token, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// BindErrorKind classifies why a listen endpoint could not be bound.
type BindErrorKind int

const (
	BindOther BindErrorKind = iota
	BindPermissionDenied
	BindAddressInUse
	BindAddressUnavailable
)

func (k BindErrorKind) String() string {
	switch k {
	case BindPermissionDenied:
		return "permission denied"
	case BindAddressInUse:
		return "address in use"
	case BindAddressUnavailable:
		return "address unavailable"
	default:
		return "other"
	}
}

// BindError is fatal for its endpoint only.
type BindError struct {
	Addr string
	Kind BindErrorKind
	Err  error
}

func newBindError(addr string, err error) *BindError {
	return &BindError{Addr: addr, Kind: classifyBindError(err), Err: err}
}

// Error returns an operator-facing diagnostic with a hint on how to fix it.
func (e *BindError) Error() string {
	switch e.Kind {
	case BindPermissionDenied:
		return fmt.Sprintf("Failed to bind to address %s due to insufficient permission. Try running as sudo/administrator.", e.Addr)
	case BindAddressInUse:
		return fmt.Sprintf("Failed to bind to address %s since it is already in use. Try stopping the process already using this address.", e.Addr)
	case BindAddressUnavailable:
		return fmt.Sprintf("Failed to bind to address %s since it doesn't exist. Try setting the address to a real interface that is owned by this device.", e.Addr)
	default:
		return fmt.Sprintf("Failed to bind to address %s: %v", e.Addr, e.Err)
	}
}

func (e *BindError) Unwrap() error {
	return e.Err
}
