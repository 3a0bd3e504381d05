//go:build unix

package filehost

import (
	"errors"

	"golang.org/x/sys/unix"
)

func classifyBindError(err error) BindErrorKind {
	switch {
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return BindPermissionDenied
	case errors.Is(err, unix.EADDRINUSE):
		return BindAddressInUse
	case errors.Is(err, unix.EADDRNOTAVAIL):
		return BindAddressUnavailable
	default:
		return BindOther
	}
}
