//go:build !unix

package filehost

import (
	"errors"
	"os"
)

func classifyBindError(err error) BindErrorKind {
	if errors.Is(err, os.ErrPermission) {
		return BindPermissionDenied
	}
	return BindOther
}
