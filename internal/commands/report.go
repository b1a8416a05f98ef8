package commands

import (
	"errors"
	"fmt"
	"io"

	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/service"
	"taskpad/internal/store"
)

// reportError prints err in the form the user sees and returns the exit code
// for it.
func reportError(errOut io.Writer, err error) int {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		output.FormatValidationErrors(errOut, verr.Fields)
		return exitcode.UserError
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, ErrTaskRefRequired),
		errors.Is(err, ErrInvalidTaskRef),
		errors.Is(err, ErrAmbiguousTaskRef):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, service.ErrConflict):
		fmt.Fprintf(errOut, "error: %v (reload and try again)\n", err)
		return exitcode.StorageError
	case errors.Is(err, store.ErrStorageUnavailable),
		errors.Is(err, store.ErrStorageWriteFailed),
		errors.Is(err, store.ErrCorruptData):
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.StorageError
}
