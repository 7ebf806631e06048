package logic

import (
	"errors"
	"os"

	"github.com/idelchi/cryptile/internal/encryption"
	"github.com/idelchi/cryptile/internal/keys"
)

//nolint:gochecknoglobals
var descriptions = []struct {
	target error
	text   string
}{
	{encryption.ErrInvalidKey, "Wrong key given"},
	{encryption.ErrUnsupportedFormat, "Unsupported file type"},
	{encryption.ErrUnexpectedEOF, "Unexpected end of file"},
	{encryption.ErrInvalidPadding, "Corrupted padding"},
	{encryption.ErrWorkerFailure, "Block transform failed"},
	{keys.ErrNoSavedPassword, "No password saved under that identifier"},
	{keys.ErrNoMasterPassword, "No master password set"},
	{keys.ErrConfigUnavailable, "Password config unavailable"},
	{keys.ErrInvalidKey, "Key must be 32 bytes (64 hex characters)"},
	{os.ErrNotExist, "File not found"},
	{os.ErrPermission, "Permission denied"},
}

// Describe maps an error to a short user-facing message. Unknown errors are returned verbatim.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	for _, d := range descriptions {
		if errors.Is(err, d.target) {
			return d.text
		}
	}

	return err.Error()
}
