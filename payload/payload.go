// Package payload reads ROM images and normalizes them to a fixed size.
package payload

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"

	"github.com/wippyai/romgen/errors"
)

// Normalize right-pads data with zero bytes to exactly max bytes.
// Data longer than max is rejected with a payload_too_large error.
// The returned slice never aliases data.
func Normalize(data []byte, max int) ([]byte, error) {
	if len(data) > max {
		return nil, errors.PayloadTooLarge(len(data), max)
	}
	out := make([]byte, max)
	copy(out, data)
	return out, nil
}

// Read consumes r and returns its contents normalized to max bytes.
// When r holds more than max bytes the remainder is drained so the error can
// report the full size.
func Read(r io.Reader, max int) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(max)+1))
	if err != nil {
		return nil, err
	}
	if len(data) > max {
		rest, err := io.Copy(io.Discard, r)
		if err != nil {
			return nil, err
		}
		return nil, errors.PayloadTooLarge(len(data)+int(rest), max)
	}
	return Normalize(data, max)
}

// Load reads the file at path and normalizes it to max bytes. The file is
// closed before Load returns.
func Load(path string, max int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.InputNotFound(path, err)
		}
		return nil, errors.InputUnreadable(path, err)
	}
	defer f.Close()

	data, err := Read(f, max)
	if err != nil {
		var re *errors.Error
		if stderrors.As(err, &re) {
			re.Path = path
			return nil, re
		}
		return nil, errors.InputUnreadable(path, err)
	}
	return data, nil
}
