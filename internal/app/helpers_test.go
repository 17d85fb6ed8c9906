package app_test

import (
	"errors"

	"go.trai.ch/zerr"
)

// wrapErr wraps a sentinel the way adapters do, so tests match on errors.Is.
func wrapErr(sentinel error) error {
	return zerr.Wrap(sentinel, "adapter failure")
}

func metadataOf(err error) map[string]any {
	var z *zerr.Error
	if errors.As(err, &z) {
		return z.Metadata()
	}
	return nil
}
