package common

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Wrap annotates err with a stack trace and a message, for the Internal
// error kind: an arithmetic domain violation that should never occur on a
// correctly-formed session and is therefore a fatal bug, not a protocol
// abort.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Combine folds a batch of per-peer validation failures (identified abort
// culprits) into a single multierror so that a round can report every
// cheating peer at once instead of failing at the first one found.
func Combine(errs ...error) error {
	var result *multierror.Error
	for _, e := range errs {
		if e != nil {
			result = multierror.Append(result, e)
		}
	}
	if result == nil {
		return nil
	}
	return result
}
