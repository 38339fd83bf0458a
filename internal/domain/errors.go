package domain

import "errors"

// ErrNotImplemented marks functionality that is planned but not yet built.
// Callers hitting it have configured or invoked a development gap, not a
// recoverable runtime condition.
var ErrNotImplemented = errors.New("not implemented")
