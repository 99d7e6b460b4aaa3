package remote

import "errors"

// ErrNotFound signals an operation referencing a session id that is not in
// the registry.
var ErrNotFound = errors.New("no session found with that id")

// ErrCredential signals a rejected credential combination before any dial
// is attempted.
var ErrCredential = errors.New("invalid credentials")
