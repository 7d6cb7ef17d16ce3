package firestore

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned when a requested entity does not exist.
// Callers distinguish this from transport failures; it maps to HTTP 404.
var ErrNotFound = goerr.New("not found")
