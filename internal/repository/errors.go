package repository

import "errors"

// ErrNotFound is returned when a row does not exist or belongs to another
// user; callers translate it into a 404.
var ErrNotFound = errors.New("not found")
