package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound = errors.New("dataset not found")
	ErrDecode   = errors.New("dataset decode failed")
	ErrNoInput  = errors.New("no processed data files found")
	ErrWrite    = errors.New("dataset write failed")
)
