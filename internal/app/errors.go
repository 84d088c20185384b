package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted = errors.New("service not started")
	ErrAnalysis   = errors.New("analysis pipeline failed")
)
