package dashboard

import "errors"

// Sentinel kinds for dashboard errors.
var (
	ErrBadStatus = errors.New("network response was not ok")
	ErrDecode    = errors.New("response is not valid JSON")
	ErrNoElement = errors.New("chart element not found")
)
