package extract

import "errors"

// ErrMalformedDistance is returned when a delivery distance is present but its
// leading token is not a number. It aborts the run.
var ErrMalformedDistance = errors.New("malformed delivery distance")
