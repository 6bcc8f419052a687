package superob

import "errors"

// ErrNoData is returned when a volume carries neither DBZ nor VRAD data;
// superobing has nothing to coarsen. Per spec.md §7 this is the only
// fatal condition on the superobing side — an all-NaN moment on either
// channel is a warning, not an error.
var ErrNoData = errors.New("superob: volume has neither DBZ nor VRAD data")
