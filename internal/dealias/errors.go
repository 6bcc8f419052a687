package dealias

import "errors"

// ErrNoVRAD is returned when a volume carries no VRAD elevations at all;
// dealiasing has nothing to operate on.
var ErrNoVRAD = errors.New("dealias: volume has no VRAD data")

// ErrAllNaN is returned when the VRAD moment is present but every
// measurement is NaN. Per spec.md §7 this is fatal for the dealiasing
// stage (unlike the superobing side, where an all-NaN moment is only a
// warning).
var ErrAllNaN = errors.New("dealias: VRAD moment is entirely NaN")
