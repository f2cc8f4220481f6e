package optimiser

import "errors"

var errNotDurationWait = errors.New("optimiser: not a duration wait")
