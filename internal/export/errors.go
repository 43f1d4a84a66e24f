package export

import "errors"

// ErrUnknownFormat is returned for an output path whose extension has no
// exporter.
var ErrUnknownFormat = errors.New("unknown export format")
