/*
Package textfile provides API helpers to load UTF-8 text files as vectors of
lines.

Lines are read by a background goroutine and handed to the loading goroutine
through a bounded channel. Clients interested in the progress of a load may
subscribe to a Loader and receive an event for every block of lines which has
been filled, followed by a final event once the file is loaded completely.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'mlvec'
func tracer() tracing.Trace {
	return tracing.Select("mlvec")
}
