package wad

import "github.com/zeebo/errs"

// Error classes returned by the reader. Test membership with Has, e.g.
// OutOfRange.Has(err).
var (
	// TruncatedRead means fewer bytes were available than a header,
	// directory entry or lump payload needed.
	TruncatedRead = errs.Class("truncated read")

	// OutOfRange means a directory entry points outside the source.
	OutOfRange = errs.Class("out of range")

	// FormatError means the data cannot be a WAD at all (magic unreadable)
	// or, when decoding strictly, a lump is not a whole number of records.
	FormatError = errs.Class("format error")
)
