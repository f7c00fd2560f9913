package pathtree

import "markbase-backend/pkg/errors"

// RangeSentinel sorts after every character that can legally appear in a
// path segment, so the half-open bound captures descendants at any depth.
const RangeSentinel = ""

// DirectoryRange is a half-open lexicographic interval [Lower, Upper) over
// the path attribute. A path equal to the directory itself falls outside the
// interval: only records under the directory match.
type DirectoryRange struct {
	Lower string
	Upper string
}

// RangeUnder builds the range selecting every path strictly under dir. An
// empty dir would select the whole collection, so it is rejected.
func RangeUnder(dir string) (DirectoryRange, error) {
	if dir == "" {
		return DirectoryRange{}, errors.NewValidationError("path is required")
	}
	return DirectoryRange{
		Lower: dir + "/",
		Upper: dir + "/" + RangeSentinel,
	}, nil
}

// Matches reports whether path falls inside the range. Mirrors the store's
// lexicographic comparison; used by tests and in-memory fakes.
func (r DirectoryRange) Matches(path string) bool {
	return path >= r.Lower && path < r.Upper
}
