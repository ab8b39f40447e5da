// Package topauthorsprojectedvalue is the value-shaped twin of topauthorsprojected.
//
// Fetching is identical. The results are []authorstore.AuthorResultValue with the books stored inline,
// so the shape phase allocates one backing array per slice instead of one object per record.
// The book filter is applied to the elements of the result slice in place.
package topauthorsprojectedvalue
