// Package topauthorsunfiltered implements the baseline "top authors" query: fetch everything, filter in memory.
//
// The query handler loads every author with account, roles, books, and publishers,
// builds a rich AuthorDetails record per author, and only then applies the author policy
// (Serbia, age 27, highest BooksCount, top 2) and the book policy (published before 1900).
//
// Its cost grows with the whole dataset, not with the result, which makes it the baseline
// for the projected variants.
package topauthorsunfiltered
