// Package topauthorsprojected implements the "top authors" query with the author policy pushed into the database.
//
// The author store evaluates the author policy and only returns the output fields.
// The handler then keeps the books published before 1900 and builds reference-shaped results:
// every author and every book is its own heap object.
package topauthorsprojected
