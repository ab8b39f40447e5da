// Package seed builds deterministic author datasets and writes them into a migrated database.
//
// It backs the seed command and the test fixtures.
package seed
