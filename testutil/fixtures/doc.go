// Package fixtures provides small hand-written author datasets with known top-author results.
//
// Large generated datasets come from internal/seed.
package fixtures
