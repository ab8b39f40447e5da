package benchrunner

import "errors"

// ErrInvalidRunner is returned when the Runner is configured with non-positive iterations or parallelism.
var ErrInvalidRunner = errors.New("invalid runner configuration")

// ErrNoVariants is returned when Run is called without variants.
var ErrNoVariants = errors.New("no variants to run")

// ErrMultipleBaselines is returned when more than one variant is marked as baseline.
var ErrMultipleBaselines = errors.New("more than one baseline variant")

// ErrVariantFailed is returned when an invocation of a variant fails, joined with the cause.
var ErrVariantFailed = errors.New("variant failed")

// ErrInconsistentResults is returned when invocations of the same variant return different result counts.
var ErrInconsistentResults = errors.New("variant returned inconsistent result counts")
