package authorstore_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
)

func Test_NewDataSourceError(t *testing.T) {
	// arrange
	cause := errors.New("connection reset")

	// act
	err := authorstore.NewDataSourceError(authorstore.ErrQueryingAuthorsFailed, cause)

	// assert
	assert.True(t, authorstore.IsDataSourceError(err))
	assert.ErrorIs(t, err, authorstore.ErrQueryingAuthorsFailed)
	assert.ErrorIs(t, err, cause)
}

func Test_IncompleteAuthorRecord_IsNoDataSourceError(t *testing.T) {
	err := fmt.Errorf("%w: book 4 has no publisher", authorstore.ErrIncompleteAuthorRecord)

	assert.False(t, authorstore.IsDataSourceError(err))
}
