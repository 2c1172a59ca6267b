package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidateValid(t *testing.T) {
	assert.True(t, Candidate{Amount: 0.01}.Valid())
	assert.False(t, Candidate{Amount: 0}.Valid())
	assert.False(t, Candidate{Amount: -5}.Valid())
}

func TestExtractionErrorUnwrap(t *testing.T) {
	inner := errors.New("bad xref")
	err := &ExtractionError{File: "statement.pdf", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "statement.pdf")
}
