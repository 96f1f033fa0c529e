package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttemptStatusClosed(t *testing.T) {
	assert.False(t, AttemptInProgress.Closed())
	assert.True(t, AttemptSubmitted.Closed())
	assert.True(t, AttemptGraded.Closed())
}

func TestStudentHelpers(t *testing.T) {
	s := &Student{FirstName: "Juan", LastName: "Dela Cruz"}
	assert.Equal(t, "Juan Dela Cruz", s.DisplayName())

	s.Identifiers = []StudentIdentifier{{Kind: IdentifierLRN, Value: "123456789012"}}
	assert.Equal(t, "123456789012", s.LRN())

	assert.Equal(t, "", (&Student{}).LRN())
	assert.Equal(t, "Solo", (&Student{FirstName: "Solo"}).DisplayName())
}
