package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	errMsg := "test error message"
	err := Error(errMsg)
	assert.Equal(t, errMsg, err.Error())
}

func TestErrorIsComparable(t *testing.T) {
	const sentinel = Error("some failure")
	wrapped := error(sentinel)
	assert.True(t, errors.Is(wrapped, sentinel))
}
