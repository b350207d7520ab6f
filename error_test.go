package obrdocs_test

import (
	"fmt"
	"testing"

	"github.com/obrtools/obrdocs"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := obrdocs.Errorf(obrdocs.ENOTFOUND, "page %q not found", "action")

	assert.Equal(t, obrdocs.ENOTFOUND, obrdocs.ErrorCode(err))
	assert.Equal(t, "page \"action\" not found", obrdocs.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, obrdocs.ErrorCode(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	inner := obrdocs.Errorf(obrdocs.ECHALLENGE, "challenge page served")
	wrapped := fmt.Errorf("fetching: %w", inner)

	assert.Equal(t, obrdocs.ECHALLENGE, obrdocs.ErrorCode(wrapped))
	assert.Equal(t, "challenge page served", obrdocs.ErrorMessage(wrapped))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, obrdocs.EINTERNAL, obrdocs.ErrorCode(fmt.Errorf("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, obrdocs.ErrorMessage(nil))
}
