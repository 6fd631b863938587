package clipboard

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mcncl/jxview/internal/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCopy(t *testing.T) {
	var written string
	copier := NewWithWriter(func(s string) error {
		written = s
		return nil
	})

	result := make(chan error, 1)
	require.NoError(t, copier.Copy(`{"a": 1}`, func(err error) { result <- err }))

	assert.NoError(t, <-result)
	assert.Equal(t, `{"a": 1}`, written)
}

func TestCopy_WriteFailure(t *testing.T) {
	copier := NewWithWriter(func(string) error { return stderrors.New("no xclip") })

	result := make(chan error, 1)
	require.NoError(t, copier.Copy("x", func(err error) { result <- err }))

	err := <-result
	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorTypeClipboard, appErr.Type)
	assert.Contains(t, err.Error(), "no xclip")
}

func TestCopy_Empty(t *testing.T) {
	called := false
	copier := NewWithWriter(func(string) error {
		called = true
		return nil
	})

	err := copier.Copy("", func(error) { called = true })
	assert.ErrorIs(t, err, errors.ErrNothingToCopy)
	assert.False(t, called)
}
