package ctxio

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSeekerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rs := NewReadSeeker(ctx, strings.NewReader("0123456789"))
	b := make([]byte, 4)
	n, err := rs.Read(b)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	cancel()
	_, err = rs.Read(b)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = rs.Seek(0, io.SeekStart)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCopyCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var sb strings.Builder
	_, err := Copy(ctx, &sb, iter{})
	assert.ErrorIs(t, err, context.Canceled)
}

// iter yields data forever so only cancellation can end the copy.
type iter struct{}

func (iter) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'x'
	}
	return len(p), nil
}
