package httpd

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerLifecycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv := New("127.0.0.1:0", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	}))
	require.NoError(t, srv.Start(ctx))

	resp, err := http.Get("http://" + srv.Addr())
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "ok", string(b))

	cancel()
	assert.NoError(t, srv.Wait())
}

func TestServerBadAddr(t *testing.T) {
	srv := New("not-an-addr", nil)
	assert.Error(t, srv.Start(context.Background()))
}
