package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// HTTPEngine reads objects over http using ranged GET requests so its
// readers can seek.  The server must report a content length; servers
// that ignore Range headers are handled by discarding the skipped
// prefix.
type HTTPEngine struct {
	client *http.Client
}

var _ Engine = (*HTTPEngine)(nil)

func NewHTTP() *HTTPEngine {
	return &HTTPEngine{client: http.DefaultClient}
}

func (h *HTTPEngine) Get(ctx context.Context, u *URI) (Reader, error) {
	size, err := h.Size(ctx, u)
	if err != nil {
		return nil, err
	}
	return &httpReader{
		ctx:    ctx,
		client: h.client,
		url:    u.String(),
		size:   size,
	}, nil
}

func (*HTTPEngine) Put(_ context.Context, u *URI) (io.WriteCloser, error) {
	return nil, ErrNotSupported
}

func (h *HTTPEngine) Size(ctx context.Context, u *URI) (int64, error) {
	resp, err := h.head(ctx, u)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("%s: unknown content length", u)
	}
	return resp.ContentLength, nil
}

func (h *HTTPEngine) Exists(ctx context.Context, u *URI) (bool, error) {
	resp, err := h.head(ctx, u)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return true, nil
}

func (h *HTTPEngine) head(ctx context.Context, u *URI) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", u, ErrNotFound)
		}
		return nil, errors.New(resp.Status)
	}
	return resp, nil
}

type httpReader struct {
	ctx    context.Context
	client *http.Client
	url    string
	offset int64
	size   int64
}

var _ Reader = (*httpReader)(nil)
var _ Sizer = (*httpReader)(nil)

func (r *httpReader) Read(p []byte) (int, error) {
	n, err := r.ReadAt(p, r.offset)
	r.offset += int64(n)
	if err == io.EOF && n > 0 {
		err = nil
	}
	return n, err
}

func (r *httpReader) ReadAt(p []byte, off int64) (int, error) {
	if off >= r.size {
		return 0, io.EOF
	}
	var clamped bool
	if max := r.size - off; int64(len(p)) > max {
		p, clamped = p[:max], true
	}
	if len(p) == 0 {
		return 0, nil
	}
	req, err := http.NewRequestWithContext(r.ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", off, off+int64(len(p))-1))
	resp, err := r.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusPartialContent:
	case http.StatusOK:
		// The server ignored the range request, so skip the prefix.
		if _, err := io.CopyN(io.Discard, resp.Body, off); err != nil {
			return 0, err
		}
	default:
		return 0, errors.New(resp.Status)
	}
	n, err := io.ReadFull(resp.Body, p)
	if err == nil && clamped {
		err = io.EOF
	}
	return n, err
}

func (r *httpReader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += r.offset
	case io.SeekEnd:
		offset += r.size
	default:
		return 0, errors.New("storage.httpReader.Seek: invalid whence")
	}
	if offset < 0 {
		return 0, errors.New("storage.httpReader.Seek: negative position")
	}
	r.offset = offset
	return offset, nil
}

func (r *httpReader) Size() (int64, error) {
	return r.size, nil
}

func (r *httpReader) Close() error {
	return nil
}
