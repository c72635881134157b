package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/brimdata/takeio"
	"github.com/brimdata/takeio/api"
	"github.com/brimdata/takeio/pkg/ctxio"
	"github.com/brimdata/takeio/pkg/storage"
	"github.com/brimdata/takeio/service/srverr"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func errorResponse(e error) (status int, ae *api.Error) {
	status = http.StatusInternalServerError
	ae = &api.Error{Type: "Error"}

	if errors.Is(e, takeio.ErrOutOfWindow) {
		ae.Kind = "range not satisfiable"
		ae.Message = e.Error()
		return http.StatusRequestedRangeNotSatisfiable, ae
	}

	var ze *srverr.Error
	if !errors.As(e, &ze) {
		if errors.Is(e, storage.ErrNotFound) {
			ze = &srverr.Error{Kind: srverr.NotFound, Err: e}
		} else {
			ae.Message = e.Error()
			return
		}
	}

	switch ze.Kind {
	case srverr.Invalid:
		status = http.StatusBadRequest
	case srverr.NotFound:
		status = http.StatusNotFound
	case srverr.Exists:
		status = http.StatusBadRequest
	case srverr.Conflict:
		status = http.StatusConflict
	}

	ae.Kind = ze.Kind.String()
	ae.Message = ze.Message()
	return
}

func respond(c *Core, w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		c.requestLogger(r).Warn("Error writing response", zap.Error(err))
	}
}

func respondError(c *Core, w http.ResponseWriter, r *http.Request, err error) {
	status, ae := errorResponse(err)
	if status >= 500 {
		c.requestLogger(r).Warn("error", zap.Int("status", status), zap.Error(err))
	}
	respond(c, w, r, status, ae)
}

// objectURI resolves the path element of an object request against the
// core's root.  Paths may not climb out of the root.
func objectURI(c *Core, w http.ResponseWriter, r *http.Request) (*storage.URI, bool) {
	path := mux.Vars(r)["path"]
	if path == "" {
		respondError(c, w, r, srverr.ErrInvalid("no object path"))
		return nil, false
	}
	for _, elem := range strings.Split(path, "/") {
		if elem == ".." {
			respondError(c, w, r, srverr.ErrInvalid("invalid object path %q", path))
			return nil, false
		}
	}
	return c.root.AppendPath(path), true
}

// window is the contiguous byte range of an object selected by a
// request, expressed in whole-object coordinates.
type window struct {
	offset int64
	length int64
}

func (w *window) contentRange(size int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", w.offset, w.offset+w.length-1, size)
}

// parseWindow determines the range of the object a request selects,
// preferring the offset and length query parameters and falling back
// to a Range header.  A nil window with nil error means the request
// wants the whole object.
func parseWindow(r *http.Request, size int64) (*window, error) {
	if q := r.URL.Query(); q.Get("offset") != "" || q.Get("length") != "" {
		return parseWindowParams(q, size)
	}
	if h := r.Header.Get("Range"); h != "" {
		return parseRangeHeader(h, size)
	}
	return nil, nil
}

func parseWindowParams(q url.Values, size int64) (*window, error) {
	var offset int64
	var err error
	if arg := q.Get("offset"); arg != "" {
		if offset, err = strconv.ParseInt(arg, 10, 64); err != nil {
			return nil, srverr.ErrInvalid("invalid offset param %q: %w", arg, err)
		}
	}
	length := size - offset
	if arg := q.Get("length"); arg != "" {
		if length, err = strconv.ParseInt(arg, 10, 64); err != nil {
			return nil, srverr.ErrInvalid("invalid length param %q: %w", arg, err)
		}
		if length <= 0 {
			return nil, srverr.ErrInvalid("length param must be positive")
		}
	}
	return newWindow(offset, length, size)
}

func parseRangeHeader(h string, size int64) (*window, error) {
	if !strings.HasPrefix(h, "bytes=") {
		return nil, srverr.ErrInvalid("unsupported Range unit in %q", h)
	}
	spec := strings.TrimPrefix(h, "bytes=")
	if strings.Contains(spec, ",") {
		return nil, srverr.ErrInvalid("multiple ranges not supported")
	}
	i := strings.Index(spec, "-")
	if i < 0 {
		return nil, srverr.ErrInvalid("malformed Range header %q", h)
	}
	first, last := spec[:i], spec[i+1:]
	if first == "" {
		// A suffix range addresses bytes relative to the end of the
		// object, which a window cannot express.
		return nil, fmt.Errorf("suffix range %q: %w", h, takeio.ErrOutOfWindow)
	}
	offset, err := strconv.ParseInt(first, 10, 64)
	if err != nil {
		return nil, srverr.ErrInvalid("malformed Range header %q", h)
	}
	if last == "" {
		return newWindow(offset, size-offset, size)
	}
	end, err := strconv.ParseInt(last, 10, 64)
	if err != nil || end < offset {
		return nil, srverr.ErrInvalid("malformed Range header %q", h)
	}
	return newWindow(offset, end-offset+1, size)
}

func newWindow(offset, length, size int64) (*window, error) {
	if offset < 0 {
		return nil, srverr.ErrInvalid("negative range offset %d", offset)
	}
	if offset >= size {
		return nil, fmt.Errorf("range start %d not within object of size %d: %w",
			offset, size, takeio.ErrOutOfWindow)
	}
	if max := size - offset; length > max {
		length = max
	}
	return &window{offset: offset, length: length}, nil
}

func handleObjectGet(c *Core, w http.ResponseWriter, r *http.Request) {
	c.requests.WithLabelValues(r.Method).Inc()
	u, ok := objectURI(c, w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	size, err := c.engine.Size(ctx, u)
	if err != nil {
		respondError(c, w, r, err)
		return
	}
	win, err := parseWindow(r, size)
	if err != nil {
		respondError(c, w, r, err)
		return
	}
	w.Header().Set("Accept-Ranges", "bytes")
	if win == nil {
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
			return
		}
		reader, err := c.engine.Get(ctx, u)
		if err != nil {
			respondError(c, w, r, err)
			return
		}
		defer reader.Close()
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
		c.send(w, r, reader)
		return
	}
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Length", strconv.FormatInt(win.length, 10))
		w.Header().Set("Content-Range", win.contentRange(size))
		w.WriteHeader(http.StatusPartialContent)
		return
	}
	reader, err := storage.NewRangeReader(ctx, c.engine, u, uint64(win.offset), uint64(win.length))
	if err != nil {
		respondError(c, w, r, err)
		return
	}
	defer reader.Close()
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatInt(win.length, 10))
	w.Header().Set("Content-Range", win.contentRange(size))
	w.WriteHeader(http.StatusPartialContent)
	c.send(w, r, reader)
}

func (c *Core) send(w http.ResponseWriter, r *http.Request, reader io.Reader) {
	n, err := ctxio.Copy(r.Context(), w, reader)
	c.bytesServed.Add(float64(n))
	if err != nil {
		c.requestLogger(r).Warn("Error writing response", zap.Error(err))
	}
}

func handleStat(c *Core, w http.ResponseWriter, r *http.Request) {
	c.requests.WithLabelValues(r.Method).Inc()
	u, ok := objectURI(c, w, r)
	if !ok {
		return
	}
	size, err := c.engine.Size(r.Context(), u)
	if err != nil {
		respondError(c, w, r, err)
		return
	}
	respond(c, w, r, http.StatusOK, api.StatResponse{URI: u.String(), Size: size})
}
