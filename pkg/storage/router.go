package storage

import (
	"context"
	"fmt"
	"io"
)

type Scheme string

const (
	FileScheme  Scheme = "file"
	StdioScheme Scheme = "stdio"
	HTTPScheme  Scheme = "http"
	HTTPSScheme Scheme = "https"
	S3Scheme    Scheme = "s3"
)

func knownScheme(s Scheme) bool {
	switch s {
	case FileScheme, StdioScheme, HTTPScheme, HTTPSScheme, S3Scheme:
		return true
	}
	return false
}

// Router is an Engine dispatching each call to the engine enabled for
// the URI's scheme.
type Router struct {
	routes map[Scheme]Engine
}

var _ Engine = (*Router)(nil)

func NewRouter() *Router {
	return &Router{routes: make(map[Scheme]Engine)}
}

func (r *Router) Enable(scheme Scheme) {
	var engine Engine
	switch scheme {
	case FileScheme:
		engine = NewFileSystem()
	case StdioScheme:
		engine = NewStdioEngine()
	case HTTPScheme, HTTPSScheme:
		engine = NewHTTP()
	case S3Scheme:
		engine = NewS3()
	default:
		panic(fmt.Sprintf("storage.Router: unknown scheme %q", scheme))
	}
	r.routes[scheme] = engine
}

func (r *Router) lookup(u *URI) (Engine, error) {
	scheme := Scheme(u.Scheme)
	if scheme == "" {
		scheme = FileScheme
	}
	engine, ok := r.routes[scheme]
	if !ok {
		return nil, fmt.Errorf("%s: unsupported scheme", u)
	}
	return engine, nil
}

func (r *Router) Get(ctx context.Context, u *URI) (Reader, error) {
	engine, err := r.lookup(u)
	if err != nil {
		return nil, err
	}
	return engine.Get(ctx, u)
}

func (r *Router) Put(ctx context.Context, u *URI) (io.WriteCloser, error) {
	engine, err := r.lookup(u)
	if err != nil {
		return nil, err
	}
	return engine.Put(ctx, u)
}

func (r *Router) Exists(ctx context.Context, u *URI) (bool, error) {
	engine, err := r.lookup(u)
	if err != nil {
		return false, err
	}
	return engine.Exists(ctx, u)
}

func (r *Router) Size(ctx context.Context, u *URI) (int64, error) {
	engine, err := r.lookup(u)
	if err != nil {
		return 0, err
	}
	return engine.Size(ctx, u)
}
