package storage

import (
	"net/url"
	"strings"
)

type URI url.URL

const (
	Stdin  = "stdio:///stdin"
	Stdout = "stdio:///stdout"
	Stderr = "stdio:///stderr"
)

// ParseURI parses the path using url.Parse.  If the provided uri does
// not contain a known scheme, the scheme is set to file.  Relative
// paths are treated as files and resolved as absolute paths using
// filepath.Abs.  The names stdin, stdout, and stderr parse to the
// corresponding stdio URIs.  If path is empty, a pointer to a
// zero-valued URI is returned.
func ParseURI(path string) (*URI, error) {
	if path == "" {
		return &URI{}, nil
	}
	if u, ok := stdio(path); ok {
		return u, nil
	}
	u, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	if !knownScheme(Scheme(u.Scheme)) {
		// If we don't know the scheme, either it's empty string,
		// implying a file, or it's a file path with a colon embedded,
		// so we parse it either way as a file.
		return parseBarePath(path)
	}
	return (*URI)(u), nil
}

func MustParseURI(path string) *URI {
	u, err := ParseURI(path)
	if err != nil {
		panic(err)
	}
	return u
}

func stdio(path string) (*URI, bool) {
	switch path {
	case "stdin":
		return &URI{Scheme: "stdio", Path: "/stdin"}, true
	case "stdout":
		return &URI{Scheme: "stdio", Path: "/stdout"}, true
	case "stderr":
		return &URI{Scheme: "stdio", Path: "/stderr"}, true
	default:
		return nil, false
	}
}

func (u URI) String() string {
	return (*url.URL)(&u).String()
}

func (u *URI) HasScheme(s Scheme) bool {
	return Scheme(u.Scheme) == s
}

func (p *URI) AppendPath(elem ...string) *URI {
	u := *p
	for _, el := range elem {
		u.Path = u.Path + "/" + el
	}
	return &u
}

func (u *URI) RelPath(target URI) string {
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return strings.TrimPrefix(target.Path, u.Path)
}

func (u *URI) IsZero() bool {
	return *u == URI{}
}

func (u *URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *URI) UnmarshalText(b []byte) error {
	uri, err := ParseURI(string(b))
	if err != nil {
		return err
	}
	*u = *uri
	return nil
}
