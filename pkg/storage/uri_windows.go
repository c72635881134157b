package storage

import (
	"path/filepath"
	"regexp"
)

const uncPrefix = `\\`

var winVolumeRe = regexp.MustCompile("^[a-zA-Z]:")

func parseBarePath(path string) (*URI, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	// An absolute windows path begins with a volume, so prepend a
	// slash to form a well formed file URI path.
	return &URI{Scheme: string(FileScheme), Path: "/" + filepath.ToSlash(path)}, nil
}

func (u *URI) Filepath() string {
	path := u.Path
	if path[0] == '/' && winVolumeRe.MatchString(path[1:]) {
		path = path[1:]
	}
	path = filepath.FromSlash(path)
	// A host means a UNC path.
	if u.Host != "" {
		path = uncPrefix + filepath.Join(u.Host, path)
	}
	return path
}
