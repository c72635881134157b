package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/brimdata/takeio/pkg/s3io"
)

type S3Engine struct {
	client s3iface.S3API
}

var _ Engine = (*S3Engine)(nil)
var _ Reader = (*s3io.Reader)(nil)
var _ Sizer = (*s3io.Reader)(nil)

func NewS3() *S3Engine {
	return &S3Engine{
		client: s3io.NewClient(nil),
	}
}

func (s *S3Engine) Get(ctx context.Context, u *URI) (Reader, error) {
	r, err := s3io.NewReader(ctx, u.String(), s.client)
	return r, wrapS3Error(u, err)
}

func (s *S3Engine) Put(ctx context.Context, u *URI) (io.WriteCloser, error) {
	w, err := s3io.NewWriter(ctx, u.String(), s.client)
	return w, wrapS3Error(u, err)
}

func (s *S3Engine) Size(ctx context.Context, u *URI) (int64, error) {
	info, err := s3io.Stat(ctx, u.String(), s.client)
	return info.Size, wrapS3Error(u, err)
}

func (s *S3Engine) Exists(ctx context.Context, u *URI) (bool, error) {
	ok, err := s3io.Exists(ctx, u.String(), s.client)
	return ok, wrapS3Error(u, err)
}

func wrapS3Error(u *URI, err error) error {
	var reqerr awserr.RequestFailure
	if errors.As(err, &reqerr) && reqerr.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("%s: %w", u, ErrNotFound)
	}
	return err
}
