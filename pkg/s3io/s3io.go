// Package s3io reads and writes s3 objects through seekable readers
// and pipelined writers.  Callers inject the s3 client so unit tests
// can stand in narrow fakes.
package s3io

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

var ErrInvalidS3Path = errors.New("path is not a valid s3 location")

func IsS3Path(p string) bool {
	_, _, err := parsePath(p)
	return err == nil
}

func parsePath(p string) (bucket, key string, err error) {
	u, err := url.Parse(p)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" {
		return "", "", ErrInvalidS3Path
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

// NewClient creates an s3 client from cfg, filling in the region from
// $AWS_REGION with a us-east-1 default and honoring $AWS_S3_ENDPOINT
// for non-AWS endpoints, which require path style addressing.
func NewClient(cfg *aws.Config) *s3.S3 {
	if cfg == nil {
		cfg = &aws.Config{}
	}
	if cfg.Region == nil {
		region := os.Getenv("AWS_REGION")
		if region == "" {
			region = "us-east-1"
		}
		cfg.Region = aws.String(region)
	}
	if cfg.Endpoint == nil {
		if endpoint := os.Getenv("AWS_S3_ENDPOINT"); endpoint != "" {
			cfg.Endpoint = aws.String(endpoint)
			cfg.S3ForcePathStyle = aws.Bool(true)
		}
	}
	sess := session.Must(session.NewSession(cfg))
	return s3.New(sess)
}

type Info struct {
	Name    string
	Size    int64
	ModTime time.Time
}

func Stat(ctx context.Context, p string, client s3iface.S3API) (Info, error) {
	bucket, key, err := parsePath(p)
	if err != nil {
		return Info{}, err
	}
	out, err := client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return Info{}, err
	}
	return Info{
		Name:    path.Base(key),
		Size:    aws.Int64Value(out.ContentLength),
		ModTime: aws.TimeValue(out.LastModified),
	}, nil
}

func Exists(ctx context.Context, p string, client s3iface.S3API) (bool, error) {
	_, err := Stat(ctx, p, client)
	if err != nil {
		var reqerr awserr.RequestFailure
		if errors.As(err, &reqerr) && reqerr.StatusCode() == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// uploader is an interface wrapper for s3manager.Uploader. This is only here
// for unit testing purposes.
type uploader interface {
	UploadWithContext(aws.Context, *s3manager.UploadInput, ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// Writer streams bytes into an s3 object through a pipe feeding a
// background multipart upload.  The upload starts on the first Write
// and any upload error surfaces on the next Write or on Close.
type Writer struct {
	ctx      context.Context
	writer   *io.PipeWriter
	uploader uploader
	bucket   string
	key      string
	once     sync.Once
	done     chan struct{}
	err      error
}

func NewWriter(ctx context.Context, p string, client s3iface.S3API, options ...func(*s3manager.Uploader)) (*Writer, error) {
	bucket, key, err := parsePath(p)
	if err != nil {
		return nil, err
	}
	return &Writer{
		ctx:      ctx,
		bucket:   bucket,
		key:      key,
		uploader: s3manager.NewUploaderWithClient(client, options...),
		done:     make(chan struct{}),
	}, nil
}

func (w *Writer) init() {
	pr, pw := io.Pipe()
	w.writer = pw
	go func() {
		_, err := w.uploader.UploadWithContext(w.ctx, &s3manager.UploadInput{
			Bucket: aws.String(w.bucket),
			Key:    aws.String(w.key),
			Body:   pr,
		})
		w.err = err
		close(w.done)
		_ = pr.CloseWithError(err) // can ignore, return value will always be nil
	}()
}

func (w *Writer) Write(b []byte) (int, error) {
	w.once.Do(w.init)
	return w.writer.Write(b)
}

func (w *Writer) Close() error {
	w.once.Do(w.init)
	err := w.writer.Close()
	<-w.done
	if err != nil {
		return err
	}
	return w.err
}
