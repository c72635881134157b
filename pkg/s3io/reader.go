package s3io

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// Reader reads an s3 object through ranged GET requests, one per Read
// or ReadAt call, so seeks never transfer skipped data.
type Reader struct {
	ctx    context.Context
	client s3iface.S3API
	bucket string
	key    string
	offset int64
	size   int64
}

func NewReader(ctx context.Context, p string, client s3iface.S3API) (*Reader, error) {
	info, err := Stat(ctx, p, client)
	if err != nil {
		return nil, err
	}
	bucket, key, err := parsePath(p)
	if err != nil {
		return nil, err
	}
	return &Reader{
		ctx:    ctx,
		client: client,
		bucket: bucket,
		key:    key,
		size:   info.Size,
	}, nil
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.ReadAt(p, r.offset)
	r.offset += int64(n)
	if err == io.EOF && n > 0 {
		err = nil
	}
	return n, err
}

func (r *Reader) ReadAt(p []byte, off int64) (int, error) {
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
	out, err := r.client.GetObjectWithContext(r.ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, off+int64(len(p))-1)),
	})
	if err != nil {
		return 0, err
	}
	defer out.Body.Close()
	n, err := io.ReadFull(out.Body, p)
	if err == nil && clamped {
		err = io.EOF
	}
	return n, err
}

func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += r.offset
	case io.SeekEnd:
		offset += r.size
	default:
		return 0, errors.New("s3io.Reader.Seek: invalid whence")
	}
	if offset < 0 {
		return 0, errors.New("s3io.Reader.Seek: negative position")
	}
	r.offset = offset
	return offset, nil
}

func (r *Reader) Size() (int64, error) {
	return r.size, nil
}

func (r *Reader) Close() error {
	return nil
}
