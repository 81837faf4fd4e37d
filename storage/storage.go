package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/fingerchart/constants"
	"github.com/jsphweid/fingerchart/layout"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

var ErrDestination = errors.New("invalid upload destination")

// Destination is an S3 object location.
type Destination struct {
	Bucket string
	Key    string
}

func (d Destination) String() string {
	return "s3://" + d.Bucket + "/" + d.Key
}

// ParseDestination accepts s3://bucket/key. A key ending in "/" is a
// prefix; the uploaded file's base name is appended to it by ObjectFor.
func ParseDestination(raw string) (Destination, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "s3" || u.Host == "" {
		return Destination{}, fmt.Errorf("%w: %q, want s3://bucket/key", ErrDestination, raw)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return Destination{}, fmt.Errorf("%w: %q has no object key", ErrDestination, raw)
	}
	return Destination{Bucket: u.Host, Key: key}, nil
}

// ObjectFor resolves prefix destinations against the local file name.
func (d Destination) ObjectFor(path string) Destination {
	if strings.HasSuffix(d.Key, "/") {
		d.Key += filepath.Base(path)
	}
	return d
}

func newSession() (*session.Session, error) {
	cfg := &aws.Config{
		Region: aws.String(constants.GetAWSRegion()),
	}
	if endpoint := constants.GetS3Endpoint(); endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	return session.NewSession(cfg)
}

// Upload copies the file at path to dest.
func Upload(ctx context.Context, dest Destination, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sess, err := newSession()
	if err != nil {
		return fmt.Errorf("could not create an S3 session: %w", err)
	}

	dest = dest.ObjectFor(path)
	input := &s3manager.UploadInput{
		Bucket: aws.String(dest.Bucket),
		Key:    aws.String(dest.Key),
		Body:   f,
	}
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	res, err := s3manager.NewUploader(sess).UploadWithContext(ctx, input)
	if err != nil {
		return fmt.Errorf("upload to %s: %w", dest, err)
	}
	layout.Logger().Info("chart uploaded", "location", res.Location)
	return nil
}
