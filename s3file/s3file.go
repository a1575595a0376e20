// Package s3file describes objects staged in S3 as [fieldschema.File]
// values, so file rules can check uploads that went straight to a bucket.
// Clients send the object key in the record; [Describer.Normalizer] swaps
// it for the object's descriptor before evaluation.
package s3file

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/Gobd/fieldschema"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var (
	ErrInvalidKey     = errors.New("invalid object key")
	ErrObjectNotFound = errors.New("object not found")
	ErrAccessDenied   = errors.New("access denied")
)

// HeadClient is the subset of *s3.Client the describer needs.
type HeadClient interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Describer reads object metadata from one bucket.
type Describer struct {
	client HeadClient
	bucket string
	logger *slog.Logger
}

// Option configures a [Describer].
type Option func(*Describer)

// WithLogger sets the logger used when a normalizer cannot describe a key.
func WithLogger(l *slog.Logger) Option {
	return func(d *Describer) { d.logger = l }
}

// New returns a describer for bucket.
func New(client HeadClient, bucket string, opts ...Option) *Describer {
	d := &Describer{client: client, bucket: bucket, logger: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Describe returns the descriptor of the object at key. The filename is the
// key's last path element.
func (d *Describer) Describe(ctx context.Context, key string) (fieldschema.File, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return fieldschema.File{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	out, err := d.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fieldschema.File{}, classify(err, key)
	}
	return fieldschema.File{
		Filename:    path.Base(key),
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
	}, nil
}

// Normalizer replaces string keys held in fields with their descriptors.
// Keys that cannot be described are left in place, so the field fails its
// type check instead of passing silently.
func (d *Describer) Normalizer(fields ...string) fieldschema.Normalizer {
	return func(ctx context.Context, rec fieldschema.Record) {
		for _, f := range fields {
			key, ok := rec[f].(string)
			if !ok {
				continue
			}
			file, err := d.Describe(ctx, key)
			if err != nil {
				d.logger.WarnContext(ctx, "s3 object not described",
					slog.String("field", f), slog.String("key", key), slog.String("error", err.Error()))
				continue
			}
			rec[f] = file
		}
	}
}

func classify(err error, key string) error {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %s", ErrAccessDenied, key)
		}
	}
	return fmt.Errorf("head object %s: %w", key, err)
}
