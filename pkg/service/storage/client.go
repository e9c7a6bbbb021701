package storage

import (
	"context"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
)

// DefaultExpiry is how long a signed download URL stays valid
const DefaultExpiry = 15 * time.Minute

// client implements interfaces.BlobStore on Google Cloud Storage.
// Signing uses the client's credentials (ADC on Cloud Run, or explicit
// service account JSON locally), via the bucket-level SignedURL helper.
type client struct {
	gcs *gcs.Client
}

var _ interfaces.BlobStore = &client{}

type Option func(*options)

type options struct {
	credentialsJSON []byte
}

// WithCredentialsJSON uses an explicit service account key instead of ADC
func WithCredentialsJSON(data []byte) Option {
	return func(o *options) {
		o.credentialsJSON = data
	}
}

func New(ctx context.Context, opts ...Option) (interfaces.BlobStore, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var clientOpts []option.ClientOption
	if len(o.credentialsJSON) > 0 {
		clientOpts = append(clientOpts, option.WithCredentialsJSON(o.credentialsJSON))
	}

	c, err := gcs.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}
	return &client{gcs: c}, nil
}

// Upload writes the object with DoesNotExist so a concurrent upload to the
// same path fails instead of silently overwriting
func (c *client) Upload(ctx context.Context, bucket, object, contentType string, data io.Reader) error {
	w := c.gcs.Bucket(bucket).Object(object).
		If(gcs.Conditions{DoesNotExist: true}).
		NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "private, max-age=3600"

	if _, err := io.Copy(w, data); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write object",
			goerr.V("bucket", bucket),
			goerr.V("object", object))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finish object upload",
			goerr.V("bucket", bucket),
			goerr.V("object", object))
	}
	return nil
}

func (c *client) SignedURL(ctx context.Context, bucket, object string, expires time.Duration) (string, error) {
	if expires <= 0 {
		expires = DefaultExpiry
	}

	url, err := c.gcs.Bucket(bucket).SignedURL(object, &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expires),
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign object URL",
			goerr.V("bucket", bucket),
			goerr.V("object", object))
	}
	return url, nil
}

func (c *client) Delete(ctx context.Context, bucket, object string) error {
	if err := c.gcs.Bucket(bucket).Object(object).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete object",
			goerr.V("bucket", bucket),
			goerr.V("object", object))
	}
	return nil
}
