package interfaces

import (
	"context"
	"io"
	"time"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/model/auth"
)

// BlobStore stores uploaded objects, issues short-lived download URLs for
// them, and deletes orphaned ones. Implemented by the Google Cloud Storage
// service.
type BlobStore interface {
	Upload(ctx context.Context, bucket, object, contentType string, data io.Reader) error
	SignedURL(ctx context.Context, bucket, object string, expires time.Duration) (string, error)
	Delete(ctx context.Context, bucket, object string) error
}

// BillExtractor reads a photographed purchase bill and returns the
// structured invoice data printed on it. Implemented by the OpenAI Vision
// service.
type BillExtractor interface {
	ExtractBill(ctx context.Context, image []byte, mimeType string) (*model.BillExtraction, error)
}

// Transcriber converts recorded audio into text. Implemented by the OpenAI
// Whisper service. Only Text, DetectedLanguage and Confidence are filled in
// the returned Transcription.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename, language string) (*model.Transcription, error)
}

// TokenVerifier validates a bearer credential and returns the caller
// identity. Implemented against the external auth service's JWKS.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Identity, error)
}
