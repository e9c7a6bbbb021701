package usecase_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/gemledger-lab/gemledger/pkg/domain/types"
	"github.com/gemledger-lab/gemledger/pkg/repository/memory"
	"github.com/gemledger-lab/gemledger/pkg/usecase"
)

// recordingStore counts calls so tests can assert the blob store was
// never touched on rejected requests
type recordingStore struct {
	uploadCalls int
	signCalls   int
	deleteCalls int
}

func (s *recordingStore) Upload(ctx context.Context, bucket, object, contentType string, data io.Reader) error {
	s.uploadCalls++
	return nil
}

func (s *recordingStore) SignedURL(ctx context.Context, bucket, object string, expires time.Duration) (string, error) {
	s.signCalls++
	return "https://signed.example/" + bucket + "/" + object, nil
}

func (s *recordingStore) Delete(ctx context.Context, bucket, object string) error {
	s.deleteCalls++
	return nil
}

func TestSignedURLForOwnPrefix(t *testing.T) {
	ctx := context.Background()
	store := &recordingStore{}
	uc := usecase.New(memory.New(), usecase.WithBlobStore(store))

	url := gt.R1(uc.Storage.SignedURL(ctx, "u1", "docs", "u1/passport.png", 0)).NoError(t)
	gt.Value(t, url).Equal("https://signed.example/docs/u1/passport.png")
	gt.Value(t, store.signCalls).Equal(1)
}

func TestSignedURLForeignPrefixRejectedBeforeStore(t *testing.T) {
	ctx := context.Background()
	store := &recordingStore{}
	uc := usecase.New(memory.New(), usecase.WithBlobStore(store))

	_, err := uc.Storage.SignedURL(ctx, "u1", "docs", "u2/passport.png", 0)
	gt.Error(t, err).Is(types.ErrForbidden)
	gt.Value(t, store.signCalls).Equal(0)
}

func TestSignedURLMissingFields(t *testing.T) {
	ctx := context.Background()
	store := &recordingStore{}
	uc := usecase.New(memory.New(), usecase.WithBlobStore(store))

	_, err := uc.Storage.SignedURL(ctx, "u1", "", "u1/x", 0)
	gt.Error(t, err).Is(types.ErrValidation)

	_, err = uc.Storage.SignedURL(ctx, "u1", "docs", "", 0)
	gt.Error(t, err).Is(types.ErrValidation)
	gt.Value(t, store.signCalls).Equal(0)
}

func TestUploadReturnsSignedURL(t *testing.T) {
	ctx := context.Background()
	store := &recordingStore{}
	uc := usecase.New(memory.New(), usecase.WithBlobStore(store))

	data := strings.NewReader("fake image bytes")
	url := gt.R1(uc.Storage.Upload(ctx, "u1", "docs", "u1/bill.png", "image/png", 16, data)).NoError(t)
	gt.Value(t, url).Equal("https://signed.example/docs/u1/bill.png")
	gt.Value(t, store.uploadCalls).Equal(1)
	gt.Value(t, store.signCalls).Equal(1)
}

func TestUploadForeignPrefixRejectedBeforeStore(t *testing.T) {
	ctx := context.Background()
	store := &recordingStore{}
	uc := usecase.New(memory.New(), usecase.WithBlobStore(store))

	_, err := uc.Storage.Upload(ctx, "u1", "docs", "u2/bill.png", "image/png", 16, strings.NewReader("x"))
	gt.Error(t, err).Is(types.ErrForbidden)
	gt.Value(t, store.uploadCalls).Equal(0)
}

func TestUploadRejectsOversizeAndBadType(t *testing.T) {
	ctx := context.Background()
	store := &recordingStore{}
	uc := usecase.New(memory.New(), usecase.WithBlobStore(store))

	_, err := uc.Storage.Upload(ctx, "u1", "docs", "u1/bill.png", "image/png",
		usecase.MaxUploadSize+1, strings.NewReader("x"))
	gt.Error(t, err).Is(types.ErrValidation)

	_, err = uc.Storage.Upload(ctx, "u1", "docs", "u1/report.zip", "application/zip",
		16, strings.NewReader("x"))
	gt.Error(t, err).Is(types.ErrValidation)
	gt.Value(t, store.uploadCalls).Equal(0)
}
