package usecase

import (
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
	"github.com/gemledger-lab/gemledger/pkg/utils/logging"
)

// MaxBillImageSize caps bill photos at 10MB
const MaxBillImageSize = 10 << 20

// billImageTypes lists the MIME types the vision model accepts for bill
// extraction
var billImageTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

var billDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// BillUseCase extracts structured purchase invoice data from bill photos.
// The extractor is nil when no vision backend is configured.
type BillUseCase struct {
	repo      interfaces.Repository
	extractor interfaces.BillExtractor
}

func NewBillUseCase(repo interfaces.Repository) *BillUseCase {
	return &BillUseCase{repo: repo}
}

// Extract runs the vision model over an uploaded bill image and validates
// the result. Extractions missing the invoice number, a parseable date, the
// supplier name, or a positive amount are rejected: the photo most likely
// is not a bill.
func (uc *BillUseCase) Extract(ctx context.Context, userID, contentType string, size int64, image io.Reader) (*model.BillExtraction, error) {
	if uc.extractor == nil {
		return nil, goerr.New("bill extractor is not configured")
	}
	if size > MaxBillImageSize {
		return nil, goerr.Wrap(types.ErrValidation, "image file too large, maximum size is 10MB",
			goerr.V("size", size))
	}
	if !billImageTypes[contentType] {
		return nil, goerr.Wrap(types.ErrValidation, "invalid file type, only JPG, PNG, WebP and PDF are allowed",
			goerr.V("content_type", contentType))
	}

	data, err := io.ReadAll(io.LimitReader(image, MaxBillImageSize+1))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read bill image")
	}
	if len(data) > MaxBillImageSize {
		return nil, goerr.Wrap(types.ErrValidation, "image file too large, maximum size is 10MB")
	}

	extracted, err := uc.extractor.ExtractBill(ctx, data, contentType)
	if err != nil {
		return nil, err
	}
	if err := validateBillExtraction(extracted); err != nil {
		return nil, err
	}

	if extracted.PaymentStatus == "" {
		extracted.PaymentStatus = model.PurchasePaymentStatusUnpaid
	}
	if extracted.Confidence == 0 {
		extracted.Confidence = 0.8
	}

	logging.From(ctx).Info("extracted purchase bill",
		"user_id", userID,
		"supplier", extracted.Supplier.Name,
		"invoice_number", extracted.InvoiceNumber,
		"confidence", extracted.Confidence)
	return extracted, nil
}

func validateBillExtraction(b *model.BillExtraction) error {
	if strings.TrimSpace(b.Supplier.Name) == "" ||
		strings.TrimSpace(b.InvoiceNumber) == "" ||
		!billDatePattern.MatchString(b.InvoiceDate) ||
		b.Amount <= 0 {
		return goerr.Wrap(types.ErrValidation,
			"this image does not appear to be a valid purchase bill, upload a clear photo showing the invoice number, date and amount")
	}
	return nil
}
