package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
	"github.com/gemledger-lab/gemledger/pkg/repository/memory"
	"github.com/gemledger-lab/gemledger/pkg/usecase"
)

// stubExtractor returns a canned extraction so tests can drive validation
// without a vision backend
type stubExtractor struct {
	result *model.BillExtraction
	calls  int
}

func (s *stubExtractor) ExtractBill(ctx context.Context, image []byte, mimeType string) (*model.BillExtraction, error) {
	s.calls++
	return s.result, nil
}

func validBillExtraction() *model.BillExtraction {
	return &model.BillExtraction{
		Supplier:      model.BillSupplier{Name: "Sharma Gold Traders"},
		InvoiceNumber: "GT-2024-118",
		InvoiceDate:   "2024-11-02",
		Amount:        152000,
	}
}

func TestExtractBillFillsDefaults(t *testing.T) {
	ctx := context.Background()
	extractor := &stubExtractor{result: validBillExtraction()}
	uc := usecase.New(memory.New(), usecase.WithBillExtractor(extractor))

	extracted := gt.R1(uc.Bill.Extract(ctx, "u1", "image/jpeg", 1024, strings.NewReader("img"))).NoError(t)
	gt.Value(t, extracted.InvoiceNumber).Equal("GT-2024-118")
	gt.Value(t, extracted.PaymentStatus).Equal(model.PurchasePaymentStatusUnpaid)
	gt.Value(t, extracted.Confidence).Equal(0.8)
	gt.Value(t, extractor.calls).Equal(1)
}

func TestExtractBillRejectsNonBillImage(t *testing.T) {
	ctx := context.Background()

	cases := map[string]func(*model.BillExtraction){
		"missing invoice number": func(b *model.BillExtraction) { b.InvoiceNumber = "" },
		"missing supplier name":  func(b *model.BillExtraction) { b.Supplier.Name = "" },
		"unparsed date":          func(b *model.BillExtraction) { b.InvoiceDate = "2nd Nov 2024" },
		"zero amount":            func(b *model.BillExtraction) { b.Amount = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			result := validBillExtraction()
			mutate(result)
			uc := usecase.New(memory.New(), usecase.WithBillExtractor(&stubExtractor{result: result}))

			_, err := uc.Bill.Extract(ctx, "u1", "image/jpeg", 1024, strings.NewReader("img"))
			gt.Error(t, err).Is(types.ErrValidation)
		})
	}
}

func TestExtractBillRejectsBadUploads(t *testing.T) {
	ctx := context.Background()
	extractor := &stubExtractor{result: validBillExtraction()}
	uc := usecase.New(memory.New(), usecase.WithBillExtractor(extractor))

	_, err := uc.Bill.Extract(ctx, "u1", "image/jpeg", usecase.MaxBillImageSize+1, strings.NewReader("img"))
	gt.Error(t, err).Is(types.ErrValidation)

	_, err = uc.Bill.Extract(ctx, "u1", "text/plain", 1024, strings.NewReader("not an image"))
	gt.Error(t, err).Is(types.ErrValidation)
	gt.Value(t, extractor.calls).Equal(0)
}

func TestExtractBillWithoutExtractor(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	_, err := uc.Bill.Extract(ctx, "u1", "image/jpeg", 1024, strings.NewReader("img"))
	gt.Value(t, err).NotNil()
}
