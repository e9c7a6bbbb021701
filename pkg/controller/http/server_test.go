package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	httpctrl "github.com/gemledger-lab/gemledger/pkg/controller/http"
	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/model/auth"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
	"github.com/gemledger-lab/gemledger/pkg/repository/memory"
	"github.com/gemledger-lab/gemledger/pkg/service/authn"
	"github.com/gemledger-lab/gemledger/pkg/usecase"
)

const testUserID = "user-1"

type stubBlobStore struct {
	signCalls   int
	uploadCalls int
	uploaded    []string
}

func (s *stubBlobStore) Upload(ctx context.Context, bucket, object, contentType string, data io.Reader) error {
	s.uploadCalls++
	s.uploaded = append(s.uploaded, bucket+"/"+object)
	return nil
}

func (s *stubBlobStore) SignedURL(ctx context.Context, bucket, object string, expires time.Duration) (string, error) {
	s.signCalls++
	return "https://storage.example.com/" + bucket + "/" + object + "?sig=test", nil
}

func (s *stubBlobStore) Delete(ctx context.Context, bucket, object string) error {
	return nil
}

var _ interfaces.BlobStore = &stubBlobStore{}

func newTestServer(t *testing.T) (*httpctrl.Server, *memory.Memory, *stubBlobStore) {
	t.Helper()

	repo := memory.New()
	signer := &stubBlobStore{}
	uc := usecase.New(repo, usecase.WithBlobStore(signer))
	verifier := &authn.StaticVerifier{
		Identity: auth.Identity{Sub: testUserID, Email: "owner@example.com"},
	}
	return httpctrl.New(uc, verifier), repo, signer
}

func doRequest(t *testing.T, srv *httpctrl.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw := gt.R1(json.Marshal(body)).NoError(t)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope)).Required()
	gt.NoError(t, json.Unmarshal(envelope.Data, out)).Required()
}

func TestAuthRequired(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)

	var resp struct {
		Error string `json:"error"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	gt.Value(t, resp.Error != "").Equal(true)
}

func TestHealthIsPublic(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestCreateStockAcceptsStringNumbers(t *testing.T) {
	srv, _, _ := newTestServer(t)

	// clients send numeric fields as JSON strings or numbers
	rec := doRequest(t, srv, http.MethodPost, "/api/stock", map[string]any{
		"item_number":    "ST-001",
		"category":       "ring",
		"material":       "gold",
		"weight":         "10.5",
		"purchase_price": 52000,
		"purity":         "22K",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var item model.StockItem
	decodeData(t, rec, &item)
	gt.Value(t, item.Weight).Equal(10.5)
	gt.Value(t, item.PurchasePrice).Equal(52000.0)
	gt.Value(t, item.IsSold).Equal(false)
	gt.Value(t, item.ID != "").Equal(true)
}

func TestStockActionRoundTrip(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/stock", map[string]any{
		"item_number":    "ST-002",
		"category":       "chain",
		"material":       "gold",
		"weight":         20,
		"purchase_price": 100000,
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	var item model.StockItem
	decodeData(t, rec, &item)

	rec = doRequest(t, srv, http.MethodPost, "/api/stock/"+item.ID+"/actions", map[string]any{
		"action": "mark_sold",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var sold model.StockItem
	decodeData(t, rec, &sold)
	gt.Value(t, sold.IsSold).Equal(true)

	// repeating the same transition is rejected
	rec = doRequest(t, srv, http.MethodPost, "/api/stock/"+item.ID+"/actions", map[string]any{
		"action": "mark_sold",
	})
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestCreateStockAcceptsZeroValues(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/stock", map[string]any{
		"item_number":    "G-1",
		"category":       "pendant",
		"material":       "silver",
		"weight":         0,
		"purchase_price": 0,
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var item model.StockItem
	decodeData(t, rec, &item)
	gt.Value(t, item.Weight).Equal(0.0)
	gt.Value(t, item.PurchasePrice).Equal(0.0)
}

func TestStockActionRejectsUnknown(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/stock", map[string]any{
		"item_number":    "ST-003",
		"category":       "ring",
		"material":       "gold",
		"weight":         5,
		"purchase_price": 25000,
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	var item model.StockItem
	decodeData(t, rec, &item)

	rec = doRequest(t, srv, http.MethodPost, "/api/stock/"+item.ID+"/actions", map[string]any{
		"action": "destroy",
	})
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

	var resp struct {
		Error string `json:"error"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	gt.Value(t, strings.Contains(resp.Error, "mark_sold")).Equal(true)
}

func TestPurchaseInvoiceItemCountValidation(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/purchases/invoices", map[string]any{
		"invoice_number":  "SUP-77",
		"invoice_date":    "2026-08-20",
		"amount":          5000,
		"number_of_items": -5,
	})
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

	rec = doRequest(t, srv, http.MethodPost, "/api/purchases/invoices", map[string]any{
		"invoice_number":  "SUP-77",
		"invoice_date":    "2026-08-20",
		"amount":          5000,
		"number_of_items": 3,
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
}

func TestCustomerIdentityValidation(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/customers", map[string]any{
		"name":          "Ravi Mehta",
		"identity_type": "others",
	})
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

	rec = doRequest(t, srv, http.MethodPost, "/api/customers", map[string]any{
		"name":               "Ravi Mehta",
		"identity_type":      "others",
		"identity_reference": "passport X123",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var customer model.Customer
	decodeData(t, rec, &customer)
	gt.Value(t, customer.UserID).Equal(testUserID)
}

func TestUnknownCustomerReturns404(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/customers/no-such-id", nil)
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestSignedURLOwnerScoping(t *testing.T) {
	srv, _, signer := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/storage/signed-url", map[string]any{
		"bucket": "identity-docs",
		"path":   testUserID + "/passport.png",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		SignedURL string `json:"signedUrl"`
	}
	decodeData(t, rec, &resp)
	gt.Value(t, resp.SignedURL != "").Equal(true)
	gt.Value(t, signer.signCalls).Equal(1)

	// a path under another user's prefix never reaches the signer
	rec = doRequest(t, srv, http.MethodPost, "/api/storage/signed-url", map[string]any{
		"bucket": "identity-docs",
		"path":   "user-2/passport.png",
	})
	gt.Value(t, rec.Code).Equal(http.StatusForbidden)
	gt.Value(t, signer.signCalls).Equal(1)
}

func TestInvoiceNumberEndpoints(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/settings/invoice-number", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var state model.InvoiceNumberState
	decodeData(t, rec, &state)
	gt.Value(t, state.CurrentNumber).Equal(1)
	gt.Value(t, state.NextNumber).Equal(2)

	rec = doRequest(t, srv, http.MethodPut, "/api/settings/invoice-number", map[string]any{
		"number": 50,
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var set struct {
		NextNumber int `json:"nextNumber"`
	}
	decodeData(t, rec, &set)
	gt.Value(t, set.NextNumber).Equal(50)

	rec = doRequest(t, srv, http.MethodPost, "/api/settings/invoice-number", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	decodeData(t, rec, &state)
	gt.Value(t, state.CurrentNumber).Equal(50)
	gt.Value(t, state.NextNumber).Equal(51)

	rec = doRequest(t, srv, http.MethodPut, "/api/settings/invoice-number", map[string]any{
		"number": 0,
	})
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestSettingsMergeKeepsUnpatchedFields(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPut, "/api/settings", map[string]any{
		"firm_name":  "Mehta Jewellers",
		"firm_phone": "+91-9000000000",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = doRequest(t, srv, http.MethodPatch, "/api/settings", map[string]any{
		"firm_gstin": "27AAAAA0000A1Z5",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var settings model.Settings
	decodeData(t, rec, &settings)
	gt.Value(t, settings.FirmName).Equal("Mehta Jewellers")
	gt.Value(t, settings.FirmGSTIN).Equal("27AAAAA0000A1Z5")
	gt.Value(t, settings.UserID).Equal(testUserID)
}

func TestExecuteActionEndpoint(t *testing.T) {
	srv, repo, _ := newTestServer(t)
	ctx := context.Background()

	rec := doRequest(t, srv, http.MethodPut, "/api/settings", map[string]any{
		"firm_name": "Mehta Jewellers",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	action := gt.R1(repo.Action().Create(ctx, &model.Action{
		UserID:     testUserID,
		ActionType: types.ActionTypeCreateInvoice,
		ExtractedData: map[string]any{
			"customerName": "Asha Patel",
			"items": []any{
				map[string]any{
					"name":         "gold ring",
					"quantity":     1.0,
					"weight":       10.0,
					"pricePerGram": 6000.0,
					"total":        60000.0,
				},
			},
		},
	})).NoError(t)
	gt.Value(t, action.Status).Equal(types.ActionStatusAwaitingConfirmation)

	rec = doRequest(t, srv, http.MethodPost, "/api/ai/execute-action", map[string]any{
		"actionId": action.ID,
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var result model.ActionResult
	decodeData(t, rec, &result)
	gt.Value(t, result.Success).Equal(true)
	gt.Value(t, result.EntityID != "").Equal(true)

	rec = doRequest(t, srv, http.MethodGet, "/api/ai/actions/"+action.ID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var stored model.Action
	decodeData(t, rec, &stored)
	gt.Value(t, stored.Status).Equal(types.ActionStatusCompleted)
	gt.Value(t, stored.EntityID).Equal(result.EntityID)

	// a second confirmation of the same action is rejected
	rec = doRequest(t, srv, http.MethodPost, "/api/ai/execute-action", map[string]any{
		"actionId": action.ID,
	})
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestInvoiceListPagination(t *testing.T) {
	srv, _, _ := newTestServer(t)

	for _, num := range []string{"INV-001", "INV-002", "INV-003"} {
		rec := doRequest(t, srv, http.MethodPost, "/api/invoices", map[string]any{
			"invoice_number":         num,
			"customer_name_snapshot": "Asha Patel",
			"invoice_date":           "2026-08-01",
			"subtotal":               1000,
			"grand_total":            1030,
			"items": []any{
				map[string]any{
					"name": "ring", "quantity": 1, "weight": 2,
					"price_per_gram": 500, "total": 1000,
				},
			},
		})
		gt.Value(t, rec.Code).Equal(http.StatusCreated)
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/invoices?page=2&limit=2", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var page struct {
		Invoices []*model.Invoice `json:"invoices"`
		Total    int              `json:"total"`
		Page     int              `json:"page"`
	}
	decodeData(t, rec, &page)
	gt.Value(t, page.Total).Equal(3)
	gt.Value(t, page.Page).Equal(2)
	gt.A(t, page.Invoices).Length(1)
}

func TestChatWithoutLLMFails(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/ai/chat", map[string]any{
		"message": "create an invoice for Asha",
	})
	gt.Value(t, rec.Code).Equal(http.StatusInternalServerError)
}

func TestChatSessionLifecycle(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/ai/chat/new-session", map[string]any{
		"title": "August orders",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	var session model.ChatSession
	decodeData(t, rec, &session)
	gt.Value(t, session.Title).Equal("August orders")

	rec = doRequest(t, srv, http.MethodGet, "/api/ai/chat/sessions", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var sessions []*model.ChatSessionSummary
	decodeData(t, rec, &sessions)
	gt.A(t, sessions).Length(1)

	rec = doRequest(t, srv, http.MethodGet, "/api/ai/chat/history?sessionId="+session.ID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = doRequest(t, srv, http.MethodDelete, "/api/ai/chat/session/"+session.ID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = doRequest(t, srv, http.MethodGet, "/api/ai/chat/sessions", nil)
	decodeData(t, rec, &sessions)
	gt.A(t, sessions).Length(0)
}

func TestInvoiceUpdateAndDelete(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/invoices", map[string]any{
		"invoice_number":         "INV-010",
		"customer_name_snapshot": "Asha Patel",
		"invoice_date":           "2026-08-01",
		"subtotal":               1000,
		"grand_total":            1030,
		"items": []any{
			map[string]any{
				"name": "ring", "quantity": 1, "weight": 2,
				"price_per_gram": 500, "total": 1000,
			},
		},
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	var created model.Invoice
	decodeData(t, rec, &created)

	rec = doRequest(t, srv, http.MethodPut, "/api/invoices/"+created.ID, map[string]any{
		"invoice_number":         "INV-010",
		"customer_name_snapshot": "Asha Patel",
		"invoice_date":           "2026-08-02",
		"subtotal":               2000,
		"grand_total":            2060,
		"items": []any{
			map[string]any{
				"name": "bangle", "quantity": 2, "weight": 4,
				"price_per_gram": 500, "total": 2000,
			},
		},
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = doRequest(t, srv, http.MethodGet, "/api/invoices/"+created.ID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var fetched struct {
		model.Invoice
		Items []*model.InvoiceItem `json:"items"`
	}
	decodeData(t, rec, &fetched)
	gt.Value(t, fetched.InvoiceDate).Equal("2026-08-02")
	gt.A(t, fetched.Items).Length(1)
	gt.Value(t, fetched.Items[0].Name).Equal("bangle")

	rec = doRequest(t, srv, http.MethodDelete, "/api/invoices/"+created.ID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = doRequest(t, srv, http.MethodGet, "/api/invoices/"+created.ID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestStockUpdateKeepsSoldState(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/stock", map[string]any{
		"item_number":    "ST-050",
		"category":       "ring",
		"material":       "gold",
		"weight":         10,
		"purchase_price": 50000,
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	var item model.StockItem
	decodeData(t, rec, &item)

	rec = doRequest(t, srv, http.MethodPost, "/api/stock/"+item.ID+"/actions", map[string]any{
		"action": "mark_sold",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	// a PUT rewrites descriptive fields but never the sold flag
	rec = doRequest(t, srv, http.MethodPut, "/api/stock/"+item.ID, map[string]any{
		"item_number":    "ST-050",
		"category":       "ring",
		"material":       "gold",
		"weight":         10.2,
		"purchase_price": 50000,
		"purity":         "22K",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var updated model.StockItem
	decodeData(t, rec, &updated)
	gt.Value(t, updated.Weight).Equal(10.2)
	gt.Value(t, updated.Purity).Equal("22K")
	gt.Value(t, updated.IsSold).Equal(true)
	gt.Value(t, updated.SoldAt).NotNil()

	rec = doRequest(t, srv, http.MethodDelete, "/api/stock/"+item.ID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = doRequest(t, srv, http.MethodGet, "/api/stock/"+item.ID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestSupplierUpdateAndDelete(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/purchases/suppliers", map[string]any{
		"name":  "Sharma Gold Traders",
		"phone": "9876543210",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	var created model.Supplier
	decodeData(t, rec, &created)

	rec = doRequest(t, srv, http.MethodPut, "/api/purchases/suppliers/"+created.ID, map[string]any{
		"name":    "Sharma Gold Traders",
		"phone":   "9876543210",
		"address": "MG Road, Pune",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var updated model.Supplier
	decodeData(t, rec, &updated)
	gt.Value(t, updated.Address).Equal("MG Road, Pune")

	// a name-less update is rejected
	rec = doRequest(t, srv, http.MethodPut, "/api/purchases/suppliers/"+created.ID, map[string]any{
		"phone": "9876543210",
	})
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

	rec = doRequest(t, srv, http.MethodDelete, "/api/purchases/suppliers/"+created.ID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = doRequest(t, srv, http.MethodGet, "/api/purchases/suppliers/"+created.ID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func doUpload(t *testing.T, srv *httpctrl.Server, bucket, path string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	gt.NoError(t, mw.WriteField("bucket", bucket)).Required()
	gt.NoError(t, mw.WriteField("path", path)).Required()

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="doc.png"`)
	hdr.Set("Content-Type", "image/png")
	part := gt.R1(mw.CreatePart(hdr)).NoError(t)
	gt.R1(part.Write([]byte("fake png bytes"))).NoError(t)
	gt.NoError(t, mw.Close()).Required()

	req := httptest.NewRequest(http.MethodPost, "/api/storage/upload", &buf)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestUploadEndpoint(t *testing.T) {
	srv, _, store := newTestServer(t)

	rec := doUpload(t, srv, "documents", testUserID+"/bill.png")
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		Path      string `json:"path"`
		SignedURL string `json:"signedUrl"`
	}
	decodeData(t, rec, &resp)
	gt.Value(t, resp.Path).Equal(testUserID + "/bill.png")
	gt.Value(t, resp.SignedURL != "").Equal(true)
	gt.Value(t, store.uploadCalls).Equal(1)

	// uploads outside the caller's own prefix never reach the store
	rec = doUpload(t, srv, "documents", "user-2/bill.png")
	gt.Value(t, rec.Code).Equal(http.StatusForbidden)
	gt.Value(t, store.uploadCalls).Equal(1)
}

func TestExtractBillWithoutExtractorFails(t *testing.T) {
	srv, _, _ := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="bill.jpg"`)
	hdr.Set("Content-Type", "image/jpeg")
	part := gt.R1(mw.CreatePart(hdr)).NoError(t)
	gt.R1(part.Write([]byte("fake jpeg bytes"))).NoError(t)
	gt.NoError(t, mw.Close()).Required()

	req := httptest.NewRequest(http.MethodPost, "/api/ai/extract-bill", &buf)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Value(t, rec.Code).Equal(http.StatusInternalServerError)
}
