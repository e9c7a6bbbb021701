package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/usecase"
)

// Server is the REST controller. All business endpoints live under /api
// and require a verified bearer token.
type Server struct {
	router   *chi.Mux
	uc       *usecase.UseCases
	verifier interfaces.TokenVerifier
	validate *validator.Validate
}

type Options func(*Server)

func New(uc *usecase.UseCases, verifier interfaces.TokenVerifier, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:   r,
		uc:       uc,
		verifier: verifier,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware(s.verifier))

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", s.listCustomers)
			r.Post("/", s.createCustomer)
			r.Get("/{id}", s.getCustomer)
			r.Put("/{id}", s.updateCustomer)
			r.Delete("/{id}", s.deleteCustomer)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", s.listInvoices)
			r.Post("/", s.createInvoice)
			r.Get("/{id}", s.getInvoice)
			r.Put("/{id}", s.updateInvoice)
			r.Delete("/{id}", s.deleteInvoice)
		})

		r.Route("/purchases", func(r chi.Router) {
			r.Route("/invoices", func(r chi.Router) {
				r.Get("/", s.listPurchaseInvoices)
				r.Post("/", s.createPurchaseInvoice)
				r.Get("/{id}", s.getPurchaseInvoice)
			})
			r.Route("/suppliers", func(r chi.Router) {
				r.Get("/", s.listSuppliers)
				r.Post("/", s.createSupplier)
				r.Get("/{id}", s.getSupplier)
				r.Put("/{id}", s.updateSupplier)
				r.Delete("/{id}", s.deleteSupplier)
			})
		})

		r.Route("/stock", func(r chi.Router) {
			r.Get("/", s.listStock)
			r.Post("/", s.createStock)
			r.Get("/{id}", s.getStock)
			r.Put("/{id}", s.updateStock)
			r.Delete("/{id}", s.deleteStock)
			r.Post("/{id}/actions", s.applyStockAction)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", s.getSettings)
			r.Patch("/", s.patchSettings)
			r.Put("/", s.putSettings)
			r.Post("/invoice-number", s.nextInvoiceNumber)
			r.Put("/invoice-number", s.setInvoiceNumber)
		})

		r.Route("/storage", func(r chi.Router) {
			r.Post("/signed-url", s.signedURL)
			r.Post("/upload", s.uploadFile)
		})

		r.Route("/ai", func(r chi.Router) {
			r.Post("/execute-action", s.executeAction)
			r.Post("/extract-bill", s.extractBill)
			r.Get("/actions", s.listActions)
			r.Get("/actions/{id}", s.getAction)

			r.Post("/voice/transcribe", s.transcribe)

			r.Route("/chat", func(r chi.Router) {
				r.Post("/", s.chat)
				r.Get("/sessions", s.listChatSessions)
				r.Post("/new-session", s.newChatSession)
				r.Get("/history", s.chatHistory)
				r.Delete("/session/{id}", s.deleteChatSession)
			})
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
