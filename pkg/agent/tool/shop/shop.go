package shop

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
)

// Option configures the tool set
type Option func(*proposeInvoiceTool)

// WithProposalObserver registers a callback invoked with the ID of every
// action the propose_invoice tool files
func WithProposalObserver(fn func(actionID string)) Option {
	return func(t *proposeInvoiceTool) {
		t.observer = fn
	}
}

// New builds the tools available to the chat assistant for one user's
// session. The assistant never mutates business data directly: the only
// write path is propose_invoice, which files an action that must be
// confirmed by the user before execution.
func New(repo interfaces.Repository, userID, sessionID string, opts ...Option) []gollem.Tool {
	propose := &proposeInvoiceTool{repo: repo, userID: userID, sessionID: sessionID}
	for _, opt := range opts {
		opt(propose)
	}
	return []gollem.Tool{
		propose,
		&searchCustomersTool{repo: repo, userID: userID},
		&listStockTool{repo: repo, userID: userID},
	}
}

func extractString(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", goerr.New("missing argument", goerr.V("key", key))
	}
	s, ok := raw.(string)
	if !ok {
		return "", goerr.New("argument is not a string", goerr.V("key", key))
	}
	return s, nil
}

func optionalString(args map[string]any, key string) string {
	if raw, ok := args[key]; ok {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return ""
}
