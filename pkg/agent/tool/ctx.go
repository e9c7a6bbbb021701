package tool

import "context"

// UpdateFunc posts a progress line into the chat session while a shop tool
// runs, so the user sees what the assistant is doing before the final
// answer arrives.
type UpdateFunc func(ctx context.Context, message string)

type contextKey struct{}

// WithUpdate attaches the progress callback to the context the tools run
// under.
func WithUpdate(ctx context.Context, fn UpdateFunc) context.Context {
	return context.WithValue(ctx, contextKey{}, fn)
}

// Update reports progress through the callback in ctx. Without one (tools
// invoked outside a chat session) it does nothing.
func Update(ctx context.Context, message string) {
	if fn, ok := ctx.Value(contextKey{}).(UpdateFunc); ok {
		fn(ctx, message)
	}
}
