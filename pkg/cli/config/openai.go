package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/urfave/cli/v3"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/service/transcribe"
	"github.com/gemledger-lab/gemledger/pkg/service/vision"
)

// OpenAI holds configuration for the OpenAI-backed features: the chat
// assistant and voice transcription share one API key.
type OpenAI struct {
	apiKey string
}

// Flags returns CLI flags for OpenAI configuration
func (o *OpenAI) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key for the chat assistant and transcription",
			Category:    "AI",
			Sources:     cli.EnvVars("GEMLEDGER_OPENAI_API_KEY", "OPENAI_API_KEY"),
			Destination: &o.apiKey,
		},
	}
}

// LogAttrs returns log attributes for the OpenAI configuration
func (o *OpenAI) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("configured", o.apiKey != ""),
	}
}

// ConfigureLLM creates the chat LLM client. Returns nil if no API key is
// configured (the chat assistant is then disabled).
func (o *OpenAI) ConfigureLLM(ctx context.Context) (gollem.LLMClient, error) {
	if o.apiKey == "" {
		return nil, nil
	}

	client, err := openai.New(ctx, o.apiKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create OpenAI client")
	}
	return client, nil
}

// ConfigureTranscriber creates the Whisper transcriber. Returns nil if no
// API key is configured (voice transcription is then disabled).
func (o *OpenAI) ConfigureTranscriber() (interfaces.Transcriber, error) {
	if o.apiKey == "" {
		return nil, nil
	}
	return transcribe.New(o.apiKey)
}

// ConfigureBillExtractor creates the vision-based bill extractor. Returns
// nil if no API key is configured (bill extraction is then disabled).
func (o *OpenAI) ConfigureBillExtractor() (interfaces.BillExtractor, error) {
	if o.apiKey == "" {
		return nil, nil
	}
	return vision.New(o.apiKey)
}
