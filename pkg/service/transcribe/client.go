package transcribe

import (
	"context"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sashabaranov/go-openai"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
)

// contextPrompt primes Whisper with the domain vocabulary it will hear
const contextPrompt = "This is a conversation about jewelry shop invoices. " +
	"Common terms: gold, silver, ring, necklace, bangle, gram, rupees, customer name, invoice."

// client implements interfaces.Transcriber on the OpenAI Whisper API
type client struct {
	api *openai.Client
}

var _ interfaces.Transcriber = &client{}

func New(apiKey string) (interfaces.Transcriber, error) {
	if apiKey == "" {
		return nil, goerr.New("OpenAI API key is required")
	}
	return &client{api: openai.NewClient(apiKey)}, nil
}

func (c *client) Transcribe(ctx context.Context, audio io.Reader, filename, language string) (*model.Transcription, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:       openai.Whisper1,
		Reader:      audio,
		FilePath:    filename,
		Language:    language,
		Prompt:      contextPrompt,
		Temperature: 0.2,
		Format:      openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to transcribe audio", goerr.V("filename", filename))
	}

	text := strings.TrimSpace(resp.Text)
	return &model.Transcription{
		Text:             text,
		DetectedLanguage: resp.Language,
		Confidence:       estimateConfidence(text),
	}, nil
}

// Whisper reports no explicit confidence, so estimate one from
// uncertainty markers in the text
func estimateConfidence(text string) float64 {
	lower := strings.ToLower(text)
	if len(text) < 5 || strings.Contains(lower, "[inaudible]") || strings.Contains(lower, "...") {
		return 0.7
	}
	return 0.95
}
