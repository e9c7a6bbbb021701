package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sashabaranov/go-openai"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
)

// systemPrompt sets the extraction context. Bills in this domain are often
// handwritten and mix Hindi or Marathi with English, so translation to
// English is part of the job.
const systemPrompt = `You are an expert at extracting structured data from purchase invoices and bills for a jewelry shop in India.
- Extract ALL visible information accurately.
- Translate ALL text from Hindi/Marathi/regional languages to English.
- Handle various invoice formats: handwritten, printed, digital.
- Parse dates in any format and convert to YYYY-MM-DD.
- Extract amounts even if currency symbols are present.
- If image quality is poor, provide your best estimate with a lower confidence score.
- Look for GST numbers, tax amounts, and itemized lists.`

const extractFunctionName = "extract_purchase_bill"

// extractFunctionParams is the JSON schema the model fills in. It mirrors
// model.BillExtraction, so the returned arguments decode straight into it.
var extractFunctionParams = json.RawMessage(`{
  "type": "object",
  "properties": {
    "supplier": {
      "type": "object",
      "properties": {
        "name": {"type": "string", "description": "Supplier/vendor name in English (required)"},
        "phone": {"type": "string"},
        "email": {"type": "string"},
        "address": {"type": "string", "description": "Supplier address in English"},
        "gstNumber": {"type": "string", "description": "GST number if visible"}
      },
      "required": ["name"]
    },
    "invoiceNumber": {"type": "string", "description": "Invoice/bill number. Look for 'Invoice No', 'Bill No', 'Inv#'"},
    "invoiceDate": {"type": "string", "description": "Invoice date converted to YYYY-MM-DD"},
    "amount": {"type": "number", "description": "Grand total. Look for 'Total', 'Grand Total', 'Net Amount'", "minimum": 0},
    "paymentStatus": {"type": "string", "enum": ["Paid", "Unpaid", "Partially Paid"], "description": "Default to Unpaid if not clear"},
    "items": {
      "type": "array",
      "description": "Line items, if an itemized list is visible",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string", "description": "Item name in English"},
          "quantity": {"type": "number", "minimum": 0},
          "rate": {"type": "number", "minimum": 0},
          "amount": {"type": "number", "minimum": 0}
        },
        "required": ["name", "amount"]
      }
    },
    "numberOfItems": {"type": "integer", "minimum": 0},
    "taxAmount": {"type": "number", "minimum": 0},
    "discountAmount": {"type": "number", "minimum": 0},
    "notes": {"type": "string", "description": "Additional remarks visible on the bill"},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1, "description": "Confidence based on image quality and text clarity"},
    "detectedLanguage": {"type": "string", "description": "Language detected on the bill, e.g. en, hi, mr, mixed"}
  },
  "required": ["supplier", "invoiceNumber", "invoiceDate", "amount"]
}`)

// client implements interfaces.BillExtractor on the OpenAI vision API. The
// tool-call response format forces structured output.
type client struct {
	api *openai.Client
}

var _ interfaces.BillExtractor = &client{}

func New(apiKey string) (interfaces.BillExtractor, error) {
	if apiKey == "" {
		return nil, goerr.New("OpenAI API key is required")
	}
	return &client{api: openai.NewClient(apiKey)}, nil
}

func (c *client) ExtractBill(ctx context.Context, image []byte, mimeType string) (*model.BillExtraction, error) {
	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     openai.GPT4o,
		MaxTokens: 2000,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: "Extract all information from this purchase invoice/bill. Translate any Hindi/Marathi text to English.",
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
		Tools: []openai.Tool{
			{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        extractFunctionName,
					Description: "Extract information from a purchase invoice/bill image",
					Parameters:  extractFunctionParams,
				},
			},
		},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: extractFunctionName},
		},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to run bill extraction")
	}

	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, goerr.New("vision model returned no extraction")
	}

	var extracted model.BillExtraction
	args := resp.Choices[0].Message.ToolCalls[0].Function.Arguments
	if err := json.Unmarshal([]byte(args), &extracted); err != nil {
		return nil, goerr.Wrap(err, "failed to decode bill extraction", goerr.V("arguments", args))
	}
	return &extracted, nil
}
