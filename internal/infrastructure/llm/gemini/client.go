package gemini

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"github.com/gastosuy/statement-analyzer/internal/core/domain"
	"github.com/gastosuy/statement-analyzer/internal/infrastructure/resilience"
)

// Client talks to the Gemini API. The service is a black box: the only
// assumption is the request/response contract in prompt.go, and the raw
// text it returns goes through downstream validation untouched.
type Client struct {
	genai *genai.Client
	model string
	exec  *resilience.Executor
}

// New fails with the configuration kind when no credential is set, so a
// misconfigured deployment is caught before any upload triggers a
// network call.
func New(ctx context.Context, apiKey, model string, exec *resilience.Executor) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, domain.WrapError(domain.ErrConfiguration, "init gemini client",
			errors.New("GEMINI_API_KEY is not set"))
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrConfiguration, "init gemini client", err)
	}

	return &Client{
		genai: client,
		model: model,
		exec:  exec,
	}, nil
}

// CategorizeText sends the extracted statement text with the fixed
// instruction payload.
func (c *Client) CategorizeText(ctx context.Context, statementText string) (string, error) {
	parts := []*genai.Part{
		{Text: buildTextPrompt(statementText)},
	}
	return c.generate(ctx, "categorize_text", parts)
}

// CategorizeDocument sends the raw PDF bytes as an inline blob for the
// service to read natively.
func (c *Client) CategorizeDocument(ctx context.Context, pdfBytes []byte) (string, error) {
	parts := []*genai.Part{
		{Text: documentPrompt()},
		{InlineData: &genai.Blob{
			MIMEType: "application/pdf",
			Data:     pdfBytes,
		}},
	}
	return c.generate(ctx, "categorize_document", parts)
}

func (c *Client) generate(ctx context.Context, operation string, parts []*genai.Part) (string, error) {
	contents := []*genai.Content{
		{Role: "user", Parts: parts},
	}

	var raw string
	err := c.exec.Execute(ctx, operation, func(ctx context.Context) error {
		resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, nil)
		if err != nil {
			return err
		}
		raw = strings.TrimSpace(resp.Text())
		return nil
	}, classifyGeminiError)
	if err != nil {
		return "", wrapServiceError(operation, err)
	}
	return raw, nil
}
