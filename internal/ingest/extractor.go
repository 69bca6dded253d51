package ingest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/shubham-309/chatbot/internal/llm"
	"github.com/shubham-309/chatbot/internal/logger"
	"github.com/shubham-309/chatbot/internal/models"
)

// File is an uploaded document.
type File struct {
	Name string
	Data io.Reader
}

// Result is the outcome of processing a batch of files.
type Result struct {
	Companies []models.CompanyInfo `json:"companies"`
	Skipped   []string             `json:"skipped"`
}

// Extractor turns provider documents into structured company packages.
type Extractor struct {
	enhance *llm.Chain
	extract *llm.Chain
	logger  logger.Logger
}

// NewExtractor compiles the enhancement and extraction chains.
func NewExtractor(ctx context.Context, chatModel model.BaseChatModel, logger logger.Logger) (*Extractor, error) {
	enhance, err := llm.NewChain(ctx, chatModel, 0, schema.UserMessage(enhancePrompt))
	if err != nil {
		return nil, fmt.Errorf("enhancement chain: %w", err)
	}

	extract, err := llm.NewChain(ctx, chatModel, 0, schema.UserMessage(extractPrompt))
	if err != nil {
		return nil, fmt.Errorf("extraction chain: %w", err)
	}

	return &Extractor{enhance: enhance, extract: extract, logger: logger}, nil
}

// Enhance rewrites raw document text into sentences naming each package's fields.
func (e *Extractor) Enhance(ctx context.Context, text string) (string, error) {
	out, err := e.enhance.Run(ctx, map[string]any{"text": text})
	if err != nil {
		return "", fmt.Errorf("enhance text: %w", err)
	}
	return out, nil
}

// ExtractCompanies pulls the list of packages out of text.
func (e *Extractor) ExtractCompanies(ctx context.Context, text string) ([]models.CompanyInfo, error) {
	var list models.CompanyInfoList
	err := e.extract.RunJSON(ctx, map[string]any{
		"text":                text,
		"format_instructions": llm.FormatInstructions(companyListSchema),
	}, &list)
	if err != nil {
		return nil, fmt.Errorf("extract companies: %w", err)
	}
	return list.Companies, nil
}

// Process reads every supported file, then enhances and extracts the
// combined text. Unsupported files are reported in Result.Skipped.
func (e *Extractor) Process(ctx context.Context, files []File) (*Result, error) {
	result := &Result{Companies: []models.CompanyInfo{}, Skipped: []string{}}

	var combined strings.Builder
	for _, f := range files {
		if !Supported(f.Name) {
			e.logger.Warn("Unsupported file type: ", f.Name)
			result.Skipped = append(result.Skipped, f.Name)
			continue
		}

		text, err := ExtractText(f.Name, f.Data)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		combined.WriteString(text)
		combined.WriteString("\n")
	}

	if combined.Len() == 0 {
		return nil, fmt.Errorf("%w: no readable files", models.ErrUnsupportedFile)
	}

	e.logger.Info("Enhancing text from ", len(files)-len(result.Skipped), " files")
	enhanced, err := e.Enhance(ctx, combined.String())
	if err != nil {
		return nil, err
	}

	e.logger.Info("Extracting company information")
	companies, err := e.ExtractCompanies(ctx, enhanced)
	if err != nil {
		return nil, err
	}
	if companies != nil {
		result.Companies = companies
	}
	return result, nil
}
