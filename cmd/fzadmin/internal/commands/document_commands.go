package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shubham-309/chatbot/internal/app"
	"github.com/shubham-309/chatbot/internal/config"
	"github.com/shubham-309/chatbot/internal/ingest"
	"github.com/shubham-309/chatbot/internal/logger"
	"github.com/shubham-309/chatbot/internal/models"
)

// Extractor turns provider documents into candidate packages.
type Extractor interface {
	Process(ctx context.Context, files []ingest.File) (*ingest.Result, error)
}

// Ingester indexes approved packages.
type Ingester interface {
	Ingest(ctx context.Context, companies []models.CompanyInfo) (int, error)
}

// ReviewEntry is one package in the review file. A nil Approved counts as approved.
type ReviewEntry struct {
	Approved *bool `json:"approved,omitempty"`
	models.CompanyInfo
}

// ReviewFile is what extract writes and ingest reads.
type ReviewFile struct {
	Companies []ReviewEntry `json:"companies"`
	Skipped   []string      `json:"skipped,omitempty"`
}

// DocumentCommandHandler encapsulates the extract and ingest commands.
type DocumentCommandHandler struct {
	extractor Extractor
	ingester  Ingester
	logger    logger.Logger
}

// HandlerFactory builds a handler and a cleanup func when a command runs.
type HandlerFactory func(ctx context.Context) (*DocumentCommandHandler, func(), error)

func NewDocumentCommandHandler(extractor Extractor, ingester Ingester, logger logger.Logger) *DocumentCommandHandler {
	return &DocumentCommandHandler{extractor: extractor, ingester: ingester, logger: logger}
}

// DefaultHandlerFactory wires the handler from the environment configuration.
func DefaultHandlerFactory(ctx context.Context) (*DocumentCommandHandler, func(), error) {
	cfg, err := config.LoadCLIConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := setupLogger(&cfg.Logger)
	if err != nil {
		return nil, nil, err
	}

	services, err := app.NewServices(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	h := &DocumentCommandHandler{logger: log}
	if services.Extractor != nil {
		h.extractor = services.Extractor
	}
	if services.Ingester != nil {
		h.ingester = services.Ingester
	}
	return h, func() { _ = services.Close() }, nil
}

// ExtractCmd reads the --file documents and writes the packages found to --out.
func (h *DocumentCommandHandler) ExtractCmd(cmd *cobra.Command, _ []string) error {
	if h.extractor == nil {
		return models.ErrLLMDisabled
	}

	paths, err := cmd.Flags().GetStringSlice("file")
	if err != nil {
		return fmt.Errorf("invalid file flag: %w", err)
	}
	if len(paths) == 0 {
		return errors.New("at least one --file is required")
	}
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("invalid out flag: %w", err)
	}

	files := make([]ingest.File, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(filepath.Clean(p))
		if err != nil {
			return err
		}
		defer f.Close()
		files = append(files, ingest.File{Name: filepath.Base(p), Data: f})
	}

	result, err := h.extractor.Process(cmd.Context(), files)
	if err != nil {
		return err
	}

	review := ReviewFile{Companies: make([]ReviewEntry, 0, len(result.Companies)), Skipped: result.Skipped}
	for _, c := range result.Companies {
		approved := true
		review.Companies = append(review.Companies, ReviewEntry{Approved: &approved, CompanyInfo: c})
	}

	data, err := json.MarshalIndent(review, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode companies: %w", err)
	}
	if err := os.WriteFile(out, data, 0600); err != nil {
		return err
	}

	for _, name := range result.Skipped {
		h.logger.Warn("Skipped unsupported file ", name)
	}
	h.logger.Info("Wrote ", len(review.Companies), " companies to ", out, " for review")
	return nil
}

// IngestCmd loads the reviewed --in file and ingests the approved packages.
func (h *DocumentCommandHandler) IngestCmd(cmd *cobra.Command, _ []string) error {
	if h.ingester == nil {
		return models.ErrVectorStoreDisabled
	}

	in, err := cmd.Flags().GetString("in")
	if err != nil {
		return fmt.Errorf("invalid in flag: %w", err)
	}

	data, err := os.ReadFile(filepath.Clean(in))
	if err != nil {
		return err
	}

	var review ReviewFile
	if err := json.Unmarshal(data, &review); err != nil {
		return fmt.Errorf("failed to decode %s: %w", in, err)
	}

	approved := review.ApprovedCompanies()
	if rejected := len(review.Companies) - len(approved); rejected > 0 {
		h.logger.Info("Skipping ", rejected, " companies not approved")
	}

	n, err := h.ingester.Ingest(cmd.Context(), approved)
	if err != nil {
		return err
	}

	h.logger.Info("Approved companies have been ingested: ", n)
	return nil
}

// ApprovedCompanies returns the entries not explicitly rejected.
func (r ReviewFile) ApprovedCompanies() []models.CompanyInfo {
	companies := make([]models.CompanyInfo, 0, len(r.Companies))
	for _, e := range r.Companies {
		if e.Approved != nil && !*e.Approved {
			continue
		}
		companies = append(companies, e.CompanyInfo)
	}
	return companies
}

// InitDocumentCommands registers extract and ingest on rootCmd.
func InitDocumentCommands(rootCmd *cobra.Command, factory HandlerFactory) {
	withHandler := func(run func(*DocumentCommandHandler, *cobra.Command, []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			h, cleanup, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()
			return run(h, cmd, args)
		}
	}

	var extractCmd = &cobra.Command{
		Use:   "extract",
		Short: "Extract freezone packages from documents for review",
		RunE:  withHandler((*DocumentCommandHandler).ExtractCmd),
	}
	extractCmd.Flags().StringSliceP("file", "f", nil, "Document to read (.xlsx or .pdf), repeatable")
	extractCmd.Flags().StringP("out", "o", "companies.json", "Path of the review file to write")
	rootCmd.AddCommand(extractCmd)

	var ingestCmd = &cobra.Command{
		Use:   "ingest",
		Short: "Ingest the approved packages of a review file",
		RunE:  withHandler((*DocumentCommandHandler).IngestCmd),
	}
	ingestCmd.Flags().StringP("in", "i", "companies.json", "Path of the reviewed file")
	rootCmd.AddCommand(ingestCmd)
}
