package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shubham-309/chatbot/internal/ingest"
	"github.com/shubham-309/chatbot/internal/models"
)

type IngestRequest struct {
	Companies []models.CompanyInfo `json:"companies"`
}

// ExtractDocumentsHandler reads the uploaded provider documents and returns
// the packages found in them for review.
func (h *handler) ExtractDocumentsHandler(c *gin.Context) {
	if h.extractor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"msg": "Document extraction is not configured"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "At least one file is required"})
		return
	}

	files := make([]ingest.File, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			h.logger.Error("Failed to open upload ", fh.Filename, ": ", err)
			c.JSON(http.StatusBadRequest, gin.H{"msg": fmt.Sprintf("Could not read %s", fh.Filename)})
			return
		}
		defer f.Close()
		files = append(files, ingest.File{Name: fh.Filename, Data: f})
	}

	result, err := h.extractor.Process(c.Request.Context(), files)
	if err != nil {
		if errors.Is(err, models.ErrUnsupportedFile) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Only .xlsx and .pdf files are supported"})
			return
		}
		h.logger.Error("Failed to extract companies: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, result)
}

// IngestCompaniesHandler indexes the reviewed packages.
func (h *handler) IngestCompaniesHandler(c *gin.Context) {
	if h.ingester == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"msg": "Vector store is not configured"})
		return
	}

	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	n, err := h.ingester.Ingest(c.Request.Context(), req.Companies)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoCompanies):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "No companies to ingest"})
		case errors.Is(err, models.ErrInvalidCompany):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		default:
			h.logger.Error("Failed to ingest companies: ", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Approved companies have been ingested.", "ingested": n})
}
