package handlers

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shubham-309/chatbot/internal/ingest"
	"github.com/shubham-309/chatbot/internal/models"
)

func adminRouter(deps Deps) *gin.Engine {
	h := NewHandler(deps)
	r := gin.New()
	r.POST("/admin/documents/extract", h.ExtractDocumentsHandler)
	r.POST("/admin/documents/ingest", h.IngestCompaniesHandler)
	return r
}

func uploadRequest(t *testing.T, files map[string]string) *http.Request {
	t.Helper()

	var b bytes.Buffer
	writer := multipart.NewWriter(&b)
	for name, content := range files {
		fw, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/documents/extract", &b)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestExtractDocumentsHandler(t *testing.T) {
	deps := newTestDeps(t)
	extractor := new(MockExtractor)
	deps.Extractor = extractor

	visas := 2
	extractor.On("Process", mock.Anything, mock.MatchedBy(func(files []ingest.File) bool {
		if len(files) != 1 || files[0].Name != "packages.pdf" {
			return false
		}
		data, err := io.ReadAll(files[0].Data)
		return err == nil && string(data) == "pdf bytes"
	})).Return(&ingest.Result{
		Companies: []models.CompanyInfo{{Name: "IFZA", Package: "Starter", NumberOfVisas: &visas}},
		Skipped:   []string{},
	}, nil)

	w := serve(adminRouter(deps), uploadRequest(t, map[string]string{"packages.pdf": "pdf bytes"}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"IFZA"`)
	assert.Contains(t, w.Body.String(), `"skipped":[]`)
	extractor.AssertExpectations(t)
}

func TestExtractDocumentsHandlerErrors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		w := serve(adminRouter(newTestDeps(t)), uploadRequest(t, map[string]string{"a.pdf": "x"}))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("no files", func(t *testing.T) {
		deps := newTestDeps(t)
		deps.Extractor = new(MockExtractor)
		w := serve(adminRouter(deps), uploadRequest(t, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unsupported files", func(t *testing.T) {
		deps := newTestDeps(t)
		extractor := new(MockExtractor)
		deps.Extractor = extractor
		extractor.On("Process", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: no readable files", models.ErrUnsupportedFile))

		w := serve(adminRouter(deps), uploadRequest(t, map[string]string{"notes.txt": "x"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestIngestCompaniesHandler(t *testing.T) {
	deps := newTestDeps(t)
	ingester := new(MockIngester)
	deps.Ingester = ingester
	r := adminRouter(deps)

	companies := []models.CompanyInfo{{Name: "IFZA", Package: "Starter"}, {Name: "RAKEZ", Package: "Pro"}}
	ingester.On("Ingest", mock.Anything, companies).Return(2, nil)
	ingester.On("Ingest", mock.Anything, []models.CompanyInfo{}).Return(0, models.ErrNoCompanies)
	ingester.On("Ingest", mock.Anything, []models.CompanyInfo{{Name: "X"}}).
		Return(0, fmt.Errorf("%w: company 1: package is required", models.ErrInvalidCompany))

	w := serve(r, jsonRequest(t, http.MethodPost, "/admin/documents/ingest", IngestRequest{Companies: companies}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Approved companies have been ingested.","ingested":2}`, w.Body.String())

	w = serve(r, jsonRequest(t, http.MethodPost, "/admin/documents/ingest", `{"companies":[]}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, jsonRequest(t, http.MethodPost, "/admin/documents/ingest", `{"companies":[{"name":"X"}]}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "package is required")

	w = serve(r, jsonRequest(t, http.MethodPost, "/admin/documents/ingest", "{"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	ingester.AssertExpectations(t)
}

func TestIngestCompaniesHandlerNotConfigured(t *testing.T) {
	w := serve(adminRouter(newTestDeps(t)), jsonRequest(t, http.MethodPost, "/admin/documents/ingest", `{"companies":[]}`))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
