package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/justsurfingit/career-copilot/internal/dtos"
	"github.com/justsurfingit/career-copilot/internal/services"
)

// uploadField is the multipart field holding the document.
const uploadField = "file"

var errNoUpload = errors.New("no file uploaded")

// AdvisoryHandler serves chat and resume endpoints.
type AdvisoryHandler struct {
	LLMService *services.LLMService
	PDFService *services.PDFService
	maxUpload  int64
	logger     *zap.Logger
}

func NewAdvisoryHandler(llm *services.LLMService, pdf *services.PDFService, maxUpload int64, logger *zap.Logger) *AdvisoryHandler {
	return &AdvisoryHandler{
		LLMService: llm,
		PDFService: pdf,
		maxUpload:  maxUpload,
		logger:     logger,
	}
}

// Chat is POST /chat
func (h *AdvisoryHandler) Chat(c *gin.Context) {
	var req dtos.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	reply, err := h.LLMService.Chat(c.Request.Context(), *req.UserInput)
	if err != nil {
		abortWithDetail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, dtos.ChatResponse{Response: reply})
}

// ExtractPDFText is POST /extract_pdf_text
func (h *AdvisoryHandler) ExtractPDFText(c *gin.Context) {
	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	ext, err := h.PDFService.ExtractText(data)
	if err != nil {
		abortWithDetail(c, http.StatusInternalServerError, "Failed to extract PDF: "+err.Error())
		return
	}

	if !ext.HasText {
		c.JSON(http.StatusOK, dtos.ExtractResponse{Text: "", Warning: services.NoExtractableTextWarning})
		return
	}
	c.JSON(http.StatusOK, dtos.ExtractResponse{Text: ext.Text})
}

// AnalyzePDF is POST /analyze-pdf. A document without text gets a fixed
// answer and the model is not called.
func (h *AdvisoryHandler) AnalyzePDF(c *gin.Context) {
	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	ext, err := h.PDFService.ExtractText(data)
	if err != nil {
		abortWithDetail(c, http.StatusInternalServerError, "Failed to analyze PDF: "+err.Error())
		return
	}

	reply, err := h.LLMService.ReviewResume(c.Request.Context(), ext.Text)
	if err != nil {
		abortWithDetail(c, http.StatusInternalServerError, "Failed to analyze PDF: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, dtos.ChatResponse{Response: reply})
}

// readUpload returns the bytes of the uploaded document, aborting the
// request when the field is missing or the body is over the limit.
func (h *AdvisoryHandler) readUpload(c *gin.Context) ([]byte, bool) {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}

	data, err := formFileBytes(c)
	if err == nil {
		return data, true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		abortWithDetail(c, http.StatusRequestEntityTooLarge, "File too large")
	case errors.Is(err, errNoUpload):
		abortWithDetail(c, http.StatusBadRequest, "No file uploaded")
	default:
		h.logger.Warn("upload read failed", zap.Error(err))
		abortWithDetail(c, http.StatusBadRequest, "Invalid upload: "+err.Error())
	}
	return nil, false
}

func formFileBytes(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, errNoUpload
		}
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}
