package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"

	"github.com/justsurfingit/career-copilot/internal/models"
)

var ErrMalformedDocument = errors.New("malformed document")

// NoExtractableTextWarning accompanies an empty extraction.
const NoExtractableTextWarning = "No extractable text found."

type PDFService struct {
	conf   *model.Configuration
	logger *zap.Logger
}

func NewPDFService(logger *zap.Logger) *PDFService {
	// keep pdfcpu from writing a config dir under $HOME
	api.DisableConfigDir()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &PDFService{conf: conf, logger: logger}
}

// ExtractText returns the text of every page concatenated in order.
// A page that yields no text contributes an empty string; only a
// container that cannot be opened is an error.
func (s *PDFService) ExtractText(data []byte) (models.Extraction, error) {
	pageCount, err := api.PageCount(bytes.NewReader(data), s.conf)
	if err != nil {
		s.logger.Warn("cannot open document", zap.Int("bytes", len(data)), zap.Error(err))
		return models.Extraction{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		// pdfcpu accepted the container but the text reader did not;
		// treat every page as having no text.
		s.logger.Warn("text reader rejected document", zap.Int("pages", pageCount), zap.Error(err))
		return models.Extraction{Pages: pageCount}, nil
	}

	var sb strings.Builder
	for i := 1; i <= pageCount; i++ {
		sb.WriteString(s.pageText(reader, i))
	}

	text := sb.String()
	return models.Extraction{
		Text:    text,
		Pages:   pageCount,
		HasText: strings.TrimSpace(text) != "",
	}, nil
}

func (s *PDFService) pageText(r *pdf.Reader, n int) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Debug("page extraction panicked", zap.Int("page", n), zap.Any("panic", rec))
			text = ""
		}
	}()

	if n > r.NumPage() {
		return ""
	}
	p := r.Page(n)
	if p.V.IsNull() {
		return ""
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		s.logger.Debug("page has no extractable text", zap.Int("page", n), zap.Error(err))
		return ""
	}
	return text
}
