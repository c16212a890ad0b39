package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/justsurfingit/career-copilot/internal/testutil"
)

func TestExtractText_TextAndBlankPage(t *testing.T) {
	svc := NewPDFService(zap.NewNop())

	got, err := svc.ExtractText(testutil.BuildPDF("Jane Doe Senior Go Engineer", ""))
	require.NoError(t, err)

	assert.Equal(t, 2, got.Pages)
	assert.Equal(t, "Jane Doe Senior Go Engineer", got.Text)
	assert.True(t, got.HasText)
}

func TestExtractText_PagesConcatenatedInOrder(t *testing.T) {
	svc := NewPDFService(zap.NewNop())

	got, err := svc.ExtractText(testutil.BuildPDF("first", "", "second"))
	require.NoError(t, err)

	assert.Equal(t, 3, got.Pages)
	assert.Equal(t, "firstsecond", got.Text)
}

func TestExtractText_NoTextAnywhere(t *testing.T) {
	svc := NewPDFService(zap.NewNop())

	got, err := svc.ExtractText(testutil.BuildPDF("", ""))
	require.NoError(t, err)

	assert.Equal(t, 2, got.Pages)
	assert.Empty(t, got.Text)
	assert.False(t, got.HasText)
}

func TestExtractText_WhitespaceOnlyIsNoText(t *testing.T) {
	svc := NewPDFService(zap.NewNop())

	got, err := svc.ExtractText(testutil.BuildPDF("   "))
	require.NoError(t, err)
	assert.False(t, got.HasText)
}

func TestExtractText_Malformed(t *testing.T) {
	svc := NewPDFService(zap.NewNop())

	for name, data := range map[string][]byte{
		"empty":     {},
		"not a pdf": []byte("PK\x03\x04 this is a zip"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ExtractText(data)
			assert.ErrorIs(t, err, ErrMalformedDocument)
		})
	}
}
