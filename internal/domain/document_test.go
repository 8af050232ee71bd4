package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocPrefix(t *testing.T) {
	for _, raw := range []string{"FP", "fp", " pvee ", "PVEA"} {
		prefix, err := ParseDocPrefix(raw)
		require.NoError(t, err, raw)
		assert.NotEmpty(t, prefix)
	}

	_, err := ParseDocPrefix("PV")
	assert.Error(t, err)
}

func TestDocumentNamePrefix(t *testing.T) {
	assert.Equal(t, "FP_AB12CD34", DocumentNamePrefix(PrefixFP, "AB12CD34"))
	assert.Equal(t, "PVEA_AB12CD34", DocumentNamePrefix(PrefixPVEA, "AB12CD34"))
}

func TestIsPDFName(t *testing.T) {
	assert.True(t, IsPDFName("FP_AB12CD34.pdf"))
	assert.True(t, IsPDFName("FP_AB12CD34.PDF"))
	assert.False(t, IsPDFName("FP_AB12CD34.docx"))
}

func TestIsWebEditableName(t *testing.T) {
	for _, name := range []string{"a.docx", "a.xlsx", "a.xls", "a.XLSM"} {
		assert.True(t, IsWebEditableName(name), name)
	}
	assert.False(t, IsWebEditableName("a.pdf"))
	assert.False(t, IsWebEditableName("a.txt"))
}

func TestPDFRenderedName(t *testing.T) {
	assert.Equal(t, "PVEE_AB12CD34.pdf", PDFRenderedName("PVEE_AB12CD34.docx"))
	assert.Equal(t, "report.pdf", PDFRenderedName("report.doc"))
}
