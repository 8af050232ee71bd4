package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateCopyName(t *testing.T) {
	assert.Equal(t, "PVEA_AB12CD34_ClientY.docx",
		TemplateCopyName("AB12CD34", "ClientY", "Standard v2.docx"))

	assert.Equal(t, "PVEA_AB12CD34_Client_Y_SA.pdf",
		TemplateCopyName("AB12CD34", "Client Y SA", "Standard.pdf"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Standard v2", Template{Name: "Standard v2.docx"}.DisplayName())
	assert.Equal(t, "Standard", Template{Name: "Standard.pdf"}.DisplayName())
	assert.Equal(t, "noextension", Template{Name: "noextension"}.DisplayName())
}

func TestIsTemplateName(t *testing.T) {
	assert.True(t, IsTemplateName("a.docx"))
	assert.True(t, IsTemplateName("a.PDF"))
	assert.False(t, IsTemplateName("a.doc"))
	assert.False(t, IsTemplateName("a.xlsx"))
}

func TestFilterTemplates(t *testing.T) {
	templates := []Template{
		{ID: "1", Name: "Standard v2.docx"},
		{ID: "2", Name: "Electrique.docx"},
		{ID: "3", Name: "Hydraulique.pdf"},
	}

	t.Run("empty query returns all", func(t *testing.T) {
		assert.Len(t, FilterTemplates(templates, ""), 3)
	})

	t.Run("substring match ignores case", func(t *testing.T) {
		filtered := FilterTemplates(templates, "LIQUE")
		assert.Len(t, filtered, 2)
	})

	t.Run("no match yields empty non-nil slice", func(t *testing.T) {
		filtered := FilterTemplates(templates, "zzz")
		assert.NotNil(t, filtered)
		assert.Empty(t, filtered)
	})

	t.Run("input is never mutated", func(t *testing.T) {
		before := make([]Template, len(templates))
		copy(before, templates)

		_ = FilterTemplates(templates, "standard")

		assert.Equal(t, before, templates)
	})
}
