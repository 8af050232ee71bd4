package domain

import (
	"fmt"
	"path"
	"strings"
)

// Template is a reusable source document offered when the PVEA document
// is missing. Read-only, sourced from a fixed standards folder.
type Template struct {
	ID   string
	Name string
}

// DisplayName is the template name shown in the picker, with the
// extension stripped.
func (t Template) DisplayName() string {
	return strings.TrimSuffix(t.Name, path.Ext(t.Name))
}

// IsTemplateName reports whether a standards-folder entry is offered as
// a template.
func IsTemplateName(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".docx", ".pdf":
		return true
	}
	return false
}

// TemplateCopyName builds the target name of a template copied into the
// PV sub-folder: PVEA_<identifier>_<clientName with spaces as
// underscores>, keeping the template's extension.
func TemplateCopyName(id Identifier, clientName, templateName string) string {
	client := strings.ReplaceAll(clientName, " ", "_")
	return fmt.Sprintf("PVEA_%s_%s%s", id, client, path.Ext(templateName))
}

// FilterTemplates returns the templates whose display name contains the
// query, ignoring case. The input slice is never mutated; an empty
// query returns a copy of the full set.
func FilterTemplates(templates []Template, query string) []Template {
	q := strings.ToLower(strings.TrimSpace(query))

	filtered := make([]Template, 0, len(templates))
	for _, t := range templates {
		if q == "" || strings.Contains(strings.ToLower(t.DisplayName()), q) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
