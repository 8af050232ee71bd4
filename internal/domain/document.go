package domain

import (
	"fmt"
	"path"
	"strings"
)

// DocPrefix names one of the three tracked documents of the PV
// sub-folder.
type DocPrefix string

const (
	PrefixFP   DocPrefix = "FP"
	PrefixPVEE DocPrefix = "PVEE"
	PrefixPVEA DocPrefix = "PVEA"
)

// ParseDocPrefix validates a raw document prefix.
func ParseDocPrefix(raw string) (DocPrefix, error) {
	switch DocPrefix(strings.ToUpper(strings.TrimSpace(raw))) {
	case PrefixFP:
		return PrefixFP, nil
	case PrefixPVEE:
		return PrefixPVEE, nil
	case PrefixPVEA:
		return PrefixPVEA, nil
	}
	return "", fmt.Errorf("invalid document prefix %q", raw)
}

// DocumentNamePrefix is the required head of a tracked document's file
// name: <PREFIX>_<identifier>.
func DocumentNamePrefix(prefix DocPrefix, id Identifier) string {
	return fmt.Sprintf("%s_%s", prefix, id)
}

// WordMimeType marks Word documents collected for PDF conversion during
// finalize.
const WordMimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ReminderFileName is the empty marker dropped into the archived folder
// at the end of finalize.
const ReminderFileName = "RAPPEL - Penser à clôturer l'affaire.txt"

// IsPDFName reports whether the document is viewed and edited locally.
func IsPDFName(name string) bool {
	return strings.EqualFold(path.Ext(name), ".pdf")
}

// IsWebEditableName reports whether the document is edited through the
// collaborative web editor instead of a local copy.
func IsWebEditableName(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".docx", ".xlsx", ".xls", ".xlsm":
		return true
	}
	return false
}

// PDFRenderedName replaces a document's extension with .pdf, the name
// used when uploading the store-rendered PDF form.
func PDFRenderedName(name string) string {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + ".pdf"
}
