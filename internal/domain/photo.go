package domain

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"
)

const photoDateLayout = "060102"

// PhotoEntry is one image attachment of the Photos sub-folder.
type PhotoEntry struct {
	ID   string
	Name string
}

// IsImageName reports whether a file name has an image extension
// handled by the photo gallery.
func IsImageName(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// PhotoName builds the canonical photo file name for a capture date,
// affaire identifier and counter: PHOTO_<yyMMdd>_<identifier>_<N>.jpg.
func PhotoName(date time.Time, id Identifier, counter int) string {
	return fmt.Sprintf("PHOTO_%s_%s_%d.jpg", date.Format(photoDateLayout), id, counter)
}

// NextPhotoCounter returns the smallest positive integer not already
// used as a counter among existing names for the same date and
// identifier. Deleted photos leave holes, which are re-filled first.
func NextPhotoCounter(existing []string, date time.Time, id Identifier) int {
	prefix := fmt.Sprintf("PHOTO_%s_%s_", date.Format(photoDateLayout), id)

	used := make(map[int]bool)
	for _, name := range existing {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		rest := strings.TrimPrefix(name, prefix)
		if ext := path.Ext(rest); ext != "" {
			rest = strings.TrimSuffix(rest, ext)
		}
		if n, err := strconv.Atoi(rest); err == nil && n > 0 {
			used[n] = true
		}
	}

	counter := 1
	for used[counter] {
		counter++
	}
	return counter
}
