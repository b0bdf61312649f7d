package domain

import (
	"path/filepath"
	"strings"
)

const (
	TranscriptExt   = ".txt"
	DefaultImageExt = ".png"
)

// ImageExtensions are the scanned-image suffixes the linker accepts, compared
// case-insensitively.
var ImageExtensions = []string{".jpg", ".jpeg", ".png"}

// Essay is a transcript and its source image inferred from a folder listing.
type Essay struct {
	ID         string `json:"id"`
	Transcript string `json:"transcript"`
	Image      string `json:"image"`
}

// EssayID strips the transcript extension from a filename.
func EssayID(transcript string) string {
	return strings.TrimSuffix(transcript, TranscriptExt)
}

// IsTranscript reports whether name is a transcript file.
func IsTranscript(name string) bool {
	return strings.HasSuffix(name, TranscriptExt)
}

// IsImage reports whether name ends with a supported image extension.
func IsImage(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range ImageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ValidatePathName rejects names that would escape their storage directory
// when used as a single path element.
func ValidatePathName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrUnsafeName
	}
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return ErrUnsafeName
	}
	return nil
}
