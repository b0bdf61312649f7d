package tesseract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"essay-grader-service/internal/config"
	"essay-grader-service/internal/core/domain"
)

func TestRecognize_MissingBinary(t *testing.T) {
	r := New(&config.OCRConfig{TesseractLang: "eng"})
	r.Binary = "tesseract-does-not-exist"

	_, err := r.Recognize(context.Background(), strings.NewReader("img"))
	assert.ErrorIs(t, err, domain.ErrCollaborator)
}
