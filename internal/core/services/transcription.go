package services

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"essay-grader-service/internal/core/domain"
	"essay-grader-service/internal/core/ports/output"
)

const (
	noTextDetected = "No text detected."

	correctionSystemPrompt = "You are a helpful assistant that corrects grammar, punctuation, and spelling errors in OCR-transcribed essays without changing meaning."
	correctionTemperature  = 0.3
)

var (
	newlineRuns    = regexp.MustCompile(`\n+`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// Transcription is the recognized text of a scanned essay before and after
// correction.
type Transcription struct {
	RawText       string `json:"rawText"`
	CorrectedText string `json:"correctedText"`
}

type TranscriptionService struct {
	recognizer ports.TextRecognizer
	generator  ports.TextGenerator
}

func NewTranscriptionService(recognizer ports.TextRecognizer, generator ports.TextGenerator) *TranscriptionService {
	return &TranscriptionService{recognizer: recognizer, generator: generator}
}

// Transcribe recognizes the text in image, collapses its whitespace and has the
// text generator fix grammar, punctuation and spelling.
func (s *TranscriptionService) Transcribe(ctx context.Context, image io.Reader) (*Transcription, error) {
	raw, err := s.recognizer.Recognize(ctx, image)
	if err != nil {
		log.WithError(err).Error("text recognition failed")
		return nil, asCollaboratorError("text recognition", err)
	}

	cleaned := CleanRecognizedText(raw)
	if cleaned == "" {
		cleaned = noTextDetected
	}

	corrected, err := s.generator.Complete(ctx, ports.CompletionRequest{
		SystemPrompt: correctionSystemPrompt,
		UserPrompt:   cleaned,
		Temperature:  correctionTemperature,
	})
	if err != nil {
		log.WithError(err).Error("transcript correction failed")
		return nil, asCollaboratorError("text generation", err)
	}

	return &Transcription{RawText: cleaned, CorrectedText: corrected}, nil
}

// CleanRecognizedText joins OCR lines with single spaces.
func CleanRecognizedText(text string) string {
	text = newlineRuns.ReplaceAllString(text, " ")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func asCollaboratorError(name string, err error) error {
	var cErr *domain.CollaboratorError
	if errors.As(err, &cErr) {
		return err
	}
	return &domain.CollaboratorError{Collaborator: name, Err: err}
}
