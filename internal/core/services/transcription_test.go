package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"essay-grader-service/internal/core/domain"
	"essay-grader-service/internal/core/ports/output"
	"essay-grader-service/internal/testutil"
)

func TestCleanRecognizedText(t *testing.T) {
	assert.Equal(t, "one two three", CleanRecognizedText("\n one\n\n two \t three \n"))
	assert.Equal(t, "", CleanRecognizedText(" \n\n "))
}

func TestTranscriptionService_Transcribe(t *testing.T) {
	recognizer := new(testutil.MockTextRecognizer)
	generator := new(testutil.MockTextGenerator)
	svc := NewTranscriptionService(recognizer, generator)

	recognizer.On("Recognize", mock.Anything, "IMG").Return("Teh cat\nsat", nil)
	generator.On("Complete", mock.Anything, mock.MatchedBy(func(req ports.CompletionRequest) bool {
		return req.UserPrompt == "Teh cat sat" && req.Temperature == 0.3
	})).Return("The cat sat.", nil)

	tr, err := svc.Transcribe(context.Background(), strings.NewReader("IMG"))
	require.NoError(t, err)
	assert.Equal(t, &Transcription{RawText: "Teh cat sat", CorrectedText: "The cat sat."}, tr)
}

func TestTranscriptionService_NoTextDetected(t *testing.T) {
	recognizer := new(testutil.MockTextRecognizer)
	generator := new(testutil.MockTextGenerator)
	svc := NewTranscriptionService(recognizer, generator)

	recognizer.On("Recognize", mock.Anything, "IMG").Return("", nil)
	generator.On("Complete", mock.Anything, mock.Anything).Return("No text detected.", nil)

	tr, err := svc.Transcribe(context.Background(), strings.NewReader("IMG"))
	require.NoError(t, err)
	assert.Equal(t, "No text detected.", tr.RawText)
}

func TestTranscriptionService_RecognizerFailure(t *testing.T) {
	recognizer := new(testutil.MockTextRecognizer)
	generator := new(testutil.MockTextGenerator)
	svc := NewTranscriptionService(recognizer, generator)

	recognizer.On("Recognize", mock.Anything, "IMG").Return("", errors.New("quota exceeded"))

	_, err := svc.Transcribe(context.Background(), strings.NewReader("IMG"))
	assert.ErrorIs(t, err, domain.ErrCollaborator)
	generator.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}
