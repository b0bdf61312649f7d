package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"essay-grader-service/internal/adapters/secondary/filestore"
	"essay-grader-service/internal/core/domain"
	"essay-grader-service/internal/testutil"
)

func TestEssayService_LinkArtifact(t *testing.T) {
	tests := []struct {
		name       string
		files      []string
		transcript string
		want       string
	}{
		{"jpg beside transcript", []string{"42.txt", "42.jpg"}, "42.txt", "42.jpg"},
		{"no image falls back to png", []string{"42.txt"}, "42.txt", "42.png"},
		{"uppercase extension", []string{"42.JPEG", "42.txt"}, "42.txt", "42.JPEG"},
		{"prefix match with suffix", []string{"42-scan.png", "42.txt"}, "42.txt", "42-scan.png"},
		{"first listed wins", []string{"42.jpg", "42.png", "42.txt"}, "42.txt", "42.jpg"},
		{"prefix is literal", []string{"142.jpg", "42.txt"}, "42.txt", "42.png"},
		{"non image ignored", []string{"42.pdf", "42.txt"}, "42.txt", "42.png"},
		{"name without txt suffix", []string{"notes.jpg"}, "notes", "notes.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(testutil.MockFolderStore)
			store.On("ListFiles", mock.Anything, "period-3").Return(tt.files, nil)
			svc := NewEssayService(store, nil)

			got, err := svc.LinkArtifact(context.Background(), "period-3", tt.transcript)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEssayService_LinkArtifact_UnreadableFolder(t *testing.T) {
	store := new(testutil.MockFolderStore)
	store.On("ListFiles", mock.Anything, "gone").Return(nil, domain.ErrFolderNotFound)
	svc := NewEssayService(store, nil)

	_, err := svc.LinkArtifact(context.Background(), "gone", "42.txt")
	assert.ErrorIs(t, err, domain.ErrArtifactLookup)

	var lErr *domain.ArtifactLookupError
	require.True(t, errors.As(err, &lErr))
	assert.Equal(t, "gone", lErr.Folder)
}

func TestEssayService_ListEssays(t *testing.T) {
	store := new(testutil.MockFolderStore)
	store.On("ListFiles", mock.Anything, "period-3").
		Return([]string{"1.jpg", "1.txt", "2.txt", "notes.md"}, nil)
	svc := NewEssayService(store, nil)

	essays, err := svc.ListEssays(context.Background(), "period-3")
	require.NoError(t, err)
	assert.Equal(t, []domain.Essay{
		{ID: "1", Transcript: "1.txt", Image: "1.jpg"},
		{ID: "2", Transcript: "2.txt", Image: "2.png"},
	}, essays)
}

func TestEssayService_ReadTranscript(t *testing.T) {
	store := new(testutil.MockFolderStore)
	store.On("ReadFile", mock.Anything, "period-3", "1.txt").Return([]byte("hello"), nil)
	svc := NewEssayService(store, nil)

	text, err := svc.ReadTranscript(context.Background(), "period-3", "1.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	_, err = svc.ReadTranscript(context.Background(), "period-3", "1.jpg")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEssayService_UploadEssay(t *testing.T) {
	store := new(testutil.MockFolderStore)
	recognizer := new(testutil.MockTextRecognizer)
	generator := new(testutil.MockTextGenerator)
	svc := NewEssayService(store, NewTranscriptionService(recognizer, generator))

	store.On("WriteFile", mock.Anything, "period-3", mock.MatchedBy(func(n string) bool {
		return strings.HasSuffix(n, ".jpg")
	}), "IMAGE").Return(nil).Once()
	store.On("WriteFile", mock.Anything, "period-3", mock.MatchedBy(func(n string) bool {
		return strings.HasSuffix(n, ".txt")
	}), "My summer was great.").Return(nil).Once()
	recognizer.On("Recognize", mock.Anything, "IMAGE").Return("my summer\nwas  grate", nil)
	generator.On("Complete", mock.Anything, mock.Anything).Return("My summer was great.", nil)

	essay, tr, err := svc.UploadEssay(context.Background(), "period-3", "Scan.JPG", strings.NewReader("IMAGE"))
	require.NoError(t, err)
	assert.Equal(t, essay.ID+".jpg", essay.Image)
	assert.Equal(t, essay.ID+".txt", essay.Transcript)
	assert.Equal(t, "my summer was grate", tr.RawText)
	store.AssertExpectations(t)
}

func TestEssayService_UploadEssay_RecognizerFailureWritesNothing(t *testing.T) {
	root := t.TempDir()
	folders, err := filestore.NewFolderStore(root)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, folders.CreateFolder(ctx, "period-3"))

	recognizer := new(testutil.MockTextRecognizer)
	generator := new(testutil.MockTextGenerator)
	recognizer.On("Recognize", mock.Anything, "IMAGE").Return("", errors.New("ocr down"))
	svc := NewEssayService(folders, NewTranscriptionService(recognizer, generator))

	_, _, err = svc.UploadEssay(ctx, "period-3", "scan.png", strings.NewReader("IMAGE"))
	assert.ErrorIs(t, err, domain.ErrCollaborator)

	files, err := folders.ListFiles(ctx, "period-3")
	require.NoError(t, err)
	assert.Empty(t, files)
	generator.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestEssayService_UploadEssay_CorrectionFailureWritesNothing(t *testing.T) {
	store := new(testutil.MockFolderStore)
	recognizer := new(testutil.MockTextRecognizer)
	generator := new(testutil.MockTextGenerator)
	svc := NewEssayService(store, NewTranscriptionService(recognizer, generator))

	recognizer.On("Recognize", mock.Anything, "IMAGE").Return("text", nil)
	generator.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("rate limited"))

	_, _, err := svc.UploadEssay(context.Background(), "period-3", "scan.png", strings.NewReader("IMAGE"))
	assert.ErrorIs(t, err, domain.ErrCollaborator)
	store.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEssayService_UploadEssay_TranscriptWriteFailureRemovesImage(t *testing.T) {
	store := new(testutil.MockFolderStore)
	recognizer := new(testutil.MockTextRecognizer)
	generator := new(testutil.MockTextGenerator)
	svc := NewEssayService(store, NewTranscriptionService(recognizer, generator))

	recognizer.On("Recognize", mock.Anything, "IMAGE").Return("text", nil)
	generator.On("Complete", mock.Anything, mock.Anything).Return("Text.", nil)
	isImage := mock.MatchedBy(func(n string) bool { return strings.HasSuffix(n, ".png") })
	store.On("WriteFile", mock.Anything, "period-3", isImage, "IMAGE").Return(nil).Once()
	store.On("WriteFile", mock.Anything, "period-3", mock.MatchedBy(func(n string) bool {
		return strings.HasSuffix(n, ".txt")
	}), "Text.").Return(errors.New("disk full")).Once()
	store.On("RemoveFile", mock.Anything, "period-3", isImage).Return(nil).Once()

	_, _, err := svc.UploadEssay(context.Background(), "period-3", "scan.png", strings.NewReader("IMAGE"))
	assert.EqualError(t, err, "disk full")
	store.AssertExpectations(t)
}

func TestEssayService_UploadEssay_RejectsNonImage(t *testing.T) {
	svc := NewEssayService(new(testutil.MockFolderStore), nil)

	_, _, err := svc.UploadEssay(context.Background(), "period-3", "essay.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedImage)
}
