package services

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"essay-grader-service/internal/core/domain"
	"essay-grader-service/internal/core/ports/output"
)

type EssayService struct {
	folders     ports.EssayFolderStore
	transcriber *TranscriptionService
}

func NewEssayService(folders ports.EssayFolderStore, transcriber *TranscriptionService) *EssayService {
	return &EssayService{folders: folders, transcriber: transcriber}
}

// ============================================================================
// Folders
// ============================================================================

func (s *EssayService) ListFolders(ctx context.Context) ([]string, error) {
	return s.folders.ListFolders(ctx)
}

func (s *EssayService) CreateFolder(ctx context.Context, folder string) error {
	if err := domain.ValidatePathName(folder); err != nil {
		return err
	}
	return s.folders.CreateFolder(ctx, folder)
}

// ============================================================================
// Artifact Linking
// ============================================================================

// LinkArtifact returns the scanned image paired with a transcript. The guess
// starts as "<id>.png" and is replaced by the first listed file that starts
// with <id> and has an image extension. Listing order comes from the folder
// store. A folder that cannot be listed is an *ArtifactLookupError.
func (s *EssayService) LinkArtifact(ctx context.Context, folder, transcript string) (string, error) {
	files, err := s.folders.ListFiles(ctx, folder)
	if err != nil {
		return "", &domain.ArtifactLookupError{Folder: folder, Err: err}
	}
	return linkImage(files, transcript), nil
}

func linkImage(files []string, transcript string) string {
	baseID := domain.EssayID(transcript)
	for _, name := range files {
		if strings.HasPrefix(name, baseID) && domain.IsImage(name) {
			return name
		}
	}
	return baseID + domain.DefaultImageExt
}

// ListEssays pairs every transcript in folder with its linked image.
func (s *EssayService) ListEssays(ctx context.Context, folder string) ([]domain.Essay, error) {
	files, err := s.folders.ListFiles(ctx, folder)
	if err != nil {
		return nil, &domain.ArtifactLookupError{Folder: folder, Err: err}
	}

	essays := make([]domain.Essay, 0, len(files)/2)
	for _, name := range files {
		if !domain.IsTranscript(name) {
			continue
		}
		essays = append(essays, domain.Essay{
			ID:         domain.EssayID(name),
			Transcript: name,
			Image:      linkImage(files, name),
		})
	}
	return essays, nil
}

// ReadTranscript returns a transcript's text.
func (s *EssayService) ReadTranscript(ctx context.Context, folder, transcript string) (string, error) {
	if err := domain.ValidatePathName(transcript); err != nil {
		return "", err
	}
	if !domain.IsTranscript(transcript) {
		return "", domain.ErrInvalidEssayFile
	}
	b, err := s.folders.ReadFile(ctx, folder, transcript)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ============================================================================
// Upload
// ============================================================================

// UploadEssay transcribes a scanned essay, then stores it as <id><ext> with
// the corrected text in <id>.txt beside it. Nothing is written unless
// transcription succeeds, and a failed transcript write removes the image.
func (s *EssayService) UploadEssay(ctx context.Context, folder, filename string, image io.Reader) (*domain.Essay, *Transcription, error) {
	if err := domain.ValidatePathName(folder); err != nil {
		return nil, nil, err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !domain.IsImage(ext) {
		return nil, nil, domain.ErrUnsupportedImage
	}

	data, err := io.ReadAll(image)
	if err != nil {
		return nil, nil, err
	}

	tr, err := s.transcriber.Transcribe(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}

	id := uuid.New().String()
	essay := &domain.Essay{ID: id, Transcript: id + domain.TranscriptExt, Image: id + ext}

	if err := s.folders.WriteFile(ctx, folder, essay.Image, bytes.NewReader(data)); err != nil {
		return nil, nil, err
	}
	if err := s.folders.WriteFile(ctx, folder, essay.Transcript, strings.NewReader(tr.CorrectedText)); err != nil {
		if rmErr := s.folders.RemoveFile(ctx, folder, essay.Image); rmErr != nil {
			log.WithError(rmErr).WithFields(log.Fields{
				"folder": folder,
				"image":  essay.Image,
			}).Error("remove orphaned essay image failed")
		}
		return nil, nil, err
	}

	log.WithFields(log.Fields{
		"folder": folder,
		"essay":  id,
	}).Info("essay uploaded")
	return essay, tr, nil
}
