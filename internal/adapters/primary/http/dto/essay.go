package dto

import (
	"net/url"
	"path"

	"essay-grader-service/internal/core/domain"
	"essay-grader-service/internal/core/services"
)

type CreateFolderRequest struct {
	Name string `json:"name" binding:"required"`
}

type ListFoldersResponse struct {
	Folders []string `json:"folders"`
}

type EssayResponse struct {
	ID         string `json:"id"`
	Transcript string `json:"transcript"`
	Image      string `json:"image"`
	ImageURL   string `json:"imageUrl"`
}

type ListEssaysResponse struct {
	Folder string          `json:"folder"`
	Essays []EssayResponse `json:"essays"`
}

type TranscriptResponse struct {
	Folder     string `json:"folder"`
	Transcript string `json:"transcript"`
	Image      string `json:"image"`
	ImageURL   string `json:"imageUrl"`
	Text       string `json:"text"`
}

type TranscriptionResponse struct {
	RawText       string `json:"rawText"`
	CorrectedText string `json:"correctedText"`
}

type UploadEssayResponse struct {
	EssayResponse
	TranscriptionResponse
}

// FileURL is where the static file route serves a folder entry.
func FileURL(filesPrefix, folder, name string) string {
	return path.Join(filesPrefix, url.PathEscape(folder), url.PathEscape(name))
}

func ToEssayResponse(filesPrefix, folder string, e domain.Essay) EssayResponse {
	return EssayResponse{
		ID:         e.ID,
		Transcript: e.Transcript,
		Image:      e.Image,
		ImageURL:   FileURL(filesPrefix, folder, e.Image),
	}
}

func ToTranscriptionResponse(t *services.Transcription) TranscriptionResponse {
	return TranscriptionResponse{RawText: t.RawText, CorrectedText: t.CorrectedText}
}
