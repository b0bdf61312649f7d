package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"essay-grader-service/internal/adapters/primary/http/dto"
	"essay-grader-service/internal/core/domain"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const uploadField = "file"

// ============================================================================
// Transcription
// ============================================================================

// Upload transcribes an image without storing it.
func (h *Handler) Upload(c *gin.Context) {
	fh, ok := h.formFile(c)
	if !ok {
		return
	}
	defer removeForm(c)
	f, err := fh.Open()
	if err != nil {
		mapDomainError(c, err)
		return
	}
	defer f.Close()

	tr, err := h.transcribeSvc.Transcribe(c.Request.Context(), f)
	if err != nil {
		log.WithError(err).Error("transcription failed")
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTranscriptionResponse(tr))
}

// formFile reads the single upload field. Callers defer removeForm to drop
// any temporary files the multipart parser spilled to disk.
func (h *Handler) formFile(c *gin.Context) (*multipart.FileHeader, bool) {
	if h.opts.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)
	}

	fh, err := c.FormFile(uploadField)
	if err != nil {
		removeForm(c)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return nil, false
	}
	return fh, true
}

func removeForm(c *gin.Context) {
	if form := c.Request.MultipartForm; form != nil {
		if err := form.RemoveAll(); err != nil {
			log.WithError(err).Warn("remove upload temp files failed")
		}
	}
}

// ============================================================================
// Essay Folders
// ============================================================================

func (h *Handler) ListFolders(c *gin.Context) {
	folders, err := h.essaySvc.ListFolders(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("list folders failed")
		mapDomainError(c, err)
		return
	}
	if folders == nil {
		folders = []string{}
	}
	c.JSON(http.StatusOK, dto.ListFoldersResponse{Folders: folders})
}

func (h *Handler) CreateFolder(c *gin.Context) {
	var req dto.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.essaySvc.CreateFolder(c.Request.Context(), req.Name); err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"name": req.Name})
}

func (h *Handler) ListEssays(c *gin.Context) {
	folder := c.Param("folder")
	essays, err := h.essaySvc.ListEssays(c.Request.Context(), folder)
	if err != nil {
		log.WithError(err).WithField("folder", folder).Error("list essays failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.EssayResponse, 0, len(essays))
	for _, e := range essays {
		items = append(items, dto.ToEssayResponse(h.opts.FilesPrefix, folder, e))
	}
	c.JSON(http.StatusOK, dto.ListEssaysResponse{Folder: folder, Essays: items})
}

// GetEssay returns a transcript's text with its linked image.
func (h *Handler) GetEssay(c *gin.Context) {
	ctx := c.Request.Context()
	folder, file := c.Param("folder"), c.Param("file")

	text, err := h.essaySvc.ReadTranscript(ctx, folder, file)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	image, err := h.essaySvc.LinkArtifact(ctx, folder, file)
	if err != nil {
		log.WithError(err).WithField("folder", folder).Error("link artifact failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TranscriptResponse{
		Folder:     folder,
		Transcript: file,
		Image:      image,
		ImageURL:   dto.FileURL(h.opts.FilesPrefix, folder, image),
		Text:       text,
	})
}

func (h *Handler) UploadEssay(c *gin.Context) {
	fh, ok := h.formFile(c)
	if !ok {
		return
	}
	defer removeForm(c)
	f, err := fh.Open()
	if err != nil {
		mapDomainError(c, err)
		return
	}
	defer f.Close()

	folder := c.Param("folder")
	essay, tr, err := h.essaySvc.UploadEssay(c.Request.Context(), folder, fh.Filename, f)
	if err != nil {
		if !errors.Is(err, domain.ErrValidation) {
			log.WithError(err).WithField("folder", folder).Error("essay upload failed")
		}
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UploadEssayResponse{
		EssayResponse:         dto.ToEssayResponse(h.opts.FilesPrefix, folder, *essay),
		TranscriptionResponse: dto.ToTranscriptionResponse(tr),
	})
}
