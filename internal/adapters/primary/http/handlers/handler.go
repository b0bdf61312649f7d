package handlers

import (
	"essay-grader-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

// Options are the transport limits and paths the handlers need.
type Options struct {
	MaxUploadBytes int64
	// FilesPrefix is the route the essays root is served under.
	FilesPrefix string
}

type Handler struct {
	rubricSvc     *services.RubricService
	assessmentSvc *services.AssessmentService
	gradeSvc      *services.GradeService
	essaySvc      *services.EssayService
	transcribeSvc *services.TranscriptionService
	opts          Options
}

func New(
	rubricSvc *services.RubricService,
	assessmentSvc *services.AssessmentService,
	gradeSvc *services.GradeService,
	essaySvc *services.EssayService,
	transcribeSvc *services.TranscriptionService,
	opts Options,
) *Handler {
	if opts.FilesPrefix == "" {
		opts.FilesPrefix = "/files"
	}
	return &Handler{
		rubricSvc:     rubricSvc,
		assessmentSvc: assessmentSvc,
		gradeSvc:      gradeSvc,
		essaySvc:      essaySvc,
		transcribeSvc: transcribeSvc,
		opts:          opts,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Transcription
	r.POST("/upload", h.Upload)

	// Essay folders
	r.GET("/folders", h.ListFolders)
	r.POST("/folders", h.CreateFolder)
	r.GET("/folders/:folder/essays", h.ListEssays)
	r.POST("/folders/:folder/essays", h.UploadEssay)
	r.GET("/folders/:folder/essays/:file", h.GetEssay)

	// Rubrics
	r.GET("/rubrics", h.ListRubrics)
	r.GET("/rubrics/:name", h.GetRubric)
	r.PUT("/rubrics/:name", h.PutRubric)

	// Assessments
	r.GET("/assessments", h.ListAssessments)
	r.GET("/assessments/:name", h.GetAssessment)
	r.POST("/assessments", h.CreateAssessment)

	// Grades
	r.GET("/assessments/:name/grades", h.ListGrades)
	r.GET("/assessments/:name/grades/:file", h.GetGrade)
	r.PUT("/assessments/:name/grades/:file", h.SubmitGrade)
	r.POST("/assessments/:name/grades/:file/auto", h.AutoGrade)
}
