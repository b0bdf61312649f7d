package services

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"essay-grader-service/internal/core/domain"
	"essay-grader-service/internal/core/ports/output"
	"essay-grader-service/internal/core/scoring"
)

const gradingTemperature = 0.2

type GradeService struct {
	generator   ports.TextGenerator
	assessments *AssessmentService
	rubricRepo  ports.RubricRepository
	gradeRepo   ports.GradeRepository
	folders     ports.EssayFolderStore
}

func NewGradeService(
	generator ports.TextGenerator,
	assessments *AssessmentService,
	rubricRepo ports.RubricRepository,
	gradeRepo ports.GradeRepository,
	folders ports.EssayFolderStore,
) *GradeService {
	return &GradeService{
		generator:   generator,
		assessments: assessments,
		rubricRepo:  rubricRepo,
		gradeRepo:   gradeRepo,
		folders:     folders,
	}
}

// GenerateGrade asks the text generator for 1-5 scores and expands them into
// the rubric's ranges. It makes exactly one completion call and returns either
// a score for every criterion or an error.
func (s *GradeService) GenerateGrade(ctx context.Context, essayText string, rubric *domain.Rubric) (*domain.GradeResult, error) {
	if err := rubric.Validate(); err != nil {
		return nil, err
	}

	prompt, err := scoring.BuildGradingPrompt(essayText, rubric)
	if err != nil {
		return nil, err
	}

	reply, err := s.generator.Complete(ctx, ports.CompletionRequest{
		SystemPrompt: scoring.GradingSystemPrompt,
		UserPrompt:   prompt,
		Temperature:  gradingTemperature,
	})
	if err != nil {
		var cErr *domain.CollaboratorError
		if !errors.As(err, &cErr) {
			err = &domain.CollaboratorError{Collaborator: "text generation", Err: err}
		}
		return nil, err
	}

	scores, err := scoring.ExtractJSON(reply)
	if err != nil {
		log.WithError(err).WithField("rubric", rubric.Name).Warn("grading reply has no usable JSON")
		return nil, err
	}

	result, err := scoring.MatchScores(rubric, scores)
	if err != nil {
		log.WithError(err).WithField("rubric", rubric.Name).Warn("grading reply rejected")
		return nil, err
	}
	return result, nil
}

// GradeEssay grades a stored transcript under an assessment and persists the
// expanded scores as the essay's grade record.
func (s *GradeService) GradeEssay(ctx context.Context, assessmentName, essayFile, comments string) (*domain.GradeRecord, *domain.GradeResult, error) {
	if err := domain.ValidatePathName(essayFile); err != nil {
		return nil, nil, err
	}
	if !domain.IsTranscript(essayFile) {
		return nil, nil, domain.ErrInvalidEssayFile
	}

	a, err := s.assessments.Get(ctx, assessmentName)
	if err != nil {
		return nil, nil, err
	}
	rubric, err := s.rubricRepo.Get(ctx, a.Rubric)
	if err != nil {
		return nil, nil, err
	}
	text, err := s.folders.ReadFile(ctx, a.Folder, essayFile)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.GenerateGrade(ctx, string(text), rubric)
	if err != nil {
		return nil, nil, err
	}

	record := &domain.GradeRecord{
		EssayFile: essayFile,
		Grades:    result.Expanded,
		Comments:  comments,
		GradedAt:  time.Now().UTC(),
	}
	if err := s.gradeRepo.Put(ctx, a.Name, record); err != nil {
		return nil, nil, err
	}

	log.WithFields(log.Fields{
		"assessment": a.Name,
		"essay":      essayFile,
	}).Info("essay graded")
	return record, result, nil
}

// Submit stores a manually entered grade after checking it against the
// assessment's rubric.
func (s *GradeService) Submit(ctx context.Context, assessmentName string, record *domain.GradeRecord) (*domain.GradeRecord, error) {
	if err := domain.ValidatePathName(record.EssayFile); err != nil {
		return nil, err
	}

	a, err := s.assessments.Get(ctx, assessmentName)
	if err != nil {
		return nil, err
	}
	rubric, err := s.rubricRepo.Get(ctx, a.Rubric)
	if err != nil {
		return nil, err
	}
	if err := record.ValidateAgainst(rubric); err != nil {
		return nil, err
	}

	if record.GradedAt.IsZero() {
		record.GradedAt = time.Now().UTC()
	}
	if err := s.gradeRepo.Put(ctx, a.Name, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *GradeService) Get(ctx context.Context, assessmentName, essayFile string) (*domain.GradeRecord, error) {
	return s.gradeRepo.Get(ctx, assessmentName, essayFile)
}

func (s *GradeService) ListKeys(ctx context.Context, assessmentName string) ([]string, error) {
	return s.gradeRepo.ListKeys(ctx, assessmentName)
}
