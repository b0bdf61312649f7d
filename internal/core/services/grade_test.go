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

type gradeFixture struct {
	generator   *testutil.MockTextGenerator
	assessRepo  *testutil.MockAssessmentRepo
	rubricRepo  *testutil.MockRubricRepo
	gradeRepo   *testutil.MockGradeRepo
	folderStore *testutil.MockFolderStore
	svc         *GradeService
}

func newGradeFixture() *gradeFixture {
	f := &gradeFixture{
		generator:   new(testutil.MockTextGenerator),
		assessRepo:  new(testutil.MockAssessmentRepo),
		rubricRepo:  new(testutil.MockRubricRepo),
		gradeRepo:   new(testutil.MockGradeRepo),
		folderStore: new(testutil.MockFolderStore),
	}
	assessments := NewAssessmentService(f.assessRepo, f.rubricRepo)
	f.svc = NewGradeService(f.generator, assessments, f.rubricRepo, f.gradeRepo, f.folderStore)
	return f
}

func testRubric() *domain.Rubric {
	return &domain.Rubric{
		Name: "R1",
		Criteria: []domain.Criterion{
			{Title: "Clarity", Range: domain.Range{Min: 0, Max: 10}},
			{Title: "Organization", Range: domain.Range{Min: 1, Max: 4}},
		},
	}
}

func TestGradeService_GenerateGrade(t *testing.T) {
	f := newGradeFixture()
	f.generator.On("Complete", mock.Anything, mock.AnythingOfType("ports.CompletionRequest")).
		Return("Here are the scores:\n{\"clarity\": 3, \"Organization\": 5}\nThanks!", nil).Once()

	res, err := f.svc.GenerateGrade(context.Background(), "An essay.", testRubric())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Clarity": 5, "Organization": 4}, res.Expanded)
	assert.Equal(t, map[string]float64{"Clarity": 3, "Organization": 5}, res.Raw)
	f.generator.AssertNumberOfCalls(t, "Complete", 1)
}

func TestGradeService_GenerateGrade_PromptCarriesCriteria(t *testing.T) {
	f := newGradeFixture()
	f.generator.On("Complete", mock.Anything, mock.MatchedBy(func(req ports.CompletionRequest) bool {
		return req.SystemPrompt != "" &&
			strings.Contains(req.UserPrompt, "1. Clarity\n2. Organization") &&
			strings.Contains(req.UserPrompt, "An essay.")
	})).Return(`{"Clarity": 1, "Organization": 1}`, nil)

	res, err := f.svc.GenerateGrade(context.Background(), "An essay.", testRubric())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Expanded["Clarity"])
	assert.Equal(t, 1, res.Expanded["Organization"])
}

func TestGradeService_GenerateGrade_CollaboratorFailure(t *testing.T) {
	f := newGradeFixture()
	f.generator.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("timeout")).Once()

	_, err := f.svc.GenerateGrade(context.Background(), "An essay.", testRubric())
	assert.ErrorIs(t, err, domain.ErrCollaborator)
	f.generator.AssertNumberOfCalls(t, "Complete", 1)
}

func TestGradeService_GenerateGrade_NoJSON(t *testing.T) {
	f := newGradeFixture()
	f.generator.On("Complete", mock.Anything, mock.Anything).Return("I would give it a four.", nil)

	_, err := f.svc.GenerateGrade(context.Background(), "An essay.", testRubric())
	assert.ErrorIs(t, err, domain.ErrNoJSONFound)
}

func TestGradeService_GenerateGrade_PartialReplyFails(t *testing.T) {
	f := newGradeFixture()
	f.generator.On("Complete", mock.Anything, mock.Anything).Return(`{"Clarity": 4}`, nil)

	res, err := f.svc.GenerateGrade(context.Background(), "An essay.", testRubric())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrUnmatchedCriterion)
}

func TestGradeService_GenerateGrade_InvalidRubric(t *testing.T) {
	f := newGradeFixture()

	_, err := f.svc.GenerateGrade(context.Background(), "An essay.", &domain.Rubric{Name: "empty"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	f.generator.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestGradeService_GradeEssay(t *testing.T) {
	f := newGradeFixture()
	assessment := &domain.Assessment{Name: "Midterm", Folder: "period-3", Rubric: "R1"}
	f.assessRepo.On("List", mock.Anything).Return([]*domain.Assessment{assessment}, nil)
	f.rubricRepo.On("Get", mock.Anything, "R1").Return(testRubric(), nil)
	f.folderStore.On("ReadFile", mock.Anything, "period-3", "42.txt").Return([]byte("My essay"), nil)
	f.generator.On("Complete", mock.Anything, mock.Anything).Return(`{"Clarity": 5, "Organization": 3}`, nil)
	f.gradeRepo.On("Put", mock.Anything, "Midterm", mock.MatchedBy(func(g *domain.GradeRecord) bool {
		return g.EssayFile == "42.txt" && g.Grades["Clarity"] == 10 && g.Grades["Organization"] == 3
	})).Return(nil)

	record, result, err := f.svc.GradeEssay(context.Background(), "Midterm", "42.txt", "nice")
	require.NoError(t, err)
	assert.Equal(t, "nice", record.Comments)
	assert.False(t, record.GradedAt.IsZero())
	assert.Equal(t, float64(5), result.Raw["Clarity"])
	f.gradeRepo.AssertExpectations(t)
}

func TestGradeService_GradeEssay_AssessmentNotFound(t *testing.T) {
	f := newGradeFixture()
	f.assessRepo.On("List", mock.Anything).Return([]*domain.Assessment{}, nil)

	_, _, err := f.svc.GradeEssay(context.Background(), "Missing", "42.txt", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGradeService_GradeEssay_RejectsNonTranscript(t *testing.T) {
	f := newGradeFixture()

	_, _, err := f.svc.GradeEssay(context.Background(), "Midterm", "42.png", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = f.svc.GradeEssay(context.Background(), "Midterm", "../secret.txt", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGradeService_GradeEssay_NothingStoredOnFailure(t *testing.T) {
	f := newGradeFixture()
	assessment := &domain.Assessment{Name: "Midterm", Folder: "period-3", Rubric: "R1"}
	f.assessRepo.On("List", mock.Anything).Return([]*domain.Assessment{assessment}, nil)
	f.rubricRepo.On("Get", mock.Anything, "R1").Return(testRubric(), nil)
	f.folderStore.On("ReadFile", mock.Anything, "period-3", "42.txt").Return([]byte("My essay"), nil)
	f.generator.On("Complete", mock.Anything, mock.Anything).Return(`{"Clarity": "excellent", "Organization": 3}`, nil)

	_, _, err := f.svc.GradeEssay(context.Background(), "Midterm", "42.txt", "")
	assert.ErrorIs(t, err, domain.ErrInvalidScore)
	f.gradeRepo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

func TestGradeService_Submit(t *testing.T) {
	f := newGradeFixture()
	assessment := &domain.Assessment{Name: "Midterm", Folder: "period-3", Rubric: "R1"}
	f.assessRepo.On("List", mock.Anything).Return([]*domain.Assessment{assessment}, nil)
	f.rubricRepo.On("Get", mock.Anything, "R1").Return(testRubric(), nil)
	f.gradeRepo.On("Put", mock.Anything, "Midterm", mock.AnythingOfType("*domain.GradeRecord")).Return(nil)

	record, err := f.svc.Submit(context.Background(), "Midterm", &domain.GradeRecord{
		EssayFile: "42.txt",
		Grades:    map[string]int{"Clarity": 7, "Organization": 2},
	})
	require.NoError(t, err)
	assert.False(t, record.GradedAt.IsZero())
}

func TestGradeService_Submit_OutOfRange(t *testing.T) {
	f := newGradeFixture()
	assessment := &domain.Assessment{Name: "Midterm", Folder: "period-3", Rubric: "R1"}
	f.assessRepo.On("List", mock.Anything).Return([]*domain.Assessment{assessment}, nil)
	f.rubricRepo.On("Get", mock.Anything, "R1").Return(testRubric(), nil)

	_, err := f.svc.Submit(context.Background(), "Midterm", &domain.GradeRecord{
		EssayFile: "42.txt",
		Grades:    map[string]int{"Clarity": 11, "Organization": 2},
	})
	assert.ErrorIs(t, err, domain.ErrGradeOutOfRange)
	f.gradeRepo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}
