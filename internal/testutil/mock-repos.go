package testutil

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"essay-grader-service/internal/core/domain"
	"essay-grader-service/internal/core/ports/output"
)

// MockAssessmentRepo is a mock of AssessmentRepository.
type MockAssessmentRepo struct {
	mock.Mock
}

func (m *MockAssessmentRepo) Append(ctx context.Context, a *domain.Assessment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssessmentRepo) List(ctx context.Context) ([]*domain.Assessment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Assessment), args.Error(1)
}

// MockRubricRepo is a mock of RubricRepository.
type MockRubricRepo struct {
	mock.Mock
}

func (m *MockRubricRepo) Put(ctx context.Context, r *domain.Rubric) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRubricRepo) Get(ctx context.Context, name string) (*domain.Rubric, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rubric), args.Error(1)
}

func (m *MockRubricRepo) List(ctx context.Context) ([]*domain.Rubric, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Rubric), args.Error(1)
}

// MockGradeRepo is a mock of GradeRepository.
type MockGradeRepo struct {
	mock.Mock
}

func (m *MockGradeRepo) Put(ctx context.Context, assessment string, g *domain.GradeRecord) error {
	args := m.Called(ctx, assessment, g)
	return args.Error(0)
}

func (m *MockGradeRepo) Get(ctx context.Context, assessment, essayFile string) (*domain.GradeRecord, error) {
	args := m.Called(ctx, assessment, essayFile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GradeRecord), args.Error(1)
}

func (m *MockGradeRepo) ListKeys(ctx context.Context, assessment string) ([]string, error) {
	args := m.Called(ctx, assessment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockFolderStore is a mock of EssayFolderStore.
type MockFolderStore struct {
	mock.Mock
}

func (m *MockFolderStore) ListFolders(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFolderStore) CreateFolder(ctx context.Context, folder string) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *MockFolderStore) ListFiles(ctx context.Context, folder string) ([]string, error) {
	args := m.Called(ctx, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFolderStore) ReadFile(ctx context.Context, folder, name string) ([]byte, error) {
	args := m.Called(ctx, folder, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// WriteFile drains r so expectations can match on the written content.
func (m *MockFolderStore) WriteFile(ctx context.Context, folder, name string, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	args := m.Called(ctx, folder, name, string(b))
	return args.Error(0)
}

func (m *MockFolderStore) RemoveFile(ctx context.Context, folder, name string) error {
	args := m.Called(ctx, folder, name)
	return args.Error(0)
}

// MockTextGenerator is a mock of TextGenerator.
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockTextRecognizer is a mock of TextRecognizer.
type MockTextRecognizer struct {
	mock.Mock
}

func (m *MockTextRecognizer) Recognize(ctx context.Context, image io.Reader) (string, error) {
	b, err := io.ReadAll(image)
	if err != nil {
		return "", err
	}
	args := m.Called(ctx, string(b))
	return args.String(0), args.Error(1)
}
