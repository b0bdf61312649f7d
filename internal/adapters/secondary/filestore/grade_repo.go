package filestore

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"essay-grader-service/internal/core/domain"
	ports "essay-grader-service/internal/core/ports/output"
)

const (
	gradesDir = "grades"
	gradeExt  = ".json"
)

type gradeRepo struct {
	store *Store
}

// NewGradeRepository stores one document per essay at
// grades/<assessment>/<essayFile>.json, with the assessment name escaped
// into a single directory name.
func NewGradeRepository(store *Store) ports.GradeRepository {
	return &gradeRepo{store: store}
}

func (r *gradeRepo) Put(ctx context.Context, assessment string, g *domain.GradeRecord) error {
	path, err := r.gradePath(assessment, g.EssayFile)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	return r.store.withLock(ctx, dir, func() error {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create grade dir: %w", err)
		}
		if err := writeJSON(path, g); err != nil {
			return fmt.Errorf("write grade: %w", err)
		}
		return nil
	})
}

func (r *gradeRepo) Get(ctx context.Context, assessment, essayFile string) (*domain.GradeRecord, error) {
	path, err := r.gradePath(assessment, essayFile)
	if err != nil {
		return nil, err
	}
	var g domain.GradeRecord
	if err := readJSON(path, &g); err != nil {
		if isNotExist(err) {
			return nil, domain.ErrGradeNotFound
		}
		return nil, fmt.Errorf("read grade: %w", err)
	}
	return &g, nil
}

func (r *gradeRepo) ListKeys(ctx context.Context, assessment string) ([]string, error) {
	dir, err := assessmentDir(assessment)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(r.store.path(gradesDir, dir))
	if err != nil {
		if isNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list grades: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, gradeExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, gradeExt))
	}
	return keys, nil
}

func (r *gradeRepo) gradePath(assessment, essayFile string) (string, error) {
	dir, err := assessmentDir(assessment)
	if err != nil {
		return "", err
	}
	if err := domain.ValidatePathName(essayFile); err != nil {
		return "", err
	}
	return r.store.path(gradesDir, dir, essayFile+gradeExt), nil
}

// assessmentDir maps any non-empty assessment name to one path element.
// Separators are percent-escaped; names made only of dots are escaped whole.
func assessmentDir(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", domain.ErrInvalidAssessmentName
	}
	dir := url.PathEscape(name)
	if strings.Trim(dir, ".") == "" {
		dir = strings.ReplaceAll(dir, ".", "%2E")
	}
	return dir, nil
}
