// Package app wires configuration, secondary adapters and core services.
// Both the HTTP server and gradectl build on it.
package app

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"

	"essay-grader-service/internal/adapters/secondary/filestore"
	"essay-grader-service/internal/adapters/secondary/openai"
	"essay-grader-service/internal/adapters/secondary/postgres"
	"essay-grader-service/internal/adapters/secondary/sqlite"
	"essay-grader-service/internal/adapters/secondary/tesseract"
	"essay-grader-service/internal/adapters/secondary/vision"
	"essay-grader-service/internal/config"
	ports "essay-grader-service/internal/core/ports/output"
	"essay-grader-service/internal/core/services"
)

// Stores groups the record repositories of one backend.
type Stores struct {
	Assessments ports.AssessmentRepository
	Rubrics     ports.RubricRepository
	Grades      ports.GradeRepository
	Health      ports.HealthChecker

	close func()
}

func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// OpenStores opens the record store selected by cfg.Storage.Driver.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.Storage.Driver {
	case "file":
		store, err := filestore.New(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		log.WithField("dir", cfg.Storage.DataDir).Info("using file record store")
		return &Stores{
			Assessments: filestore.NewAssessmentRepository(store),
			Rubrics:     filestore.NewRubricRepository(store),
			Grades:      filestore.NewGradeRepository(store),
			Health:      store,
		}, nil

	case "sqlite":
		db, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.WithField("path", cfg.Storage.SQLitePath).Info("using sqlite record store")
		return &Stores{
			Assessments: sqlite.NewAssessmentRepository(db),
			Rubrics:     sqlite.NewRubricRepository(db),
			Grades:      sqlite.NewGradeRepository(db),
			Health:      pingFunc(db.PingContext),
			close:       closeDB(db),
		}, nil

	case "postgres":
		pool, err := postgres.NewPool(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info("database connection established")
		return &Stores{
			Assessments: postgres.NewAssessmentRepository(pool),
			Rubrics:     postgres.NewRubricRepository(pool),
			Grades:      postgres.NewGradeRepository(pool),
			Health:      pool,
			close:       pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func closeDB(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Warn("close sqlite")
		}
	}
}

// NewRecognizer returns the OCR collaborator selected by cfg.Provider.
func NewRecognizer(cfg *config.OCRConfig) ports.TextRecognizer {
	if cfg.Provider == "tesseract" {
		return tesseract.New(cfg)
	}
	if cfg.VisionAPIKey == "" {
		log.Warn("VISION_API_KEY is empty; text recognition requests will fail")
	}
	return vision.NewClient(cfg)
}

// App holds the wired core services.
type App struct {
	Config  *config.Config
	Stores  *Stores
	Folders *filestore.FolderStore

	Rubrics       *services.RubricService
	Assessments   *services.AssessmentService
	Grades        *services.GradeService
	Essays        *services.EssayService
	Transcription *services.TranscriptionService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Secondary Adapters
	stores, err := OpenStores(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	folders, err := filestore.NewFolderStore(cfg.Essays.Root)
	if err != nil {
		stores.Close()
		return nil, fmt.Errorf("open essays root: %w", err)
	}
	if cfg.LLM.APIKey == "" {
		log.Warn("LLM_API_KEY is empty; text generation requests will fail")
	}
	generator := openai.NewClient(&cfg.LLM)
	recognizer := NewRecognizer(&cfg.OCR)

	// Core Services
	assessmentSvc := services.NewAssessmentService(stores.Assessments, stores.Rubrics)
	transcriptionSvc := services.NewTranscriptionService(recognizer, generator)

	return &App{
		Config:        cfg,
		Stores:        stores,
		Folders:       folders,
		Rubrics:       services.NewRubricService(stores.Rubrics),
		Assessments:   assessmentSvc,
		Grades:        services.NewGradeService(generator, assessmentSvc, stores.Rubrics, stores.Grades, folders),
		Essays:        services.NewEssayService(folders, transcriptionSvc),
		Transcription: transcriptionSvc,
	}, nil
}

func (a *App) Close() { a.Stores.Close() }

// InitLogger applies the configured level and format to the standard logger.
func InitLogger(cfg *config.LoggerConfig) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
