package tesseract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"essay-grader-service/internal/config"
	"essay-grader-service/internal/core/domain"
	ports "essay-grader-service/internal/core/ports/output"
)

const collaborator = "text recognition"

// Recognizer shells out to the tesseract binary.
type Recognizer struct {
	Binary  string
	Lang    string
	Timeout time.Duration
}

func New(cfg *config.OCRConfig) *Recognizer {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &Recognizer{Binary: "tesseract", Lang: cfg.TesseractLang, Timeout: timeout}
}

var _ ports.TextRecognizer = (*Recognizer)(nil)

func (t *Recognizer) Recognize(ctx context.Context, image io.Reader) (string, error) {
	f, err := os.CreateTemp("", "scan-*.img")
	if err != nil {
		return "", err
	}
	defer func() { f.Close(); os.Remove(f.Name()) }()

	if _, err := io.Copy(f, image); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return t.exec(ctx, f.Name())
}

func (t *Recognizer) exec(ctx context.Context, inPath string) (string, error) {
	if _, err := exec.LookPath(t.Binary); err != nil {
		return "", &domain.CollaboratorError{Collaborator: collaborator, Err: errors.New("tesseract not found in PATH")}
	}
	args := []string{inPath, "stdout"}
	if t.Lang != "" {
		args = append(args, "-l", t.Lang)
	}
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, t.Binary, args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &domain.CollaboratorError{
			Collaborator: collaborator,
			Err:          fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String())),
		}
	}
	return out.String(), nil
}
