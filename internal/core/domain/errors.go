package domain

import (
	"errors"
	"fmt"
)

// ============================================================================
// Error Kinds
// ============================================================================

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrCollaborator = errors.New("collaborator call failed")
)

// Not found errors
var (
	ErrRubricNotFound     = fmt.Errorf("rubric %w", ErrNotFound)
	ErrAssessmentNotFound = fmt.Errorf("assessment %w", ErrNotFound)
	ErrGradeNotFound      = fmt.Errorf("grade %w", ErrNotFound)
	ErrFolderNotFound     = fmt.Errorf("folder %w", ErrNotFound)
	ErrEssayNotFound      = fmt.Errorf("essay %w", ErrNotFound)
)

// Validation errors
var (
	ErrInvalidRubricName     = fmt.Errorf("%w: rubric name is required", ErrValidation)
	ErrEmptyCriteria         = fmt.Errorf("%w: rubric must have at least one criterion", ErrValidation)
	ErrInvalidCriterionTitle = fmt.Errorf("%w: criterion title is required", ErrValidation)
	ErrDuplicateCriterion    = fmt.Errorf("%w: criterion titles must be unique", ErrValidation)
	ErrInvalidRange          = fmt.Errorf("%w: criterion range must satisfy min < max", ErrValidation)
	ErrInvalidAssessmentName = fmt.Errorf("%w: assessment name is required", ErrValidation)
	ErrInvalidFolder         = fmt.Errorf("%w: folder is required", ErrValidation)
	ErrInvalidEssayFile      = fmt.Errorf("%w: essay file is required", ErrValidation)
	ErrUnsafeName            = fmt.Errorf("%w: name must not contain path separators", ErrValidation)
	ErrGradeOutOfRange       = fmt.Errorf("%w: grade is outside the criterion range", ErrValidation)
	ErrUnknownCriterion      = fmt.Errorf("%w: grade refers to an unknown criterion", ErrValidation)
	ErrMissingGrade          = fmt.Errorf("%w: grade is missing for a criterion", ErrValidation)
	ErrUnsupportedImage      = fmt.Errorf("%w: image must be .jpg, .jpeg or .png", ErrValidation)
)

// ============================================================================
// Grading Errors
// ============================================================================

var (
	ErrNoJSONFound        = errors.New("no JSON object found in response")
	ErrMalformedJSON      = errors.New("malformed JSON object in response")
	ErrUnmatchedCriterion = errors.New("criterion has no score in response")
	ErrAmbiguousCriterion = errors.New("criterion matches several response keys")
	ErrInvalidScore       = errors.New("invalid score in response")
	ErrArtifactLookup     = errors.New("essay folder could not be listed")
)

// MalformedJSONError carries the decoder failure for the extracted candidate.
type MalformedJSONError struct {
	Candidate string
	Err       error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedJSON.Error(), e.Err)
}

func (e *MalformedJSONError) Unwrap() []error { return []error{ErrMalformedJSON, e.Err} }

type UnmatchedCriterionError struct {
	Title string
}

func (e *UnmatchedCriterionError) Error() string {
	return fmt.Sprintf("criterion %q has no score in response", e.Title)
}

func (e *UnmatchedCriterionError) Unwrap() error { return ErrUnmatchedCriterion }

// AmbiguousCriterionError is returned when no key equals the title verbatim and
// more than one key normalizes to the same value.
type AmbiguousCriterionError struct {
	Title string
	Keys  []string
}

func (e *AmbiguousCriterionError) Error() string {
	return fmt.Sprintf("criterion %q matches several response keys %q", e.Title, e.Keys)
}

func (e *AmbiguousCriterionError) Unwrap() error { return ErrAmbiguousCriterion }

type InvalidScoreError struct {
	Title string
	Score any
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("criterion %q has invalid score %v", e.Title, e.Score)
}

func (e *InvalidScoreError) Unwrap() error { return ErrInvalidScore }

// ArtifactLookupError keeps the folder and cause for logs. Callers facing users
// should report ErrArtifactLookup only.
type ArtifactLookupError struct {
	Folder string
	Err    error
}

func (e *ArtifactLookupError) Error() string {
	return fmt.Sprintf("list folder %s: %v", e.Folder, e.Err)
}

func (e *ArtifactLookupError) Unwrap() []error { return []error{ErrArtifactLookup, e.Err} }

// CollaboratorError wraps a failed or unusable OCR / text-generation call.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() []error { return []error{ErrCollaborator, e.Err} }
