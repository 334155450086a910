package note

import (
	"context"
	"strings"
)

// DefaultAuthor is attributed when the caller does not name one.
const DefaultAuthor = "System"

// ValidationError is a client error; the handler maps it to a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// CreateRequest is the POST /patients/:id/notes body.
type CreateRequest struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]Note, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) Create(ctx context.Context, patientID string, req CreateRequest) (*Note, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, &ValidationError{Message: "Note text is required"}
	}

	author := strings.TrimSpace(req.Author)
	if author == "" {
		author = DefaultAuthor
	}

	return s.repo.Create(ctx, Note{
		PatientID: patientID,
		Author:    author,
		Text:      text,
	})
}
