package resumes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/shared/telemetry"
)

var errOwnerRequired = errors.New("owner id required")

// Service contains business logic for resume documents.
type Service struct {
	Repo Store
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Store) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// clock returns UTC time at the microsecond precision of TIMESTAMPTZ, so a
// response carries the same timestamps a later read returns.
func (s *Service) clock() time.Time {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return now().UTC().Truncate(time.Microsecond)
}

// List returns the owner's documents, most recently updated first.
func (s *Service) List(ctx context.Context, ownerID string) ([]Resume, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, errOwnerRequired
	}
	return s.Repo.Find(ctx, ownerID)
}

// Get returns one owned document.
func (s *Service) Get(ctx context.Context, id, ownerID string) (Resume, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Resume{}, errOwnerRequired
	}
	return s.Repo.FindOne(ctx, id, ownerID)
}

// Create validates and stores a new document for the owner.
func (s *Service) Create(ctx context.Context, ownerID string, fields Fields) (Resume, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Resume{}, errOwnerRequired
	}
	fields = normalize(fields)
	if err := check(fields); err != nil {
		return Resume{}, err
	}

	now := s.clock()
	doc := Resume{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Fields:    fields,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Insert(ctx, doc); err != nil {
		return Resume{}, err
	}
	telemetry.Info("resume.created", map[string]any{
		"resume_id": doc.ID,
		"user_id":   ownerID,
		"template":  doc.Template,
	})
	return doc, nil
}

// Update replaces the writable fields of an owned document. Identity and
// creation time are preserved; the last write wins.
func (s *Service) Update(ctx context.Context, id, ownerID string, fields Fields) (Resume, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Resume{}, errOwnerRequired
	}
	existing, err := s.Repo.FindOne(ctx, id, ownerID)
	if err != nil {
		return Resume{}, err
	}
	fields = normalize(fields)
	if err := check(fields); err != nil {
		return Resume{}, err
	}

	doc := existing
	doc.Fields = fields
	doc.UpdatedAt = s.clock()
	// strictly newer even when the clock has not advanced
	if !doc.UpdatedAt.After(existing.UpdatedAt) {
		doc.UpdatedAt = existing.UpdatedAt.Add(time.Microsecond)
	}
	if err := s.Repo.Replace(ctx, id, ownerID, doc); err != nil {
		return Resume{}, err
	}
	return doc, nil
}

// Delete removes an owned document.
func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return errOwnerRequired
	}
	if err := s.Repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	telemetry.Info("resume.deleted", map[string]any{
		"resume_id": id,
		"user_id":   ownerID,
	})
	return nil
}
