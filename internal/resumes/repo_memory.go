package resumes

import (
	"context"
	"slices"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Store.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Resume // id -> document
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Resume),
	}
}

// Find returns the owner's documents, most recently updated first.
func (r *MemoryRepo) Find(ctx context.Context, ownerID string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Resume, 0)
	for _, doc := range r.data {
		if doc.UserID == ownerID {
			out = append(out, clone(doc))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// FindOne returns a document by id for its owner.
func (r *MemoryRepo) FindOne(ctx context.Context, id, ownerID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.data[id]
	if !ok || doc.UserID != ownerID {
		return Resume{}, ErrNotFound
	}
	return clone(doc), nil
}

// Insert stores a new document.
func (r *MemoryRepo) Insert(ctx context.Context, doc Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.ID] = clone(doc)
	return nil
}

// Replace overwrites a document the owner already has.
func (r *MemoryRepo) Replace(ctx context.Context, id, ownerID string, doc Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[id]
	if !ok || existing.UserID != ownerID {
		return ErrNotFound
	}
	doc.ID = id
	doc.UserID = ownerID
	r.data[id] = clone(doc)
	return nil
}

// Delete removes a document the owner has.
func (r *MemoryRepo) Delete(ctx context.Context, id, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[id]
	if !ok || existing.UserID != ownerID {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// clone copies every nested slice so callers never share state with the map.
func clone(doc Resume) Resume {
	out := doc
	out.Experience = slices.Clone(doc.Experience)
	for i := range out.Experience {
		out.Experience[i].Achievements = slices.Clone(out.Experience[i].Achievements)
	}
	out.Education = slices.Clone(doc.Education)
	for i := range out.Education {
		out.Education[i].Achievements = slices.Clone(out.Education[i].Achievements)
	}
	out.Projects = slices.Clone(doc.Projects)
	for i := range out.Projects {
		out.Projects[i].Technologies = slices.Clone(out.Projects[i].Technologies)
	}
	out.Certifications = slices.Clone(doc.Certifications)
	out.Skills = Skills{
		Technical: slices.Clone(doc.Skills.Technical),
		Soft:      slices.Clone(doc.Skills.Soft),
		Languages: slices.Clone(doc.Skills.Languages),
		Tools:     slices.Clone(doc.Skills.Tools),
	}
	if doc.AISuggestions != nil {
		s := *doc.AISuggestions
		s.Suggestions = slices.Clone(s.Suggestions)
		out.AISuggestions = &s
	}
	return out
}

var _ Store = (*MemoryRepo)(nil)
