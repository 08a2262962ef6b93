package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// PGRepo implements Store using Postgres, with each section in a JSONB column.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, user_id, title, template, personal_info, experience, education, skills, projects, certifications, ai_suggestions, created_at, updated_at`

// Find lists the owner's documents ordered by last update.
func (r *PGRepo) Find(ctx context.Context, ownerID string) ([]Resume, error) {
	query := `
SELECT ` + selectColumns + `
FROM resumes
WHERE user_id = $1
ORDER BY updated_at DESC, id`

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		doc, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// FindOne fetches a document by id for its owner.
func (r *PGRepo) FindOne(ctx context.Context, id, ownerID string) (Resume, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Resume{}, ErrNotFound
	}
	query := `
SELECT ` + selectColumns + `
FROM resumes
WHERE id = $1 AND user_id = $2
LIMIT 1`

	doc, err := scanResume(r.DB.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return doc, nil
}

// Insert stores a new document.
func (r *PGRepo) Insert(ctx context.Context, doc Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    user_id,
    title,
    template,
    personal_info,
    experience,
    education,
    skills,
    projects,
    certifications,
    ai_suggestions,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	sections, err := encodeSections(doc.Fields)
	if err != nil {
		return err
	}
	args := []any{doc.ID, doc.UserID, doc.Title, doc.Template}
	args = append(args, sections...)
	args = append(args, doc.CreatedAt, doc.UpdatedAt)
	_, err = r.DB.ExecContext(ctx, query, args...)
	return err
}

// Replace overwrites every writable field of an owned document.
func (r *PGRepo) Replace(ctx context.Context, id, ownerID string, doc Resume) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	const query = `
UPDATE resumes
SET title = $1,
    template = $2,
    personal_info = $3,
    experience = $4,
    education = $5,
    skills = $6,
    projects = $7,
    certifications = $8,
    ai_suggestions = $9,
    updated_at = $10
WHERE id = $11 AND user_id = $12`

	sections, err := encodeSections(doc.Fields)
	if err != nil {
		return err
	}
	args := []any{doc.Title, doc.Template}
	args = append(args, sections...)
	args = append(args, doc.UpdatedAt, id, ownerID)
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes an owned document.
func (r *PGRepo) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	const query = `DELETE FROM resumes WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// encodeSections returns the JSONB arguments in column order:
// personal_info, experience, education, skills, projects, certifications, ai_suggestions.
func encodeSections(f Fields) ([]any, error) {
	values := []any{f.PersonalInfo, f.Experience, f.Education, f.Skills, f.Projects, f.Certifications}
	out := make([]any, 0, len(values)+1)
	for _, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode resume section: %w", err)
		}
		out = append(out, string(b))
	}
	if f.AISuggestions == nil {
		return append(out, nil), nil
	}
	b, err := json.Marshal(f.AISuggestions)
	if err != nil {
		return nil, fmt.Errorf("encode ai suggestions: %w", err)
	}
	return append(out, string(b)), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var doc Resume
	var personalInfo, experience, education, skills, projects, certifications, aiSuggestions []byte
	if err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Title,
		&doc.Template,
		&personalInfo,
		&experience,
		&education,
		&skills,
		&projects,
		&certifications,
		&aiSuggestions,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}

	sections := []struct {
		raw  []byte
		dest any
	}{
		{personalInfo, &doc.PersonalInfo},
		{experience, &doc.Experience},
		{education, &doc.Education},
		{skills, &doc.Skills},
		{projects, &doc.Projects},
		{certifications, &doc.Certifications},
	}
	for _, s := range sections {
		if len(s.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(s.raw, s.dest); err != nil {
			return Resume{}, fmt.Errorf("decode resume %s: %w", doc.ID, err)
		}
	}
	if len(aiSuggestions) > 0 {
		var ai AISuggestions
		if err := json.Unmarshal(aiSuggestions, &ai); err != nil {
			return Resume{}, fmt.Errorf("decode resume %s: %w", doc.ID, err)
		}
		doc.AISuggestions = &ai
	}
	doc.Fields = normalize(doc.Fields)
	return doc, nil
}

var _ Store = (*PGRepo)(nil)
