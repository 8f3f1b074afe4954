package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"career-backend/resume/model"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	doc, err := encodeDocument(resume.Document)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO resumes (id, user_id, name, content, document, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Name,
		resume.Content,
		doc,
		resume.CreatedAt,
		resume.UpdatedAt,
	)
	return err
}

func (r *PGRepo) Update(ctx context.Context, resume Resume) error {
	if !validID(resume.ID) {
		return ErrNotFound
	}
	doc, err := encodeDocument(resume.Document)
	if err != nil {
		return err
	}
	const query = `
UPDATE resumes
SET name = $3, content = $4, document = $5, updated_at = $6
WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Name,
		resume.Content,
		doc,
		resume.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	if !validID(resumeID) {
		return Resume{}, ErrNotFound
	}
	const query = `
SELECT id, user_id, name, content, document, created_at, updated_at
FROM resumes
WHERE id = $1
LIMIT 1`
	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, resumeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if resume.UserID != userID {
		return Resume{}, ErrForbidden
	}
	return resume, nil
}

// ListByUser lists resumes ordered by most recent update.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, name, content, document, created_at, updated_at
FROM resumes
WHERE user_id = $1
ORDER BY updated_at DESC, id
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) error {
	if !validID(resumeID) {
		return ErrNotFound
	}
	const query = `DELETE FROM resumes WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, resumeID, userID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var (
		resume Resume
		doc    []byte
	)
	if err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Name,
		&resume.Content,
		&doc,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	if len(doc) > 0 {
		var decoded model.ResumeDocument
		if err := json.Unmarshal(doc, &decoded); err != nil {
			return Resume{}, err
		}
		resume.Document = &decoded
	}
	return resume, nil
}

func encodeDocument(doc *model.ResumeDocument) (any, error) {
	if doc == nil {
		return nil, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// validID reports whether id can match the uuid primary key.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
