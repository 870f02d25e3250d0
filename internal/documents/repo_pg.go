package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres. Content is stored in a JSONB column;
// the repo treats it as opaque bytes.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id, owner_id, title, doc_type, content, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.OwnerID,
		doc.Title,
		doc.Type,
		[]byte(doc.Content),
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

// Update overwrites title and content for a record owned by doc.OwnerID.
// UpdatedAt is clamped so it never moves backwards even if the caller's clock
// lags the row's current value.
func (r *PGRepo) Update(ctx context.Context, doc Document) (Document, error) {
	const query = `
UPDATE documents
SET title = $1, content = $2, updated_at = GREATEST(updated_at, $3)
WHERE id = $4 AND owner_id = $5
RETURNING doc_type, created_at, updated_at`
	row := r.DB.QueryRowContext(ctx, query,
		doc.Title,
		[]byte(doc.Content),
		doc.UpdatedAt,
		doc.ID,
		doc.OwnerID,
	)
	if err := row.Scan(&doc.Type, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// GetByID fetches a document scoped by (id, ownerID).
func (r *PGRepo) GetByID(ctx context.Context, ownerID, documentID string) (Document, error) {
	const query = `
SELECT id, owner_id, title, doc_type, content, created_at, updated_at
FROM documents
WHERE id = $1 AND owner_id = $2
LIMIT 1`
	var doc Document
	var content []byte
	err := r.DB.QueryRowContext(ctx, query, documentID, ownerID).Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.Title,
		&doc.Type,
		&content,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	doc.Content = content
	return doc, nil
}

// ListByOwner lists documents ordered most-recently-updated first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]Document, error) {
	const query = `
SELECT id, owner_id, title, doc_type, content, created_at, updated_at
FROM documents
WHERE owner_id = $1
ORDER BY updated_at DESC, id`

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var doc Document
		var content []byte
		if err := rows.Scan(
			&doc.ID,
			&doc.OwnerID,
			&doc.Title,
			&doc.Type,
			&content,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		doc.Content = content
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Delete removes a record scoped by (id, ownerID). Zero rows affected is fine.
func (r *PGRepo) Delete(ctx context.Context, ownerID, documentID string) error {
	const query = `
DELETE FROM documents
WHERE id = $1 AND owner_id = $2`
	_, err := r.DB.ExecContext(ctx, query, documentID, ownerID)
	return err
}

// ClaimGuest reassigns all documents from a guest owner to an authenticated
// one and returns how many rows moved.
func (r *PGRepo) ClaimGuest(ctx context.Context, guestOwnerID, authedOwnerID string) (int, error) {
	const query = `
UPDATE documents
SET owner_id = $1
WHERE owner_id = $2`
	res, err := r.DB.ExecContext(ctx, query, authedOwnerID, guestOwnerID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

var _ Repo = (*PGRepo)(nil)
