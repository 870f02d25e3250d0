package exports

import (
	"context"
	"database/sql"
	"errors"
)

// PGShareRepo implements ShareRepo using Postgres.
type PGShareRepo struct {
	DB *sql.DB
}

// Create inserts a share link snapshot.
func (r *PGShareRepo) Create(ctx context.Context, link ShareLink) error {
	const query = `
INSERT INTO share_links (
    token, owner_id, document_id, title, doc_type, content, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		link.Token,
		link.OwnerID,
		link.DocumentID,
		link.Title,
		link.DocType,
		[]byte(link.Content),
		link.CreatedAt,
	)
	return err
}

// GetByToken fetches a snapshot by its opaque token.
func (r *PGShareRepo) GetByToken(ctx context.Context, token string) (ShareLink, error) {
	const query = `
SELECT token, owner_id, document_id, title, doc_type, content, created_at
FROM share_links
WHERE token = $1
LIMIT 1`
	var link ShareLink
	var content []byte
	err := r.DB.QueryRowContext(ctx, query, token).Scan(
		&link.Token,
		&link.OwnerID,
		&link.DocumentID,
		&link.Title,
		&link.DocType,
		&content,
		&link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ShareLink{}, ErrShareNotFound
		}
		return ShareLink{}, err
	}
	link.Content = content
	return link, nil
}

// ClaimGuest moves share links from a guest owner to an authenticated one.
func (r *PGShareRepo) ClaimGuest(ctx context.Context, guestOwnerID, authedOwnerID string) (int, error) {
	const query = `
UPDATE share_links
SET owner_id = $1
WHERE owner_id = $2`
	res, err := r.DB.ExecContext(ctx, query, authedOwnerID, guestOwnerID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

var _ ShareRepo = (*PGShareRepo)(nil)
