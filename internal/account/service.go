package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"resume-builder/internal/documents"
	"resume-builder/internal/exports"
)

type Service struct {
	DocRepo   documents.Repo
	ShareRepo exports.ShareRepo
}

type ClaimResult struct {
	MigratedDocuments  int `json:"migratedDocuments"`
	MigratedShareLinks int `json:"migratedShareLinks"`
}

func NewService(docRepo documents.Repo, shareRepo exports.ShareRepo) *Service {
	return &Service{DocRepo: docRepo, ShareRepo: shareRepo}
}

// ClaimGuest moves everything owned by the guest identity to the
// authenticated user. When both repos share a Postgres connection the move is
// one transaction; otherwise each repo migrates independently.
func (s *Service) ClaimGuest(ctx context.Context, guestOwnerID, authedOwnerID string) (ClaimResult, error) {
	if strings.TrimSpace(guestOwnerID) == "" || strings.TrimSpace(authedOwnerID) == "" {
		return ClaimResult{}, errors.New("guestOwnerID and authedOwnerID are required")
	}

	if docPG, ok := s.DocRepo.(*documents.PGRepo); ok && docPG != nil && docPG.DB != nil {
		if sharePG, ok := s.ShareRepo.(*exports.PGShareRepo); ok && sharePG != nil && sharePG.DB == docPG.DB {
			return claimWithTx(ctx, docPG.DB, guestOwnerID, authedOwnerID)
		}
	}

	docCount, err := claimDocs(ctx, s.DocRepo, guestOwnerID, authedOwnerID)
	if err != nil {
		return ClaimResult{}, err
	}
	shareCount := 0
	if s.ShareRepo != nil {
		shareCount, err = s.ShareRepo.ClaimGuest(ctx, guestOwnerID, authedOwnerID)
		if err != nil {
			return ClaimResult{}, err
		}
	}
	return ClaimResult{MigratedDocuments: docCount, MigratedShareLinks: shareCount}, nil
}

func claimWithTx(ctx context.Context, db *sql.DB, guestOwnerID, authedOwnerID string) (ClaimResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ClaimResult{}, err
	}
	defer tx.Rollback()

	docRes, err := tx.ExecContext(ctx, `UPDATE documents SET owner_id = $1 WHERE owner_id = $2`, authedOwnerID, guestOwnerID)
	if err != nil {
		return ClaimResult{}, err
	}
	docCount, _ := docRes.RowsAffected()

	shareRes, err := tx.ExecContext(ctx, `UPDATE share_links SET owner_id = $1 WHERE owner_id = $2`, authedOwnerID, guestOwnerID)
	if err != nil {
		return ClaimResult{}, err
	}
	shareCount, _ := shareRes.RowsAffected()

	if err := tx.Commit(); err != nil {
		return ClaimResult{}, err
	}
	return ClaimResult{MigratedDocuments: int(docCount), MigratedShareLinks: int(shareCount)}, nil
}

type guestClaimer interface {
	ClaimGuest(ctx context.Context, guestOwnerID, authedOwnerID string) (int, error)
}

func claimDocs(ctx context.Context, repo documents.Repo, guestOwnerID, authedOwnerID string) (int, error) {
	if claimer, ok := repo.(guestClaimer); ok {
		return claimer.ClaimGuest(ctx, guestOwnerID, authedOwnerID)
	}
	return 0, errors.New("documents repo does not support claim")
}
