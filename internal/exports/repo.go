package exports

import "context"

// ShareRepo stores share link snapshots.
type ShareRepo interface {
	Create(ctx context.Context, link ShareLink) error
	GetByToken(ctx context.Context, token string) (ShareLink, error)
	// ClaimGuest reassigns all share links from one owner to another and
	// returns how many rows moved.
	ClaimGuest(ctx context.Context, guestOwnerID, authedOwnerID string) (int, error)
}
