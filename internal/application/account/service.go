package account

import (
	"context"
	"time"

	"github.com/auth-flow-api/internal/domain"
	"github.com/auth-flow-api/internal/infrastructure/dynamo"
)

type Service interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	Update(ctx context.Context, accountID string, req domain.UpdateAccountRequest) (*domain.Account, error)
	List(ctx context.Context, limit int, cursor string) ([]domain.Account, string, error)
	Block(ctx context.Context, accountID, reason string) error
	Unblock(ctx context.Context, accountID string) error
	Delete(ctx context.Context, accountID, reason string) error
	MarkInReview(ctx context.Context, accountID string) error
}

type accountStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Account, string, error)
}

type service struct {
	repo accountStore
}

func NewService(repo accountStore) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.repo.Get(ctx, accountID)
}

func (s *service) Update(ctx context.Context, accountID string, req domain.UpdateAccountRequest) (*domain.Account, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[dynamo.FieldName] = *req.Name
	}
	if req.ProfileImage != nil {
		updates[dynamo.FieldProfileImage] = *req.ProfileImage
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, accountID)
	}
	if err := s.repo.Update(ctx, accountID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, accountID)
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.Account, string, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}

// Block moves an active account into the blocked state. Blocked accounts
// fail every sensitive flow until unblocked.
func (s *service) Block(ctx context.Context, accountID, reason string) error {
	a, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return err
	}
	if a.IsDeleted() {
		return domain.E(domain.KindGone, "account has been deleted")
	}
	if a.IsBlocked() {
		return domain.E(domain.KindConflict, "account is already blocked")
	}
	return s.repo.Update(ctx, accountID, map[string]interface{}{
		dynamo.FieldStatus:        domain.StatusBlocked,
		dynamo.FieldBlockedAt:     time.Now().UTC(),
		dynamo.FieldBlockedReason: reason,
	})
}

func (s *service) Unblock(ctx context.Context, accountID string) error {
	a, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return err
	}
	if !a.IsBlocked() {
		return domain.E(domain.KindConflict, "account is not blocked")
	}
	return s.repo.Update(ctx, accountID, map[string]interface{}{
		dynamo.FieldStatus:        domain.StatusActive,
		dynamo.FieldBlockedReason: "",
	})
}

// Delete soft-deletes the account. There is no path back from deleted.
func (s *service) Delete(ctx context.Context, accountID, reason string) error {
	a, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return err
	}
	if a.IsDeleted() {
		return domain.E(domain.KindConflict, "account is already deleted")
	}
	return s.repo.Update(ctx, accountID, map[string]interface{}{
		dynamo.FieldStatus:         domain.StatusDeleted,
		dynamo.FieldDeletedAt:      time.Now().UTC(),
		dynamo.FieldDeletionReason: reason,
	})
}

func (s *service) MarkInReview(ctx context.Context, accountID string) error {
	a, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return err
	}
	if a.IsDeleted() {
		return domain.E(domain.KindGone, "account has been deleted")
	}
	return s.repo.Update(ctx, accountID, map[string]interface{}{
		dynamo.FieldStatus: domain.StatusInReview,
	})
}
