package account

import (
	"context"
	"testing"

	"github.com/auth-flow-api/internal/domain"
	"github.com/auth-flow-api/internal/infrastructure/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAccountStore struct{ mock.Mock }

func (m *mockAccountStore) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAccountStore) Update(ctx context.Context, accountID string, updates map[string]interface{}) error {
	return m.Called(ctx, accountID, updates).Error(0)
}
func (m *mockAccountStore) ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Account, string, error) {
	args := m.Called(ctx, limit, cursor)
	return args.Get(0).([]domain.Account), args.String(1), args.Error(2)
}

func strPtr(s string) *string { return &s }

func TestUpdate_OnlyProvidedFields(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("Update", mock.Anything, "a1", mock.MatchedBy(func(m map[string]interface{}) bool {
		_, hasName := m[dynamo.FieldName]
		_, hasImage := m[dynamo.FieldProfileImage]
		return hasName && !hasImage
	})).Return(nil)
	repo.On("Get", mock.Anything, "a1").Return(&domain.Account{AccountID: "a1", Name: "Grace"}, nil)

	svc := NewService(repo)
	a, err := svc.Update(context.Background(), "a1", domain.UpdateAccountRequest{Name: strPtr("Grace")})

	require.NoError(t, err)
	assert.Equal(t, "Grace", a.Name)
	repo.AssertExpectations(t)
}

func TestUpdate_NoFields_SkipsWrite(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("Get", mock.Anything, "a1").Return(&domain.Account{AccountID: "a1"}, nil)

	svc := NewService(repo)
	_, err := svc.Update(context.Background(), "a1", domain.UpdateAccountRequest{})

	require.NoError(t, err)
	repo.AssertNotCalled(t, "Update")
}

func TestBlock_HappyPath(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("Get", mock.Anything, "a1").Return(&domain.Account{
		AccountID: "a1", Status: domain.StatusActive,
	}, nil)
	repo.On("Update", mock.Anything, "a1", mock.MatchedBy(func(m map[string]interface{}) bool {
		return m[dynamo.FieldStatus] == domain.StatusBlocked && m[dynamo.FieldBlockedReason] == "abuse"
	})).Return(nil)

	svc := NewService(repo)
	require.NoError(t, svc.Block(context.Background(), "a1", "abuse"))
	repo.AssertExpectations(t)
}

func TestBlock_AlreadyBlocked_Conflict(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("Get", mock.Anything, "a1").Return(&domain.Account{
		AccountID: "a1", Status: domain.StatusBlocked,
	}, nil)

	svc := NewService(repo)
	err := svc.Block(context.Background(), "a1", "abuse")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestBlock_DeletedAccount_Gone(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("Get", mock.Anything, "a1").Return(&domain.Account{
		AccountID: "a1", Status: domain.StatusDeleted,
	}, nil)

	svc := NewService(repo)
	err := svc.Block(context.Background(), "a1", "abuse")
	assert.Equal(t, domain.KindGone, domain.KindOf(err))
}

func TestUnblock_NotBlocked_Conflict(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("Get", mock.Anything, "a1").Return(&domain.Account{
		AccountID: "a1", Status: domain.StatusActive,
	}, nil)

	svc := NewService(repo)
	err := svc.Unblock(context.Background(), "a1")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestDelete_SoftDeletes(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("Get", mock.Anything, "a1").Return(&domain.Account{
		AccountID: "a1", Status: domain.StatusActive,
	}, nil)
	repo.On("Update", mock.Anything, "a1", mock.MatchedBy(func(m map[string]interface{}) bool {
		_, hasDeletedAt := m[dynamo.FieldDeletedAt]
		return m[dynamo.FieldStatus] == domain.StatusDeleted && hasDeletedAt
	})).Return(nil)

	svc := NewService(repo)
	require.NoError(t, svc.Delete(context.Background(), "a1", "user request"))
	repo.AssertExpectations(t)
}

func TestDelete_AlreadyDeleted_Conflict(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("Get", mock.Anything, "a1").Return(&domain.Account{
		AccountID: "a1", Status: domain.StatusDeleted,
	}, nil)

	svc := NewService(repo)
	err := svc.Delete(context.Background(), "a1", "again")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestList_DefaultsLimit(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("ScanPage", mock.Anything, int32(50), "").Return([]domain.Account{}, "", nil)

	svc := NewService(repo)
	_, _, err := svc.List(context.Background(), 0, "")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
