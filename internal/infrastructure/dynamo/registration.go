package dynamo

import (
	"context"
	"fmt"

	"github.com/auth-flow-api/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// RegistrationRepo owns the signup write boundary: a new account and its
// signup OTP are committed in one TransactWriteItems call, so a pending
// account never exists without its OTP.
type RegistrationRepo struct {
	client        *dynamodb.Client
	accountsTable string
	otpsTable     string
}

func NewRegistrationRepo(client *dynamodb.Client, accountsTable, otpsTable string) *RegistrationRepo {
	return &RegistrationRepo{client: client, accountsTable: accountsTable, otpsTable: otpsTable}
}

// Create writes account and otp atomically. The account put is conditioned
// on the id not existing; if either write fails, neither is applied.
func (r *RegistrationRepo) Create(ctx context.Context, a *domain.Account, o *domain.OTP) error {
	accountItem, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}
	otpItem, err := attributevalue.MarshalMap(o)
	if err != nil {
		return fmt.Errorf("marshal otp: %w", err)
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.accountsTable),
					Item:                accountItem,
					ConditionExpression: aws.String("attribute_not_exists(account_id)"),
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(r.otpsTable),
					Item:      otpItem,
				},
			},
		},
	})
	return err
}

// Rollback removes both writes of a prior Create in one transaction. It is
// the compensation step when a later, non-storage step of signup fails.
func (r *RegistrationRepo) Rollback(ctx context.Context, accountID, purpose string) error {
	_, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Delete: &types.Delete{
					TableName: aws.String(r.accountsTable),
					Key:       strKey("account_id", accountID),
				},
			},
			{
				Delete: &types.Delete{
					TableName: aws.String(r.otpsTable),
					Key:       compositeKey("account_id", accountID, "purpose", purpose),
				},
			},
		},
	})
	return err
}
