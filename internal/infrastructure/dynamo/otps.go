package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/auth-flow-api/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// otpClient is the slice of the DynamoDB API the otps table needs.
type otpClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// OTPRepo manages one-time codes. PK: account_id, SK: purpose. The
// composite key itself enforces at most one code per (account, purpose);
// Put is therefore a replace, never a second copy.
type OTPRepo struct {
	client    otpClient
	tableName string
}

func NewOTPRepo(client otpClient, tableName string) *OTPRepo {
	return &OTPRepo{client: client, tableName: tableName}
}

// Put upserts the code for (account, purpose), overwriting any prior one.
func (r *OTPRepo) Put(ctx context.Context, o *domain.OTP) error {
	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return fmt.Errorf("marshal otp: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// FindValid returns the record for (account, purpose) only when it has not
// expired. An expired record still occupies the slot in storage but is
// reported as absent here.
func (r *OTPRepo) FindValid(ctx context.Context, accountID, purpose string) (*domain.OTP, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("account_id", accountID, "purpose", purpose),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, domain.E(domain.KindNotFound, "otp not found")
	}
	var o domain.OTP
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, err
	}
	if o.Expired(time.Now()) {
		return nil, domain.E(domain.KindNotFound, "otp not found")
	}
	return &o, nil
}

// VerifyAndConsume deletes the record for (account, purpose) in a single
// conditional operation that only succeeds when the supplied code matches
// and the record has not expired. Two concurrent calls with the same valid
// code therefore yield exactly one success. Wrong code, expired, and absent
// all come back as the same not-found result.
func (r *OTPRepo) VerifyAndConsume(ctx context.Context, accountID, purpose, code string) (*domain.OTP, error) {
	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 compositeKey("account_id", accountID, "purpose", purpose),
		ConditionExpression: aws.String("code = :c AND expires_at > :now"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c":   &types.AttributeValueMemberS{Value: code},
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(time.Now().Unix(), 10)},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, domain.E(domain.KindNotFound, "otp not found")
		}
		return nil, err
	}
	var o domain.OTP
	if err := attributevalue.UnmarshalMap(out.Attributes, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Delete removes the record for (account, purpose) unconditionally.
func (r *OTPRepo) Delete(ctx context.Context, accountID, purpose string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("account_id", accountID, "purpose", purpose),
	})
	return err
}
