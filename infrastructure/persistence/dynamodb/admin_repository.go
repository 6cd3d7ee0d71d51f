package dynamodb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"coursehub/application/ports"
	"coursehub/domain/admins"
	pkgerrors "coursehub/pkg/errors"
)

const (
	adminPartition = "ADMIN"
	adminSKPrefix  = "ADMIN#"
)

// AdminRepository implements ports.AdminRepository using DynamoDB
type AdminRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *AdminRepository {
	return &AdminRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// adminItem represents the DynamoDB item structure for an admin
type adminItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	admins.Admin
}

func adminKey(email string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: adminPartition},
		"SK": &types.AttributeValueMemberS{Value: adminSKPrefix + email},
	}
}

// Create stores a new admin; the conditional write rejects duplicates
func (r *AdminRepository) Create(ctx context.Context, admin *admins.Admin) error {
	if err := admin.Validate(); err != nil {
		return err
	}

	item := adminItem{
		PK:         adminPartition,
		SK:         adminSKPrefix + admin.Email,
		EntityType: "ADMIN",
		Admin:      *admin,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal admin", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return pkgerrors.NewConflictError("email already registered")
		}
		r.logger.Error("Failed to create admin",
			zap.Error(err),
			zap.String("email", admin.Email),
		)
		return pkgerrors.NewDatabaseError("create admin", err)
	}

	return nil
}

// FindByEmail retrieves an admin by email
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*admins.Admin, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       adminKey(email),
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("find admin", err)
	}

	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("admin")
	}

	var item adminItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal admin", err)
	}

	admin := item.Admin
	return &admin, nil
}

// UpdatePassword replaces the stored credential hash
func (r *AdminRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 adminKey(email),
		UpdateExpression:    aws.String("SET PasswordHash = :hash"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":hash": &types.AttributeValueMemberS{Value: passwordHash},
		},
	}

	if _, err := r.client.UpdateItem(ctx, input); err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return pkgerrors.NewNotFoundError("admin")
		}
		return pkgerrors.NewDatabaseError("update password", err)
	}

	return nil
}

var _ ports.AdminRepository = (*AdminRepository)(nil)
