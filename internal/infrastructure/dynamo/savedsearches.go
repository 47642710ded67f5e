package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/gojo-homes/api/internal/domain"
)

// SavedSearchRepo provides typed DynamoDB operations for the saved-searches table.
type SavedSearchRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSavedSearchRepo(client *dynamodb.Client, tableName string) *SavedSearchRepo {
	return &SavedSearchRepo{client: client, tableName: tableName}
}

func (r *SavedSearchRepo) Put(ctx context.Context, s *domain.SavedSearch) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal saved search: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *SavedSearchRepo) Get(ctx context.Context, searchID string) (*domain.SavedSearch, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("search_id", searchID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("saved search %s: %w", searchID, domain.ErrNotFound)
	}
	var s domain.SavedSearch
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByUser returns all saved searches owned by the given user via the
// user_id GSI.
func (r *SavedSearchRepo) ListByUser(ctx context.Context, userID string) ([]domain.SavedSearch, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	var searches []domain.SavedSearch
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &searches); err != nil {
		return nil, err
	}
	return searches, nil
}

// ListImmediateAlerts returns every search with alerts enabled and the
// immediate frequency tier, filtered server-side on the alert_frequency GSI.
func (r *SavedSearchRepo) ListImmediateAlerts(ctx context.Context) ([]domain.SavedSearch, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("alert_frequency-index"),
		KeyConditionExpression: aws.String("alert_frequency = :freq"),
		FilterExpression:       aws.String("alert_enabled = :t"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":freq": &types.AttributeValueMemberS{Value: domain.FrequencyImmediate},
			":t":    &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		return nil, err
	}
	var searches []domain.SavedSearch
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &searches); err != nil {
		return nil, err
	}
	return searches, nil
}

func (r *SavedSearchRepo) Update(ctx context.Context, searchID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("search_id", searchID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *SavedSearchRepo) Delete(ctx context.Context, searchID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("search_id", searchID),
	})
	return err
}
