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

// SiteVisitRepo provides typed DynamoDB operations for the site-visits table.
type SiteVisitRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSiteVisitRepo(client *dynamodb.Client, tableName string) *SiteVisitRepo {
	return &SiteVisitRepo{client: client, tableName: tableName}
}

func (r *SiteVisitRepo) Put(ctx context.Context, v *domain.SiteVisit) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal site visit: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *SiteVisitRepo) Get(ctx context.Context, visitID string) (*domain.SiteVisit, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("visit_id", visitID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("site visit %s: %w", visitID, domain.ErrNotFound)
	}
	var v domain.SiteVisit
	if err := attributevalue.UnmarshalMap(out.Item, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *SiteVisitRepo) ListByUser(ctx context.Context, userID string) ([]domain.SiteVisit, error) {
	return r.queryGSI(ctx, "user_id-index", "user_id", userID)
}

func (r *SiteVisitRepo) ListByAgent(ctx context.Context, agentID string) ([]domain.SiteVisit, error) {
	return r.queryGSI(ctx, "agent_id-index", "agent_id", agentID)
}

func (r *SiteVisitRepo) UpdateStatus(ctx context.Context, visitID, status string) error {
	ue, err := buildUpdateExpr(map[string]interface{}{
		fieldStatus:  status,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("visit_id", visitID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *SiteVisitRepo) queryGSI(ctx context.Context, index, attr, value string) ([]domain.SiteVisit, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
	})
	if err != nil {
		return nil, err
	}
	var visits []domain.SiteVisit
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &visits); err != nil {
		return nil, err
	}
	return visits, nil
}
