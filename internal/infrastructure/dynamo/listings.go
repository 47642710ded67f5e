package dynamo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/gojo-homes/api/internal/domain"
)

// ListingRepo provides typed DynamoDB operations for the listings table.
type ListingRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewListingRepo(client *dynamodb.Client, tableName string) *ListingRepo {
	return &ListingRepo{client: client, tableName: tableName}
}

func (r *ListingRepo) Put(ctx context.Context, l *domain.Listing) error {
	item, err := attributevalue.MarshalMap(l)
	if err != nil {
		return fmt.Errorf("marshal listing: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// Get reads the canonical persisted listing document, including the nested
// location and specification blocks.
func (r *ListingRepo) Get(ctx context.Context, listingID string) (*domain.Listing, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("listing_id", listingID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("listing %s: %w", listingID, domain.ErrNotFound)
	}
	var l domain.Listing
	if err := attributevalue.UnmarshalMap(out.Item, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ListingRepo) Update(ctx context.Context, listingID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("listing_id", listingID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *ListingRepo) Delete(ctx context.Context, listingID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("listing_id", listingID),
	})
	return err
}

// QueryActive returns active listings matching the browse filter, newest
// first, via the status-created_at GSI.
func (r *ListingRepo) QueryActive(ctx context.Context, filter domain.ListingFilter, limit int32) ([]domain.Listing, error) {
	names := map[string]string{"#st": "status"}
	values := map[string]types.AttributeValue{
		":st": &types.AttributeValueMemberS{Value: domain.ListingStatusActive},
	}

	var conds []string
	if filter.Type != "" {
		names["#ty"] = "type"
		values[":ty"] = &types.AttributeValueMemberS{Value: filter.Type}
		conds = append(conds, "#ty = :ty")
	}
	if filter.Purpose != "" {
		values[":pu"] = &types.AttributeValueMemberS{Value: filter.Purpose}
		conds = append(conds, "purpose = :pu")
	}
	if filter.City != "" {
		names["#loc"] = "location"
		values[":ci"] = &types.AttributeValueMemberS{Value: filter.City}
		conds = append(conds, "contains(#loc.city, :ci)")
	}
	if filter.MinPrice != nil {
		values[":minp"] = numberAV(*filter.MinPrice)
		conds = append(conds, "price >= :minp")
	}
	if filter.MaxPrice != nil {
		values[":maxp"] = numberAV(*filter.MaxPrice)
		conds = append(conds, "price <= :maxp")
	}
	if filter.MinBedrooms != nil {
		names["#sp"] = "specifications"
		values[":minb"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", *filter.MinBedrooms)}
		conds = append(conds, "#sp.bedrooms >= :minb")
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("status-created_at-index"),
		KeyConditionExpression:    aws.String("#st = :st"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ScanIndexForward:          aws.Bool(false),
		Limit:                     aws.Int32(limit),
	}
	if len(conds) > 0 {
		input.FilterExpression = aws.String(strings.Join(conds, " AND "))
	}

	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, err
	}
	var listings []domain.Listing
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// ListByAgent returns all listings created by the given agent, any status.
func (r *ListingRepo) ListByAgent(ctx context.Context, agentID string) ([]domain.Listing, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("created_by-index"),
		KeyConditionExpression: aws.String("created_by = :a"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":a": &types.AttributeValueMemberS{Value: agentID},
		},
	})
	if err != nil {
		return nil, err
	}
	var listings []domain.Listing
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func numberAV(f float64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", f), "0"), ".")}
}
