// Package dynamodb implements the record store adapter over a single
// DynamoDB table. Both flat collections share the table: confirmed
// bookmarks under SK prefix BOOKMARK#, temporary ones under TEMP#, all
// partitioned by owner. Keying by owner makes the ownership fold
// structural: a foreign record simply is not in the caller's partition.
package dynamodb

import (
	"context"
	"fmt"

	"markbase-backend/application/ports"
	"markbase-backend/domain/bookmark"
	"markbase-backend/domain/pathtree"
	"markbase-backend/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Collection key prefixes within the shared table.
const (
	BookmarkPrefix = "BOOKMARK#"
	TempPrefix     = "TEMP#"
)

// BookmarkRepository implements ports.BookmarkRepository for one logical
// collection, selected by the SK prefix.
type BookmarkRepository struct {
	client     *dynamodb.Client
	tableName  string
	skPrefix   string
	entityType string
	logger     *zap.Logger
}

// NewBookmarkRepository creates the repository for the confirmed collection.
func NewBookmarkRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.BookmarkRepository {
	return &BookmarkRepository{
		client:     client,
		tableName:  tableName,
		skPrefix:   BookmarkPrefix,
		entityType: "BOOKMARK",
		logger:     logger,
	}
}

// NewTempBookmarkRepository creates the repository for the temporary collection.
func NewTempBookmarkRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.BookmarkRepository {
	return &BookmarkRepository{
		client:     client,
		tableName:  tableName,
		skPrefix:   TempPrefix,
		entityType: "TEMP_BOOKMARK",
		logger:     logger,
	}
}

// bookmarkItem represents the DynamoDB item structure for a bookmark
type bookmarkItem struct {
	PK         string   `dynamodbav:"PK"`
	SK         string   `dynamodbav:"SK"`
	EntityType string   `dynamodbav:"EntityType"`
	BookmarkID string   `dynamodbav:"BookmarkID"`
	OwnerID    string   `dynamodbav:"OwnerID"`
	Path       string   `dynamodbav:"Path,omitempty"`
	URL        string   `dynamodbav:"URL,omitempty"`
	Tags       []string `dynamodbav:"Tags,omitempty"`
	Notes      string   `dynamodbav:"Notes,omitempty"`
	CreatedAt  string   `dynamodbav:"CreatedAt,omitempty"`
	UpdatedAt  string   `dynamodbav:"UpdatedAt"`
}

func (i bookmarkItem) toDomain() bookmark.Bookmark {
	return bookmark.Bookmark{
		ID:      i.BookmarkID,
		OwnerID: i.OwnerID,
		Path:    i.Path,
		URL:     i.URL,
		Tags:    i.Tags,
		Notes:   i.Notes,
	}
}

func userKey(ownerID string) string {
	return fmt.Sprintf("USER#%s", ownerID)
}

func (r *BookmarkRepository) sortKey(id string) string {
	return r.skPrefix + id
}

// ListByOwner retrieves all records in the owner's partition for this
// collection.
func (r *BookmarkRepository) ListByOwner(ctx context.Context, ownerID string) ([]bookmark.Bookmark, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(userKey(ownerID))).
		And(expression.Key("SK").BeginsWith(r.skPrefix))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	records := make([]bookmark.Bookmark, 0)
	var startKey map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query bookmarks: %w", err)
		}

		for _, raw := range result.Items {
			var item bookmarkItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("Failed to unmarshal bookmark item", zap.Error(err))
				continue
			}
			records = append(records, item.toDomain())
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return records, nil
}

// ListPathsByOwner retrieves just the path attribute of the owner's records,
// skipping records without one.
func (r *BookmarkRepository) ListPathsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(userKey(ownerID))).
		And(expression.Key("SK").BeginsWith(r.skPrefix))
	proj := expression.NamesList(expression.Name("Path"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).WithProjection(proj).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	paths := make([]string, 0)
	var startKey map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ProjectionExpression:      expr.Projection(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query bookmark paths: %w", err)
		}

		for _, raw := range result.Items {
			var item struct {
				Path string `dynamodbav:"Path"`
			}
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("Failed to unmarshal path projection", zap.Error(err))
				continue
			}
			if item.Path != "" {
				paths = append(paths, item.Path)
			}
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return paths, nil
}

// Get retrieves one record from the owner's partition. Absent records,
// including records that belong to another owner, return (nil, nil).
func (r *BookmarkRepository) Get(ctx context.Context, ownerID, id string) (*bookmark.Bookmark, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userKey(ownerID)},
			"SK": &types.AttributeValueMemberS{Value: r.sortKey(id)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var item bookmarkItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookmark: %w", err)
	}
	bm := item.toDomain()
	return &bm, nil
}

// Put persists a record, assigning a new ID when the record has none.
func (r *BookmarkRepository) Put(ctx context.Context, bm bookmark.Bookmark) (string, error) {
	now := utils.NowRFC3339()

	item := bookmarkItem{
		EntityType: r.entityType,
		OwnerID:    bm.OwnerID,
		Path:       bm.Path,
		URL:        bm.URL,
		Tags:       bm.Tags,
		Notes:      bm.Notes,
		UpdatedAt:  now,
	}

	if bm.ID == "" {
		item.BookmarkID = uuid.New().String()
		item.CreatedAt = now
	} else {
		item.BookmarkID = bm.ID
	}
	item.PK = userKey(bm.OwnerID)
	item.SK = r.sortKey(item.BookmarkID)

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return "", fmt.Errorf("failed to marshal bookmark: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return "", fmt.Errorf("failed to put bookmark: %w", err)
	}

	r.logger.Debug("Persisted bookmark item",
		zap.String("ownerID", bm.OwnerID),
		zap.String("bookmarkID", item.BookmarkID),
	)
	return item.BookmarkID, nil
}

// Delete removes one record from the owner's partition.
func (r *BookmarkRepository) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userKey(ownerID)},
			"SK": &types.AttributeValueMemberS{Value: r.sortKey(id)},
		},
	}); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}

// DeleteRange selects every record whose path falls inside rng and removes
// the whole selection with a single TransactWriteItems call, so the batch
// commits all-or-nothing. DynamoDB caps a transaction at 100 items; a
// directory larger than that fails the transaction rather than deleting
// part of it.
func (r *BookmarkRepository) DeleteRange(ctx context.Context, ownerID string, rng pathtree.DirectoryRange) ([]string, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(userKey(ownerID))).
		And(expression.Key("SK").BeginsWith(r.skPrefix))
	filt := expression.Name("Path").GreaterThanEqual(expression.Value(rng.Lower)).
		And(expression.Name("Path").LessThan(expression.Value(rng.Upper)))
	proj := expression.NamesList(expression.Name("SK"), expression.Name("BookmarkID"))
	expr, err := expression.NewBuilder().
		WithKeyCondition(keyCond).
		WithFilter(filt).
		WithProjection(proj).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build range expression: %w", err)
	}

	type selected struct {
		SK         string `dynamodbav:"SK"`
		BookmarkID string `dynamodbav:"BookmarkID"`
	}

	var matches []selected
	var startKey map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ProjectionExpression:      expr.Projection(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query directory range: %w", err)
		}

		for _, raw := range result.Items {
			var sel selected
			if err := attributevalue.UnmarshalMap(raw, &sel); err != nil {
				r.logger.Warn("Failed to unmarshal range selection", zap.Error(err))
				continue
			}
			matches = append(matches, sel)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	if len(matches) == 0 {
		return []string{}, nil
	}

	transactItems := make([]types.TransactWriteItem, 0, len(matches))
	deleted := make([]string, 0, len(matches))
	for _, sel := range matches {
		transactItems = append(transactItems, types.TransactWriteItem{
			Delete: &types.Delete{
				TableName: aws.String(r.tableName),
				Key: map[string]types.AttributeValue{
					"PK": &types.AttributeValueMemberS{Value: userKey(ownerID)},
					"SK": &types.AttributeValueMemberS{Value: sel.SK},
				},
			},
		})
		deleted = append(deleted, sel.BookmarkID)
	}

	if _, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: transactItems,
	}); err != nil {
		return nil, fmt.Errorf("failed to commit directory delete: %w", err)
	}

	r.logger.Debug("Committed directory range delete",
		zap.String("ownerID", ownerID),
		zap.Int("count", len(deleted)),
	)
	return deleted, nil
}
