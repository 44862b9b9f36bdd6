package dynamodb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
	"github.com/zaheyak/Content-Studio-sub000/pkg/observability"
)

const entityTypeFormat = "CONTENT_FORMAT"

// API is the subset of the DynamoDB client the repository uses
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ContentRepository stores lesson content formats in a single table. Each
// format is one item keyed LESSON#<lesson> / FORMAT#<type>. Mind maps are
// stored as native maps, the other formats as their JSON data.
type ContentRepository struct {
	client    API
	tableName string
	metrics   *observability.Collector
	logger    *zap.Logger
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(client API, tableName string, metrics *observability.Collector, logger *zap.Logger) *ContentRepository {
	return &ContentRepository{
		client:    client,
		tableName: tableName,
		metrics:   metrics,
		logger:    logger,
	}
}

// formatItem represents the DynamoDB item structure for a content format
type formatItem struct {
	PK         string               `dynamodbav:"PK"`
	SK         string               `dynamodbav:"SK"`
	EntityType string               `dynamodbav:"EntityType"`
	LessonID   string               `dynamodbav:"LessonID"`
	FormatType string               `dynamodbav:"FormatType"`
	Method     string               `dynamodbav:"Method"`
	Completed  bool                 `dynamodbav:"Completed"`
	MindMap    *content.MindMapData `dynamodbav:"MindMap,omitempty"`
	Data       string               `dynamodbav:"Data,omitempty"`
	UpdatedAt  string               `dynamodbav:"UpdatedAt"`
}

func lessonKey(lessonID valueobjects.LessonID) string {
	return "LESSON#" + lessonID.String()
}

func formatKey(kind content.Kind) string {
	return "FORMAT#" + string(kind)
}

func (r *ContentRepository) key(lessonID valueobjects.LessonID, kind content.Kind) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: lessonKey(lessonID)},
		"SK": &types.AttributeValueMemberS{Value: formatKey(kind)},
	}
}

// SaveFormat creates or replaces a format item
func (r *ContentRepository) SaveFormat(ctx context.Context, lessonID valueobjects.LessonID, format content.Format) (err error) {
	defer r.observe("PutItem", time.Now(), &err)

	item, err := toItem(lessonID, format)
	if err != nil {
		return pkgerrors.ErrInvalidPayload.New().WithCause(err)
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal content format: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("PutItem", err)
	}

	r.logger.Debug("Content format saved",
		zap.String("lessonID", lessonID.String()),
		zap.String("type", string(format.Kind())),
		zap.Bool("completed", item.Completed),
	)
	return nil
}

// GetFormat loads one format of a lesson
func (r *ContentRepository) GetFormat(ctx context.Context, lessonID valueobjects.LessonID, kind content.Kind) (f content.Format, err error) {
	defer r.observe("GetItem", time.Now(), &err)

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(lessonID, kind),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("GetItem", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("%s content of lesson %s", kind, lessonID))
	}

	var item formatItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content format: %w", err)
	}
	return fromItem(item)
}

// ListFormats loads every format of a lesson in sort key order
func (r *ContentRepository) ListFormats(ctx context.Context, lessonID valueobjects.LessonID) (formats []content.Format, err error) {
	defer r.observe("Query", time.Now(), &err)

	keyExpr := expression.Key("PK").Equal(expression.Value(lessonKey(lessonID))).
		And(expression.Key("SK").BeginsWith("FORMAT#"))
	filterExpr := expression.Name("EntityType").Equal(expression.Value(entityTypeFormat))

	expr, err := expression.NewBuilder().
		WithKeyCondition(keyExpr).
		WithFilter(filterExpr).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	formats = make([]content.Format, 0, len(content.Kinds))
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("Query", err)
		}
		for _, raw := range page.Items {
			var item formatItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("Failed to parse content format item", zap.Error(err))
				continue
			}
			f, err := fromItem(item)
			if err != nil {
				r.logger.Warn("Skipping unreadable content format",
					zap.String("lessonID", lessonID.String()),
					zap.String("type", item.FormatType),
					zap.Error(err),
				)
				continue
			}
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// DeleteFormat removes a format item
func (r *ContentRepository) DeleteFormat(ctx context.Context, lessonID valueobjects.LessonID, kind content.Kind) (err error) {
	defer r.observe("DeleteItem", time.Now(), &err)

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(lessonID, kind),
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("DeleteItem", err)
	}
	return nil
}

func (r *ContentRepository) observe(op string, start time.Time, err *error) {
	if r.metrics == nil {
		return
	}
	var opErr error
	if err != nil && *err != nil && !pkgerrors.IsNotFound(*err) {
		opErr = *err
	}
	r.metrics.RecordDBOperation(op, r.tableName, time.Since(start), opErr)
}

func toItem(lessonID valueobjects.LessonID, f content.Format) (formatItem, error) {
	item := formatItem{
		PK:         lessonKey(lessonID),
		SK:         formatKey(f.Kind()),
		EntityType: entityTypeFormat,
		LessonID:   lessonID.String(),
		FormatType: string(f.Kind()),
		Method:     string(f.CreationMethod()),
		Completed:  f.Completed(),
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	if mm, ok := f.(content.MindMap); ok {
		data := mm.Data
		item.MindMap = &data
		return item, nil
	}

	env, err := content.ToEnvelope(f)
	if err != nil {
		return formatItem{}, err
	}
	item.Data = string(env.Data)
	return item, nil
}

func fromItem(item formatItem) (content.Format, error) {
	kind, err := content.ParseKind(strings.TrimSpace(item.FormatType))
	if err != nil {
		return nil, err
	}

	if kind == content.KindMindMap {
		data := content.EmptyMindMapData()
		if item.MindMap != nil {
			data = *item.MindMap
			if data.Nodes == nil {
				data.Nodes = []content.NodeData{}
			}
			if data.Connections == nil {
				data.Connections = []content.ConnectionData{}
			}
		}
		return content.MindMap{Method: content.Method(item.Method), Data: data}, nil
	}

	return content.FromEnvelope(content.Envelope{
		Type:      kind,
		Method:    content.Method(item.Method),
		Data:      json.RawMessage(item.Data),
		Completed: item.Completed,
	})
}
