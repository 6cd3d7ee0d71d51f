// Package dynamodb implements the repositories over a single DynamoDB
// table. Course items live under one partition so that catalog queries,
// aggregates and rankings read the whole collection in key order; filter
// matching and relevance ranking run client-side in the domain layer.
package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"coursehub/application/ports"
	"coursehub/domain/courses"
	"coursehub/pkg/common"
	pkgerrors "coursehub/pkg/errors"
)

const (
	coursePartition = "COURSE"
	courseSKPrefix  = "COURSE#"
)

// CourseRepository implements ports.CourseRepository using DynamoDB
type CourseRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *CourseRepository {
	return &CourseRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// courseItem represents the DynamoDB item structure for a course
type courseItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	courses.Course
}

func courseKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: coursePartition},
		"SK": &types.AttributeValueMemberS{Value: courseSKPrefix + id},
	}
}

// FindByID retrieves a course by its natural key
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*courses.Course, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       courseKey(id),
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("find course", err)
	}

	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("course")
	}

	var item courseItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal course", err)
	}

	course := item.Course
	return &course, nil
}

// Query returns one page of matching courses plus the total match count
func (r *CourseRepository) Query(ctx context.Context, filter courses.Filter, page common.PaginationParams) ([]*courses.Course, int, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	matched := courses.ApplyFilter(all, filter)
	total := len(matched)
	page = page.Clamp()

	r.logger.Debug("Course query executed",
		zap.Int("scanned", len(all)),
		zap.Int("matched", total),
		zap.Int("page", page.Page),
		zap.Int("limit", page.Limit),
	)

	return courses.Page(matched, page.Page, page.Limit), total, nil
}

// Upsert replaces the record with the same natural key or inserts a new
// one; both paths run full validation.
func (r *CourseRepository) Upsert(ctx context.Context, course *courses.Course) (*courses.Course, error) {
	if err := course.Validate(); err != nil {
		return nil, err
	}

	stored := *course

	// Preserve CreatedAt across replacements
	existing, err := r.FindByID(ctx, course.UniqueID)
	switch {
	case err == nil:
		stored.CreatedAt = existing.CreatedAt
	case pkgerrors.IsNotFound(err):
		stored.CreatedAt = time.Time{}
	default:
		return nil, err
	}
	stored.Touch(time.Now())

	item := courseItem{
		PK:         coursePartition,
		SK:         courseSKPrefix + stored.UniqueID,
		EntityType: "COURSE",
		Course:     stored,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("marshal course", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to upsert course",
			zap.Error(err),
			zap.String("uniqueId", stored.UniqueID),
		)
		return nil, pkgerrors.NewDatabaseError("upsert course", err)
	}

	r.logger.Debug("Course upserted",
		zap.String("uniqueId", stored.UniqueID),
		zap.String("name", stored.Name),
	)

	return &stored, nil
}

// DistinctValues enumerates the deduplicated sorted values of a field
func (r *CourseRepository) DistinctValues(ctx context.Context, field string) ([]string, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	values, ok := courses.DistinctField(all, field)
	if !ok {
		return nil, pkgerrors.NewValidationError("unsupported distinct field: " + field)
	}
	return values, nil
}

// Statistics computes the collection aggregates
func (r *CourseRepository) Statistics(ctx context.Context) (courses.Statistics, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return courses.Statistics{}, err
	}
	return courses.Aggregate(all), nil
}

// PopularityRank returns the ten most popular courses
func (r *CourseRepository) PopularityRank(ctx context.Context) ([]*courses.Course, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return courses.RankByPopularity(all), nil
}

// FindByTopics returns up to limit courses matching any topic
func (r *CourseRepository) FindByTopics(ctx context.Context, topics []string, limit int) ([]*courses.Course, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*courses.Course, 0)
	for _, c := range all {
		if courses.MatchesAnyTopic(c, topics) {
			matched = append(matched, c)
			if limit > 0 && len(matched) == limit {
				break
			}
		}
	}
	return matched, nil
}

// loadAll reads the whole course partition, following pagination
func (r *CourseRepository) loadAll(ctx context.Context) ([]*courses.Course, error) {
	all := make([]*courses.Course, 0)

	var startKey map[string]types.AttributeValue
	for {
		input := &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: coursePartition},
				":sk": &types.AttributeValueMemberS{Value: courseSKPrefix},
			},
			ExclusiveStartKey: startKey,
		}

		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query courses", err)
		}

		for _, raw := range result.Items {
			var item courseItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("Failed to unmarshal course item, skipping", zap.Error(err))
				continue
			}
			course := item.Course
			all = append(all, &course)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return all, nil
}

var _ ports.CourseRepository = (*CourseRepository)(nil)
