package store

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Weruh/kujuana/models"
)

// InitializeDynamoDBClient initializes the DynamoDB client
func InitializeDynamoDBClient() *dynamodb.Client {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

// DynamoClient wraps the generic item operations shared by the
// DynamoDB-backed stores below.
type DynamoClient struct {
	Client *dynamodb.Client
}

func (d *DynamoClient) putItem(ctx context.Context, table string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}
	_, err = d.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &table,
		Item:      marshaled,
	})
	if err != nil {
		return fmt.Errorf("failed to put item in table '%s': %w", table, err)
	}
	return nil
}

func (d *DynamoClient) getItem(ctx context.Context, table string, key map[string]types.AttributeValue, out interface{}) error {
	output, err := d.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &table,
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to get item from table '%s': %w", table, err)
	}
	if len(output.Item) == 0 {
		return ErrNotFound
	}
	if err := attributevalue.UnmarshalMap(output.Item, out); err != nil {
		return fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return nil
}

// scanAll pages through a full table scan, optionally filtered, and
// unmarshals every item into out (a pointer to a slice of structs).
func (d *DynamoClient) scanAll(ctx context.Context, input *dynamodb.ScanInput, out interface{}) error {
	var items []map[string]types.AttributeValue
	for {
		output, err := d.Client.Scan(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to scan table '%s': %w", *input.TableName, err)
		}
		items = append(items, output.Items...)
		if output.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = output.LastEvaluatedKey
	}
	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("failed to unmarshal scan result: %w", err)
	}
	return nil
}

func (d *DynamoClient) query(ctx context.Context, input *dynamodb.QueryInput, out interface{}) error {
	var items []map[string]types.AttributeValue
	for {
		output, err := d.Client.Query(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to query table '%s': %w", *input.TableName, err)
		}
		items = append(items, output.Items...)
		if output.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = output.LastEvaluatedKey
	}
	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("failed to unmarshal query result: %w", err)
	}
	return nil
}

// DynamoProfiles is the production ProfileStore. The table is keyed by
// the profile id; email lookups use a filtered scan, matching the flat
// linear lookups of the reference system.
type DynamoProfiles struct {
	DynamoClient
}

func NewDynamoProfiles(client *dynamodb.Client) *DynamoProfiles {
	return &DynamoProfiles{DynamoClient{Client: client}}
}

func (s *DynamoProfiles) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	var profile models.UserProfile
	key := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
	if err := s.getItem(ctx, models.UserProfilesTable, key, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *DynamoProfiles) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	var profiles []models.UserProfile
	input := &dynamodb.ScanInput{
		TableName:        aws.String(models.UserProfilesTable),
		FilterExpression: aws.String("email = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
	}
	if err := s.scanAll(ctx, input, &profiles); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, ErrNotFound
	}
	return &profiles[0], nil
}

func (s *DynamoProfiles) List(ctx context.Context) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	input := &dynamodb.ScanInput{TableName: aws.String(models.UserProfilesTable)}
	if err := s.scanAll(ctx, input, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *DynamoProfiles) Put(ctx context.Context, profile models.UserProfile) error {
	return s.putItem(ctx, models.UserProfilesTable, profile)
}

// DynamoSwipes is the production SwipeLedger. The table is keyed by
// swiperId (partition) and id (sort), so per-swiper reads are queries.
type DynamoSwipes struct {
	DynamoClient
}

func NewDynamoSwipes(client *dynamodb.Client) *DynamoSwipes {
	return &DynamoSwipes{DynamoClient{Client: client}}
}

func (s *DynamoSwipes) Append(ctx context.Context, event models.SwipeEvent) error {
	return s.putItem(ctx, models.SwipesTable, event)
}

func (s *DynamoSwipes) BySwiper(ctx context.Context, swiperID string) ([]models.SwipeEvent, error) {
	var events []models.SwipeEvent
	input := &dynamodb.QueryInput{
		TableName:              aws.String(models.SwipesTable),
		KeyConditionExpression: aws.String("swiperId = :swiperId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":swiperId": &types.AttributeValueMemberS{Value: swiperID},
		},
	}
	if err := s.query(ctx, input, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *DynamoSwipes) HasLike(ctx context.Context, swiperID, targetID string) (bool, error) {
	var events []models.SwipeEvent
	input := &dynamodb.QueryInput{
		TableName:              aws.String(models.SwipesTable),
		KeyConditionExpression: aws.String("swiperId = :swiperId"),
		FilterExpression:       aws.String("targetId = :targetId AND decision = :decision"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":swiperId": &types.AttributeValueMemberS{Value: swiperID},
			":targetId": &types.AttributeValueMemberS{Value: targetID},
			":decision": &types.AttributeValueMemberS{Value: string(models.DecisionLike)},
		},
	}
	if err := s.query(ctx, input, &events); err != nil {
		return false, err
	}
	return len(events) > 0, nil
}

// DynamoThreads is the production ThreadStore. The table is keyed by
// pairKey so the unordered-pair uniqueness invariant holds at the
// storage layer; id and member lookups use filtered scans.
type DynamoThreads struct {
	DynamoClient
}

func NewDynamoThreads(client *dynamodb.Client) *DynamoThreads {
	return &DynamoThreads{DynamoClient{Client: client}}
}

func (s *DynamoThreads) GetByID(ctx context.Context, id string) (*models.MatchThread, error) {
	var threads []models.MatchThread
	input := &dynamodb.ScanInput{
		TableName:        aws.String(models.MatchThreadsTable),
		FilterExpression: aws.String("id = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: id},
		},
	}
	if err := s.scanAll(ctx, input, &threads); err != nil {
		return nil, err
	}
	if len(threads) == 0 {
		return nil, ErrNotFound
	}
	return &threads[0], nil
}

func (s *DynamoThreads) FindByMembers(ctx context.Context, a, b string) (*models.MatchThread, error) {
	var thread models.MatchThread
	key := map[string]types.AttributeValue{
		"pairKey": &types.AttributeValueMemberS{Value: models.PairKeyFor(a, b)},
	}
	if err := s.getItem(ctx, models.MatchThreadsTable, key, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

func (s *DynamoThreads) ListByMember(ctx context.Context, userID string) ([]models.MatchThread, error) {
	var threads []models.MatchThread
	input := &dynamodb.ScanInput{
		TableName:        aws.String(models.MatchThreadsTable),
		FilterExpression: aws.String("contains(members, :userId)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
	}
	if err := s.scanAll(ctx, input, &threads); err != nil {
		return nil, err
	}
	return threads, nil
}

func (s *DynamoThreads) Put(ctx context.Context, thread models.MatchThread) error {
	return s.putItem(ctx, models.MatchThreadsTable, thread)
}
