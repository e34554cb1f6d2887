package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/kyue26/emertgency-sub001/internal/domain/models"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/config"
	"github.com/kyue26/emertgency-sub001/pkg/utils"
	"go.uber.org/zap"
)

// DynamoAPI is the subset of *dynamodb.Client used by DynamoStore.
type DynamoAPI interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

const (
	activeDrillStateKey = "active_drill"
	tableActiveTimeout  = 2 * time.Minute
)

// NewDynamoClient builds a DynamoDB client. With an explicit endpoint (for
// DynamoDB Local) and no AWS credentials in the environment, static dummy
// credentials are used.
func NewDynamoClient(ctx context.Context, cfg config.DynamoConfig) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.Endpoint != "" && os.Getenv("AWS_ACCESS_KEY_ID") == "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// DynamoStore serves the contract from DynamoDB. Professionals are keyed by
// normalized email; password hashes are kept in a separate credentials table.
// Tables are created on first use and the seed accounts inserted once.
type DynamoStore struct {
	client             DynamoAPI
	professionalsTable string
	credentialsTable   string
	stateTable         string

	seeds  []SeedAccount
	gate   initGate
	now    timeSource
	logger *zap.Logger
}

func NewDynamoStore(client DynamoAPI, tablePrefix string, seeds []SeedAccount, log *zap.Logger) *DynamoStore {
	return &DynamoStore{
		client:             client,
		professionalsTable: tablePrefix + "professionals",
		credentialsTable:   tablePrefix + "credentials",
		stateTable:         tablePrefix + "app_state",
		seeds:              seeds,
		now:                utcNow,
		logger:             log,
	}
}

func (s *DynamoStore) ensureInitialized(ctx context.Context) error {
	return s.gate.Do(ctx, s.initialize)
}

func (s *DynamoStore) initialize(ctx context.Context) error {
	tables := []struct{ name, key string }{
		{s.professionalsTable, "email"},
		{s.credentialsTable, "email"},
		{s.stateTable, "state_key"},
	}
	for _, t := range tables {
		if err := s.createTable(ctx, t.name, t.key); err != nil {
			return err
		}
	}
	for _, account := range s.seeds {
		if err := s.seed(ctx, account); err != nil {
			return err
		}
	}
	return nil
}

// createTable creates a table keyed by a single string attribute. An existing
// table is not an error.
func (s *DynamoStore) createTable(ctx context.Context, name, key string) error {
	_, err := s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(name),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(key), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(key), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	var inUse *types.ResourceInUseException
	switch {
	case err == nil:
		s.logger.Info("created dynamodb table", zap.String("table", name))
	case errors.As(err, &inUse):
		s.logger.Debug("dynamodb table already exists", zap.String("table", name))
	default:
		return fmt.Errorf("create table %s: %w", name, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(s.client, func(o *dynamodb.TableExistsWaiterOptions) {
		o.MinDelay = time.Second
		o.MaxDelay = 5 * time.Second
	})
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)}, tableActiveTimeout); err != nil {
		return fmt.Errorf("wait for table %s: %w", name, err)
	}
	return nil
}

// seed inserts the account unless its email is already taken. Credentials are
// written before the professional so that a professional row never exists
// without a hash; an interrupted seed is completed by the next attempt. Both
// puts are conditional, so repeated or concurrent seeding keeps the first
// record.
func (s *DynamoStore) seed(ctx context.Context, account SeedAccount) error {
	cred, err := account.credentials(utils.NewID(), s.now)
	if err != nil {
		return err
	}

	var conditionFailed *types.ConditionalCheckFailedException
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.credentialsTable),
		Item: map[string]types.AttributeValue{
			"email":         &types.AttributeValueMemberS{Value: cred.Email},
			"password_hash": &types.AttributeValueMemberS{Value: cred.PasswordHash},
		},
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	if err != nil && !errors.As(err, &conditionFailed) {
		return fmt.Errorf("put seed credentials %s: %w", cred.Email, err)
	}

	item, err := attributevalue.MarshalMap(cred.Professional)
	if err != nil {
		return fmt.Errorf("marshal seed professional: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.professionalsTable),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	if errors.As(err, &conditionFailed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("put seed professional %s: %w", cred.Email, err)
	}

	s.logger.Info("seeded professional", zap.String("email", cred.Email), zap.String("role", cred.Role))
	return nil
}

func emailKey(email string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"email": &types.AttributeValueMemberS{Value: email},
	}
}

func (s *DynamoStore) FindProfessionalByEmail(ctx context.Context, email string) (*models.ProfessionalCredentials, error) {
	if err := s.ensureInitialized(ctx); err != nil {
		return nil, err
	}
	email = models.NormalizeEmail(email)

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.professionalsTable),
		Key:       emailKey(email),
	})
	if err != nil {
		return nil, fmt.Errorf("get professional %s: %w", email, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var cred models.ProfessionalCredentials
	if err := attributevalue.UnmarshalMap(out.Item, &cred.Professional); err != nil {
		return nil, fmt.Errorf("unmarshal professional: %w", err)
	}

	credOut, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.credentialsTable),
		Key:       emailKey(email),
	})
	if err != nil {
		return nil, fmt.Errorf("get credentials %s: %w", email, err)
	}
	if hash, ok := credOut.Item["password_hash"].(*types.AttributeValueMemberS); ok {
		cred.PasswordHash = hash.Value
	}
	return &cred, nil
}

// FindProfessionalByID scans the whole table because the id is not a key.
// Cost grows with the number of professionals.
func (s *DynamoStore) FindProfessionalByID(ctx context.Context, id string) (*models.Professional, error) {
	if err := s.ensureInitialized(ctx); err != nil {
		return nil, err
	}

	filter := expression.Name("professional_id").Equal(expression.Value(id))
	found, err := s.scanProfessionals(ctx, &filter)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// ListProfessionals returns the items in scan order.
func (s *DynamoStore) ListProfessionals(ctx context.Context) ([]models.Professional, error) {
	if err := s.ensureInitialized(ctx); err != nil {
		return nil, err
	}
	return s.scanProfessionals(ctx, nil)
}

func (s *DynamoStore) scanProfessionals(ctx context.Context, filter *expression.ConditionBuilder) ([]models.Professional, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(s.professionalsTable)}
	if filter != nil {
		expr, err := expression.NewBuilder().WithFilter(*filter).Build()
		if err != nil {
			return nil, fmt.Errorf("build scan filter: %w", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	list := []models.Professional{}
	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.professionalsTable, err)
		}
		var batch []models.Professional
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal professionals: %w", err)
		}
		list = append(list, batch...)
	}
	return list, nil
}

func (s *DynamoStore) UpdateProfessional(ctx context.Context, id string, update models.ProfessionalUpdate) (*models.Professional, error) {
	existing, err := s.FindProfessionalByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	set := expression.Set(expression.Name("updated_at"), expression.Value(s.now()))
	for column, value := range update.Columns(s.now()) {
		if column == "updated_at" {
			continue
		}
		set = set.Set(expression.Name(column), expression.Value(value))
	}
	expr, err := expression.NewBuilder().
		WithUpdate(set).
		WithCondition(expression.AttributeExists(expression.Name("email"))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build update expression: %w", err)
	}

	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.professionalsTable),
		Key:                       emailKey(existing.Email),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	var conditionFailed *types.ConditionalCheckFailedException
	if errors.As(err, &conditionFailed) {
		// Removed between the scan and the update.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update professional %s: %w", id, err)
	}

	var updated models.Professional
	if err := attributevalue.UnmarshalMap(out.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("unmarshal professional: %w", err)
	}
	return &updated, nil
}

func (s *DynamoStore) GetActiveDrill(ctx context.Context) (models.Drill, error) {
	if err := s.ensureInitialized(ctx); err != nil {
		return nil, err
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.stateTable),
		Key: map[string]types.AttributeValue{
			"state_key": &types.AttributeValueMemberS{Value: activeDrillStateKey},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get active drill: %w", err)
	}
	payload, ok := out.Item["payload"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, nil
	}
	return rawOrString(payload.Value), nil
}

func (s *DynamoStore) SetActiveDrill(ctx context.Context, drill models.Drill) (models.Drill, error) {
	if err := validateDrill(drill); err != nil {
		return nil, err
	}
	if err := s.ensureInitialized(ctx); err != nil {
		return nil, err
	}
	stored := cloneDrill(drill)

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.stateTable),
		Item: map[string]types.AttributeValue{
			"state_key":  &types.AttributeValueMemberS{Value: activeDrillStateKey},
			"payload":    &types.AttributeValueMemberS{Value: string(stored)},
			"updated_at": &types.AttributeValueMemberS{Value: s.now().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("set active drill: %w", err)
	}
	return stored, nil
}

func (s *DynamoStore) GetCasualtyStatistics(context.Context) (models.CasualtyStatistics, error) {
	return models.PlaceholderCasualtyStatistics(), nil
}

// GetResourceRequests always returns an empty list; requests are not stored
// in DynamoDB.
func (s *DynamoStore) GetResourceRequests(context.Context) ([]models.ResourceRequest, error) {
	return []models.ResourceRequest{}, nil
}

func (s *DynamoStore) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.professionalsTable)})
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		// Tables appear on first use.
		return nil
	}
	return err
}

func (s *DynamoStore) Close() error {
	return nil
}
