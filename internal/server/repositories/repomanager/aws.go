package repomanager

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newDynamoDBClientFromConfig = func(cfg aws.Config, optFns ...func(*dynamodb.Options)) users.DynamoDBAPI {
		return dynamodb.NewFromConfig(cfg, optFns...)
	}

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) users.S3API {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// awsSettings is the part of the server config the AWS clients need.
type awsSettings struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides the service URL, e.g. DynamoDB Local or MinIO.
	Endpoint string
}

func awsSettingsFrom(cfg *config.Config) awsSettings {
	return awsSettings{
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Endpoint:        cfg.AWSEndpoint,
	}
}

// loadAWSConfig resolves credentials through the default chain unless a
// static key pair is configured.
func loadAWSConfig(ctx context.Context, s awsSettings) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(s.Region),
	}
	if s.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.AccessKeyID, s.SecretAccessKey, "")))
	}
	return loadDefaultAWSConfig(ctx, opts...)
}

// AWSRepositoryManager serves a store backed by an AWS SDK client. The SDK
// clients hold no resources that need releasing.
type AWSRepositoryManager struct {
	users *users.Store
}

func NewDynamoDBRepositoryManager(ctx context.Context, s awsSettings, table string) (*AWSRepositoryManager, error) {
	cfg, err := loadAWSConfig(ctx, s)
	if err != nil {
		return nil, err
	}

	client := newDynamoDBClientFromConfig(cfg, func(o *dynamodb.Options) {
		if s.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.Endpoint)
		}
	})

	return &AWSRepositoryManager{users: users.NewStore(users.NewDynamoDBRepository(client, table))}, nil
}

func NewS3RepositoryManager(ctx context.Context, s awsSettings, bucket string) (*AWSRepositoryManager, error) {
	cfg, err := loadAWSConfig(ctx, s)
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &AWSRepositoryManager{users: users.NewStore(users.NewS3Repository(client, bucket))}, nil
}

func (m *AWSRepositoryManager) Users() *users.Store { return m.users }

func (m *AWSRepositoryManager) Close() error { return nil }
