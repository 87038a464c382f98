package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(backend string) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreBackend = backend
	return cfg
}

func TestNew_Memory(t *testing.T) {
	m, err := New(context.Background(), testConfig(config.BackendMemory), logging.Nop())
	require.NoError(t, err)
	defer m.Close()

	require.NotNil(t, m.Users())
	require.NoError(t, m.Users().Save(context.Background(), &models.User{
		ID: "u1", Email: "a@x.com", PasswordHash: "h", Role: models.RoleUser,
	}))
	ok, err := m.Users().ExistsByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(context.Background(), testConfig("cassandra"), logging.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown store backend "cassandra"`)
}

func stubPostgres(t *testing.T, migrate func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	origOpen, origUp := sqlOpen, gooseUpContext
	t.Cleanup(func() { sqlOpen, gooseUpContext = origOpen, origUp })

	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		if driver != "pgx" {
			return nil, errors.New("unexpected driver " + driver)
		}
		return db, nil
	}
	gooseUpContext = migrate
	return mock
}

func TestNew_Postgres(t *testing.T) {
	var migratedDir string
	mock := stubPostgres(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		migratedDir = dir
		return nil
	})
	mock.ExpectPing()
	mock.ExpectClose()

	m, err := New(context.Background(), testConfig(config.BackendPostgres), logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, ".", migratedDir)
	assert.NotNil(t, m.Users())

	require.NoError(t, m.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_PostgresPingFails(t *testing.T) {
	mock := stubPostgres(t, func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		t.Fatal("migrations must not run without a connection")
		return nil
	})
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectClose()

	_, err := New(context.Background(), testConfig(config.BackendPostgres), logging.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_PostgresMigrationFails(t *testing.T) {
	mock := stubPostgres(t, func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	})
	mock.ExpectPing()
	mock.ExpectClose()

	_, err := New(context.Background(), testConfig(config.BackendPostgres), logging.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations: boom")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(config.BackendRedis)
	cfg.RedisAddr = mr.Addr()

	m, err := New(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Users().Save(context.Background(), &models.User{
		ID: "u1", Email: "a@x.com", PasswordHash: "h", Role: models.RoleUser,
	}))
	assert.True(t, mr.Exists("gophauth:user:a@x.com"))
}

func TestNew_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(config.BackendRedis)
	cfg.RedisAddr = mr.Addr()
	mr.Close()

	_, err := New(context.Background(), cfg, logging.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping")
}

// stubAWSConfig captures the options passed to the AWS config loader.
func stubAWSConfig(t *testing.T, loadErr error) *awsconfig.LoadOptions {
	t.Helper()
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	var lo awsconfig.LoadOptions
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				return aws.Config{}, err
			}
		}
		if loadErr != nil {
			return aws.Config{}, loadErr
		}
		return aws.Config{Region: lo.Region, Credentials: lo.Credentials}, nil
	}
	return &lo
}

func TestNew_DynamoDB(t *testing.T) {
	lo := stubAWSConfig(t, nil)

	orig := newDynamoDBClientFromConfig
	t.Cleanup(func() { newDynamoDBClientFromConfig = orig })

	var opts dynamodb.Options
	newDynamoDBClientFromConfig = func(cfg aws.Config, optFns ...func(*dynamodb.Options)) users.DynamoDBAPI {
		for _, fn := range optFns {
			fn(&opts)
		}
		return dynamodb.NewFromConfig(cfg, optFns...)
	}

	cfg := testConfig(config.BackendDynamoDB)
	cfg.AWSRegion = "eu-central-1"
	cfg.AWSAccessKeyID = "AKID"
	cfg.AWSSecretAccessKey = "SECRET"
	cfg.AWSEndpoint = "http://localhost:8000"

	m, err := New(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Close())
	assert.NotNil(t, m.Users())

	assert.Equal(t, "eu-central-1", lo.Region)
	require.NotNil(t, lo.Credentials)
	creds, err := lo.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKID", creds.AccessKeyID)
	assert.Equal(t, "SECRET", creds.SecretAccessKey)
	assert.Equal(t, "http://localhost:8000", aws.ToString(opts.BaseEndpoint))
}

func TestNew_S3DefaultCredentialChain(t *testing.T) {
	lo := stubAWSConfig(t, nil)

	orig := newS3ClientFromConfig
	t.Cleanup(func() { newS3ClientFromConfig = orig })

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) users.S3API {
		for _, fn := range optFns {
			fn(&opts)
		}
		return s3.NewFromConfig(cfg, optFns...)
	}

	m, err := New(context.Background(), testConfig(config.BackendS3), logging.Nop())
	require.NoError(t, err)
	assert.NotNil(t, m.Users())

	assert.Nil(t, lo.Credentials)
	assert.Nil(t, opts.BaseEndpoint)
	assert.False(t, opts.UsePathStyle)
}

func TestNew_S3CustomEndpointUsesPathStyle(t *testing.T) {
	stubAWSConfig(t, nil)

	orig := newS3ClientFromConfig
	t.Cleanup(func() { newS3ClientFromConfig = orig })

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) users.S3API {
		for _, fn := range optFns {
			fn(&opts)
		}
		return s3.NewFromConfig(cfg, optFns...)
	}

	cfg := testConfig(config.BackendS3)
	cfg.AWSEndpoint = "http://minio:9000"

	_, err := New(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
}

func TestNew_AWSConfigError(t *testing.T) {
	stubAWSConfig(t, errors.New("no region"))

	_, err := New(context.Background(), testConfig(config.BackendDynamoDB), logging.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dynamodb store init: no region")
}
