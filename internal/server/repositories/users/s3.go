package users

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// S3API is the subset of *s3.Client used by S3Repository.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Repository stores each user as a JSON object users/<email>.json.
type S3Repository struct {
	client S3API
	bucket string
}

func NewS3Repository(client S3API, bucket string) *S3Repository {
	return &S3Repository{client: client, bucket: bucket}
}

func s3Key(email string) string {
	return "users/" + email + ".json"
}

// Save uses a conditional PUT (If-None-Match: *), which S3 rejects with
// 412 PreconditionFailed when the object already exists.
func (r *S3Repository) Save(ctx context.Context, user *models.User) error {
	b, err := json.Marshal(newRecord(user))
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(s3Key(user.Email)),
		Body:        bytes.NewReader(b),
		ContentType: aws.String("application/json"),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case "PreconditionFailed", "ConditionalRequestConflict":
				return common.ErrEmailAlreadyInUse
			}
		}
		return fmt.Errorf("%w: s3 put object: %w", common.ErrStoreUnavailable, err)
	}

	return nil
}

func (r *S3Repository) FindByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(s3Key(email)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: s3 get object: %w", common.ErrStoreUnavailable, err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, false, fmt.Errorf("%w: s3 read object: %w", common.ErrStoreUnavailable, err)
	}

	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, false, fmt.Errorf("unmarshal user: %w", err)
	}

	u, err := rec.user()
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

var _ Repository = (*S3Repository)(nil)
