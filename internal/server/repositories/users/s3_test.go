package users

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 emulates one bucket with If-None-Match: * support.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
	lastPut *s3.PutObjectInput
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPut = in
	if f.err != nil {
		return nil, f.err
	}

	key := aws.ToString(in.Key)
	if _, exists := f.objects[key]; exists && aws.ToString(in.IfNoneMatch) == "*" {
		return nil, &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "At least one of the pre-conditions you specified did not hold"}
	}
	f.objects[key] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	b, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func TestS3Repository(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) Repository {
		return NewS3Repository(newFakeS3(), "gophauth-users")
	})
}

func TestS3Repository_ObjectLayout(t *testing.T) {
	fake := newFakeS3()
	repo := NewS3Repository(fake, "gophauth-users")

	require.NoError(t, repo.Save(context.Background(), sampleUser("a@x.com")))
	assert.Equal(t, "gophauth-users", aws.ToString(fake.lastPut.Bucket))
	assert.Equal(t, "users/a@x.com.json", aws.ToString(fake.lastPut.Key))
	assert.Equal(t, "application/json", aws.ToString(fake.lastPut.ContentType))
	assert.JSONEq(t,
		`{"email":"a@x.com","id":"id-a@x.com","name":"Alice","password":"$2a$04$hash","role":"USER"}`,
		string(fake.objects["users/a@x.com.json"]))
}

func TestS3Repository_ConditionalRequestConflict(t *testing.T) {
	fake := newFakeS3()
	fake.err = &smithy.GenericAPIError{Code: "ConditionalRequestConflict"}
	repo := NewS3Repository(fake, "b")

	assert.ErrorIs(t, repo.Save(context.Background(), sampleUser("a@x.com")), common.ErrEmailAlreadyInUse)
}

func TestS3Repository_Unavailable(t *testing.T) {
	fake := newFakeS3()
	fake.err = errors.New("dial tcp: i/o timeout")
	repo := NewS3Repository(fake, "b")

	require.ErrorIs(t, repo.Save(context.Background(), sampleUser("a@x.com")), common.ErrStoreUnavailable)

	_, _, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestS3Repository_BadJSON(t *testing.T) {
	fake := newFakeS3()
	fake.objects["users/a@x.com.json"] = []byte("{not json")
	repo := NewS3Repository(fake, "b")

	_, found, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.False(t, found)
}
