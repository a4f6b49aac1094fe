package kvstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"futur-backend/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	putErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3(t *testing.T) {
	contract(t, NewS3(newFakeS3(), "futur", "state/"))
}

func TestS3_ObjectLayout(t *testing.T) {
	fake := newFakeS3()
	kv := NewS3(fake, "futur", "state/")

	require.NoError(t, kv.Set(context.Background(), "order:42", []byte(`{}`)))

	_, ok := fake.objects["futur/state/order:42.json"]
	assert.True(t, ok)
}

func TestS3_PutFailure(t *testing.T) {
	fake := newFakeS3()
	fake.putErr = errors.New("503 SlowDown")

	err := NewS3(fake, "futur", "").Set(context.Background(), "cart", []byte(`[]`))
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
