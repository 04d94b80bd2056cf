package storage

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"

	"github.com/igotm1lk/slackbot/internal/config"
)

func TestService(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping storage integration test in short mode")
	}

	ctx := context.Background()

	minioContainer, err := tcminio.Run(ctx, "minio/minio:RELEASE.2024-01-16T16-07-38Z")
	testcontainers.CleanupContainer(t, minioContainer)
	require.NoError(t, err)

	endpoint, err := minioContainer.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		S3ServiceURL: "http://" + endpoint,
		S3AccessKey:  minioContainer.Username,
		S3SecretKey:  minioContainer.Password,
		S3BucketName: "psi-screenshots",
	}

	svc, err := NewService(ctx, cfg)
	require.NoError(t, err)

	_, err = svc.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(cfg.S3BucketName),
	})
	require.NoError(t, err)

	t.Run("UploadReturnsPublicURL", func(t *testing.T) {
		url, err := svc.Upload(ctx, "screenshots/abc.png", "image/png", []byte("fake-png"))
		require.NoError(t, err)
		assert.Equal(t, cfg.S3ServiceURL+"/psi-screenshots/screenshots/abc.png", url)

		out, err := svc.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(cfg.S3BucketName),
			Key:    aws.String("screenshots/abc.png"),
		})
		require.NoError(t, err)
		defer out.Body.Close()
		assert.Equal(t, "image/png", aws.ToString(out.ContentType))
	})

	t.Run("ListSeesOnlyThePrefix", func(t *testing.T) {
		_, err := svc.Upload(ctx, "other/ignore.txt", "text/plain", []byte("x"))
		require.NoError(t, err)

		objects, err := svc.List(ctx, "screenshots/")
		require.NoError(t, err)
		require.Len(t, objects, 1)
		assert.Equal(t, "screenshots/abc.png", objects[0].Key)
		assert.False(t, objects[0].LastModified.IsZero())
	})

	t.Run("DeleteRemovesObject", func(t *testing.T) {
		require.NoError(t, svc.DeleteFile(ctx, "screenshots/abc.png"))

		objects, err := svc.List(ctx, "screenshots/")
		require.NoError(t, err)
		assert.Empty(t, objects)
	})

	t.Run("PublicURLOverrideWins", func(t *testing.T) {
		cfgPublic := *cfg
		cfgPublic.S3PublicURL = "https://cdn.example.com/"
		svcPublic, err := NewService(ctx, &cfgPublic)
		require.NoError(t, err)

		url, err := svcPublic.Upload(ctx, "screenshots/xyz.jpg", "image/jpeg", []byte("fake-jpg"))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/screenshots/xyz.jpg", url)
	})
}
