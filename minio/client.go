package minio

import (
	"context"
	"io"
	"log"

	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/trackline/tracker/config"
)

var Client *minioSDK.Client
var BucketName string

// InitMinio connects to the object store holding ticket attachments and
// ensures the bucket exists.
func InitMinio() {
	BucketName = config.MinioBucket

	minioClient, err := minioSDK.New(config.MinioEndpoint, &minioSDK.Options{
		Creds:  credentials.NewStaticV4(config.MinioAccessKey, config.MinioSecretKey, ""),
		Secure: config.MinioUseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	ctx := context.Background()
	exists, err := minioClient.BucketExists(ctx, BucketName)
	if err != nil {
		log.Fatalf("Failed to check bucket existence: %v", err)
	}

	if !exists {
		if err := minioClient.MakeBucket(ctx, BucketName, minioSDK.MakeBucketOptions{}); err != nil {
			log.Fatalf("Failed to create bucket: %v", err)
		}
		log.Printf("Bucket created: %s", BucketName)
	}

	Client = minioClient
}

func PutAttachment(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := Client.PutObject(ctx, BucketName, key, reader, size, minioSDK.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func GetAttachment(ctx context.Context, key string) (*minioSDK.Object, error) {
	return Client.GetObject(ctx, BucketName, key, minioSDK.GetObjectOptions{})
}
