package app

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

type ClientMinio interface {
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

// MinioS3Client is an ObjectStore backed by any S3 compatible server reachable with minio-go.
type MinioS3Client struct {
	bucketName string
	expiry     time.Duration
	timeout    time.Duration
	client     ClientMinio
}

var _ ObjectStore = (*MinioS3Client)(nil)

// NewMinioS3Client creates a new MinioS3Client instance.
func NewMinioS3Client(endpoint, accessKeyID, secretAccessKey, bucketName string, useSSL bool, opts StoreOptions) (*MinioS3Client, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for %s: %w", endpoint, err)
	}
	log.Info().Str("endpoint", endpoint).Str("bucket", bucketName).Bool("ssl", useSSL).Msg("minio client ready")

	return newMinioS3Client(minioClient, bucketName, opts), nil
}

func newMinioS3Client(client ClientMinio, bucketName string, opts StoreOptions) *MinioS3Client {
	opts = opts.withDefaults()
	return &MinioS3Client{
		bucketName: bucketName,
		expiry:     opts.URLExpiry,
		timeout:    opts.Timeout,
		client:     client,
	}
}

func (s3 *MinioS3Client) List(ctx context.Context, prefix string) (ListResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s3.timeout)
	defer cancel()

	prefix = folderPrefix(prefix)
	result := ListResult{}

	objectCh := s3.client.ListObjects(ctx, s3.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	})
	for object := range objectCh {
		if object.Err != nil {
			return ListResult{}, fmt.Errorf("list %q in %s: %w", prefix, s3.bucketName, object.Err)
		}
		if object.Key == prefix {
			// folder marker object
			continue
		}
		if strings.HasSuffix(object.Key, "/") {
			result.Prefixes = append(result.Prefixes, PrefixItem{
				Name:     baseName(object.Key),
				FullPath: object.Key,
			})
			continue
		}
		result.Items = append(result.Items, ObjectItem{
			Name:         baseName(object.Key),
			FullPath:     object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
		})
	}
	return result, nil
}

// SignedURL checks that the object exists, since presigning alone never fails
// for a missing key, and then presigns a GET for it.
func (s3 *MinioS3Client) SignedURL(ctx context.Context, fullPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s3.timeout)
	defer cancel()

	if _, err := s3.client.StatObject(ctx, s3.bucketName, fullPath, minio.StatObjectOptions{}); err != nil {
		if isMinioNotFound(err) {
			return "", fmt.Errorf("%s: %w", fullPath, ErrNotFound)
		}
		return "", fmt.Errorf("stat %q: %w", fullPath, err)
	}

	presignedURL, err := s3.client.PresignedGetObject(ctx, s3.bucketName, fullPath, s3.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign %q: %w", fullPath, err)
	}
	return presignedURL.String(), nil
}

func isMinioNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}
