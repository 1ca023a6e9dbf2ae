package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog/log"
)

type (
	ClientAWS interface {
		s3.ListObjectsV2APIClient
		HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	}

	PresignerAWS interface {
		PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	}

	// AWSS3Client is an ObjectStore backed by Amazon S3 through aws-sdk-go-v2.
	AWSS3Client struct {
		bucketName string
		expiry     time.Duration
		timeout    time.Duration
		client     ClientAWS
		presigner  PresignerAWS
	}
)

var _ ObjectStore = (*AWSS3Client)(nil)

// NewAWSS3Client builds a client from the default AWS config chain. Static
// credentials are applied when given. An endpoint outside amazonaws.com is
// treated as an S3 compatible server and addressed path style.
func NewAWSS3Client(ctx context.Context, endpoint, region, accessKeyID, secretAccessKey, bucketName string, useSSL bool, opts StoreOptions) (*AWSS3Client, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if accessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if isCustomEndpoint(endpoint) {
			o.BaseEndpoint = aws.String(endpointURL(endpoint, useSSL))
			o.UsePathStyle = true
		}
	})
	log.Info().Str("endpoint", endpoint).Str("region", region).Str("bucket", bucketName).Msg("aws s3 client ready")

	return newAWSS3Client(client, s3.NewPresignClient(client), bucketName, opts), nil
}

func newAWSS3Client(client ClientAWS, presigner PresignerAWS, bucketName string, opts StoreOptions) *AWSS3Client {
	opts = opts.withDefaults()
	return &AWSS3Client{
		bucketName: bucketName,
		expiry:     opts.URLExpiry,
		timeout:    opts.Timeout,
		client:     client,
		presigner:  presigner,
	}
}

func isCustomEndpoint(endpoint string) bool {
	host := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://"), "/")
	return host != "" && !strings.HasSuffix(host, "amazonaws.com")
}

func endpointURL(endpoint string, useSSL bool) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// List pages through the prefix; the store timeout applies to each page request.
func (a *AWSS3Client) List(ctx context.Context, prefix string) (ListResult, error) {
	prefix = folderPrefix(prefix)
	result := ListResult{}

	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(a.bucketName),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	for paginator.HasMorePages() {
		page, err := a.nextPage(ctx, paginator)
		if err != nil {
			return ListResult{}, fmt.Errorf("list %q in %s: %w", prefix, a.bucketName, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if key == prefix || strings.HasSuffix(key, "/") {
				continue
			}
			result.Items = append(result.Items, ObjectItem{
				Name:         baseName(key),
				FullPath:     key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
		for _, cp := range page.CommonPrefixes {
			key := aws.ToString(cp.Prefix)
			result.Prefixes = append(result.Prefixes, PrefixItem{
				Name:     baseName(key),
				FullPath: key,
			})
		}
	}
	return result, nil
}

func (a *AWSS3Client) nextPage(ctx context.Context, paginator *s3.ListObjectsV2Paginator) (*s3.ListObjectsV2Output, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return paginator.NextPage(ctx)
}

func (a *AWSS3Client) SignedURL(ctx context.Context, fullPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	_, err := a.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(fullPath),
	})
	if err != nil {
		if isAWSNotFound(err) {
			return "", fmt.Errorf("%s: %w", fullPath, ErrNotFound)
		}
		return "", fmt.Errorf("head %q: %w", fullPath, err)
	}

	request, err := a.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(fullPath),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = a.expiry
	})
	if err != nil {
		return "", fmt.Errorf("presign %q: %w", fullPath, err)
	}
	return request.URL, nil
}

func isAWSNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}
