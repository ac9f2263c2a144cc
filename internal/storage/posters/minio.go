package posters

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore keeps posters as objects in a MinIO (or any S3 compatible) bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func NewMinioStore(opts MinioOptions) (*MinioStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinioStore{client: client, bucket: opts.Bucket}, nil
}

// ensureBucket creates the bucket on first use.
func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (s *MinioStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	base := SanitizeFilename(filename)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		name := candidate(base, attempt)

		taken, err := s.exists(ctx, name)
		if err != nil {
			return "", err
		}
		if taken {
			continue
		}

		_, err = s.client.PutObject(ctx, s.bucket, name, r, -1,
			minio.PutObjectOptions{ContentType: ContentType(name)})
		if err != nil {
			return "", fmt.Errorf("failed to upload poster to minio: %w", err)
		}
		return name, nil
	}
	return "", fmt.Errorf("no free name for poster %q after %d attempts", base, maxAttempts)
}

func (s *MinioStore) exists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, name, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if isNoSuchKey(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat poster %s: %w", name, err)
}

func (s *MinioStore) Open(ctx context.Context, name string) (*Object, error) {
	if !validName(name) {
		return nil, ErrInvalidName
	}
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject is lazy, Stat surfaces a missing key
	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		if isNoSuchKey(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	contentType := stat.ContentType
	if contentType == "" {
		contentType = ContentType(name)
	}
	return &Object{ReadCloser: obj, Size: stat.Size, ContentType: contentType}, nil
}

func (s *MinioStore) Remove(ctx context.Context, name string) error {
	if !validName(name) {
		return ErrInvalidName
	}
	return s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{})
}

func isNoSuchKey(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NoSuchBucket"
}
