package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"remedial_edu_backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider abstracts where uploaded files land so the material
// service does not care whether a deployment uses local disk or MinIO.
type StorageProvider interface {
	// Put stores the object and returns a URL the frontend can fetch it from.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

type LocalStorageProvider struct {
	BasePath string
}

func NewLocalStorageProvider(basePath string) *LocalStorageProvider {
	return &LocalStorageProvider{BasePath: basePath}
}

func (p *LocalStorageProvider) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.BasePath, key)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dst)
		return "", err
	}
	return "/uploads/" + key, nil
}

func (p *LocalStorageProvider) Remove(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(p.BasePath, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

type MinioStorageProvider struct {
	Client *minio.Client
	Bucket string
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds: credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MinioStorageProvider{Client: client, Bucket: cfg.MinioBucket}, nil
}

func (p *MinioStorageProvider) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", p.Client.EndpointURL().String(), p.Bucket, key), nil
}

func (p *MinioStorageProvider) Remove(ctx context.Context, key string) error {
	return p.Client.RemoveObject(ctx, p.Bucket, key, minio.RemoveObjectOptions{})
}

// NewStorageProvider picks the provider configured for this deployment.
func NewStorageProvider(cfg *config.StorageConfig) (StorageProvider, error) {
	switch cfg.Type {
	case "minio":
		return NewMinioStorageProvider(cfg)
	case "local", "":
		return NewLocalStorageProvider(cfg.LocalPath), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
