package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ArchiveStore keeps a copy of each generated export. The download remains
// the primary artifact; archiving is best effort.
type ArchiveStore interface {
	SaveExport(ctx context.Context, filename string, data []byte) error
}

type minioArchive struct {
	client *minio.Client
	bucket string
}

// NewMinioArchive creates a MinIO-backed archive store.
func NewMinioArchive(endpoint, accessKey, secretKey, bucket string, useSSL bool) (ArchiveStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioArchive{client: client, bucket: bucket}, nil
}

func (m *minioArchive) SaveExport(ctx context.Context, filename string, data []byte) error {
	if err := m.ensureBucketExists(ctx); err != nil {
		return err
	}

	// Exports accumulate, so each archived copy gets a unique object name.
	objectName := fmt.Sprintf("exports/%s-%s", uuid.NewString(), filename)
	_, err := m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	return err
}

func (m *minioArchive) ensureBucketExists(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	}
	return nil
}
