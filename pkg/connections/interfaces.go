package dbconnections

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuditDBConnection interface {
	Collection(collectionName string) *mongo.Collection
}

type MinioBlockStorageConnection interface {
	GetObject(ctx context.Context, objectName string) (*minio.Object, error)
	// objectSize -1 streams an object of unknown size
	PutObject(ctx context.Context, objectName string, objectSize int64, mimeType string, reader io.Reader) error
	Ping(ctx context.Context) error
}
