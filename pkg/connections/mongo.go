package dbconnections

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type AuditDBConfig struct {
	ConnectionString string
	Database         string
}

type AuditDBProductionConnection struct {
	config AuditDBConfig
	client *mongo.Client
}

var _ AuditDBConnection = (*AuditDBProductionConnection)(nil)

func NewAuditDBProductionConnection(ctx context.Context, config AuditDBConfig) (AuditDBConnection, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.ConnectionString))
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	if config.Database == "" {
		config.Database = "rstream"
	}

	return &AuditDBProductionConnection{
		config: config,
		client: client,
	}, nil
}

func (c *AuditDBProductionConnection) Collection(collectionName string) *mongo.Collection {
	return c.client.Database(c.config.Database).Collection(collectionName)
}
