package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/seanazu/value-hunter/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InitMongoClient connects when mongoUri is configured; otherwise it returns nils and presets stay off.
func InitMongoClient(sysConfigs *config.SystemConfigs) (*mongo.Client, *mongo.Database, error) {
	uri := sysConfigs.Config.MongoUri
	if uri == "" {
		log.Info().Msg("mongoUri not set, presets disabled")
		return nil, nil, nil
	}

	clientOptions := options.Client().ApplyURI(uri)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("could not ping MongoDB: %w", err)
	}

	dbName := sysConfigs.Config.MongoDatabase
	log.Info().Str("database", dbName).Msg("Successfully connected to MongoDB")

	return client, client.Database(dbName), nil
}
