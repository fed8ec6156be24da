package repository

import (
	"context"

	"github.com/seanazu/value-hunter/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const PresetCollectionName = "screener_presets"

type PresetRepository struct {
	collection *mongo.Collection
}

func NewPresetRepository(db *mongo.Database) *PresetRepository {
	return &PresetRepository{
		collection: db.Collection(PresetCollectionName),
	}
}

func (r *PresetRepository) Save(ctx context.Context, preset model.Preset) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": preset.Name},
		bson.M{"$set": preset},
		opts,
	)
	return err
}

func (r *PresetRepository) FindAll(ctx context.Context) ([]model.Preset, error) {
	var presets []model.Preset
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &presets); err != nil {
		return nil, err
	}

	if presets == nil {
		return []model.Preset{}, nil
	}
	return presets, nil
}

func (r *PresetRepository) DeleteById(ctx context.Context, name string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": name})
	return err
}
