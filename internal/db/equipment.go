package db

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ukydev/prevmaint/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoEquipmentCollection implements EquipmentCollection for MongoDB.
type MongoEquipmentCollection struct {
	Collection *mongo.Collection
}

// InsertEquipment inserts a new equipment record.
func (c *MongoEquipmentCollection) InsertEquipment(ctx context.Context, equipment models.Equipment) error {
	if c.Collection == nil {
		return errNilCollection
	}
	_, err := c.Collection.InsertOne(ctx, equipment)
	return errors.Wrap(err, "insert equipment")
}

// FindEquipment returns every equipment record.
func (c *MongoEquipmentCollection) FindEquipment(ctx context.Context) ([]models.Equipment, error) {
	return c.find(ctx, bson.M{})
}

// FindEquipmentByID finds an equipment record by its id.
func (c *MongoEquipmentCollection) FindEquipmentByID(ctx context.Context, id string) (*models.Equipment, error) {
	if c.Collection == nil {
		return nil, errNilCollection
	}
	var equipment models.Equipment
	err := c.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&equipment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound("equipment", id)
		}
		return nil, errors.Wrap(err, "find equipment")
	}
	return &equipment, nil
}

// FindEquipmentByIDs returns the equipment among ids that exists, keyed by id.
func (c *MongoEquipmentCollection) FindEquipmentByIDs(ctx context.Context, ids []string) (map[string]models.Equipment, error) {
	out := make(map[string]models.Equipment, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	found, err := c.find(ctx, idsFilter(uniqueIDs(ids)))
	if err != nil {
		return nil, err
	}
	for _, e := range found {
		out[e.ID] = e
	}
	return out, nil
}

// ExistsEquipmentForClient reports whether any equipment references clientID.
func (c *MongoEquipmentCollection) ExistsEquipmentForClient(ctx context.Context, clientID string) (bool, error) {
	if c.Collection == nil {
		return false, errNilCollection
	}
	n, err := c.Collection.CountDocuments(ctx, bson.M{"cliente_id": clientID}, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrap(err, "count equipment by client")
	}
	return n > 0, nil
}

// UpdateEquipment replaces the stored document with equipment.
func (c *MongoEquipmentCollection) UpdateEquipment(ctx context.Context, equipment models.Equipment) error {
	if c.Collection == nil {
		return errNilCollection
	}
	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": equipment.ID}, equipment)
	if err != nil {
		return errors.Wrap(err, "update equipment")
	}
	if result.MatchedCount == 0 {
		return notFound("equipment", equipment.ID)
	}
	return nil
}

// DeleteEquipment deletes an equipment record by its id.
func (c *MongoEquipmentCollection) DeleteEquipment(ctx context.Context, id string) error {
	if c.Collection == nil {
		return errNilCollection
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete equipment")
	}
	if result.DeletedCount == 0 {
		return notFound("equipment", id)
	}
	return nil
}

func (c *MongoEquipmentCollection) find(ctx context.Context, filter bson.M) ([]models.Equipment, error) {
	if c.Collection == nil {
		return nil, errNilCollection
	}
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "find equipment")
	}
	equipment := []models.Equipment{}
	if err := cursor.All(ctx, &equipment); err != nil {
		return nil, errors.Wrap(err, "decode equipment")
	}
	return equipment, nil
}
