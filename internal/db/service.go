package db

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/ukydev/prevmaint/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoServiceCollection implements ServiceCollection for MongoDB.
type MongoServiceCollection struct {
	Collection *mongo.Collection
}

// InsertServiceIfAbsent upserts on (equipo_id, fecha_programada). The unique
// index turns a concurrent insert of the same pair into a duplicate key
// error, which is reported as "already present".
func (c *MongoServiceCollection) InsertServiceIfAbsent(ctx context.Context, equipmentID, date string) (bool, error) {
	if c.Collection == nil {
		return false, errNilCollection
	}
	result, err := c.Collection.UpdateOne(ctx,
		bson.M{"equipo_id": equipmentID, "fecha_programada": date},
		bson.M{"$setOnInsert": bson.M{"_id": uuid.NewString(), "autorizado": false}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "upsert service %s@%s", equipmentID, date)
	}
	return result.UpsertedCount > 0, nil
}

// FindServices returns the services matching filter in chronological order.
func (c *MongoServiceCollection) FindServices(ctx context.Context, filter ServiceFilter) ([]models.Service, error) {
	if c.Collection == nil {
		return nil, errNilCollection
	}
	opts := options.Find().SetSort(sortByDate)
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	cursor, err := c.Collection.Find(ctx, serviceQuery(filter), opts)
	if err != nil {
		return nil, errors.Wrap(err, "find services")
	}
	services := []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, errors.Wrap(err, "decode services")
	}
	return services, nil
}

// SetServiceAuthorized sets the authorized flag of a service.
func (c *MongoServiceCollection) SetServiceAuthorized(ctx context.Context, id string, authorized bool) error {
	if c.Collection == nil {
		return errNilCollection
	}
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"autorizado": authorized}})
	if err != nil {
		return errors.Wrap(err, "authorize service")
	}
	if result.MatchedCount == 0 {
		return notFound("service", id)
	}
	return nil
}

// DeleteServicesByEquipment deletes the services of an equipment, or only
// its unauthorized ones when onlyUnauthorized is set.
func (c *MongoServiceCollection) DeleteServicesByEquipment(ctx context.Context, equipmentID string, onlyUnauthorized bool) (int64, error) {
	if c.Collection == nil {
		return 0, errNilCollection
	}
	filter := bson.M{"equipo_id": equipmentID}
	if onlyUnauthorized {
		filter["autorizado"] = false
	}
	result, err := c.Collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, errors.Wrap(err, "delete services")
	}
	return result.DeletedCount, nil
}

func serviceQuery(f ServiceFilter) bson.M {
	q := bson.M{}
	if f.EquipmentID != "" {
		q["equipo_id"] = f.EquipmentID
	}
	dateRange := bson.M{}
	if f.From != "" {
		dateRange["$gte"] = f.From
	}
	if f.Before != "" {
		dateRange["$lt"] = f.Before
	}
	if len(dateRange) > 0 {
		q["fecha_programada"] = dateRange
	}
	return q
}
