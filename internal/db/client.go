package db

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ukydev/prevmaint/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoClientCollection implements ClientCollection for MongoDB.
type MongoClientCollection struct {
	Collection *mongo.Collection
}

// InsertClient inserts a new client.
func (c *MongoClientCollection) InsertClient(ctx context.Context, client models.Client) error {
	if c.Collection == nil {
		return errNilCollection
	}
	_, err := c.Collection.InsertOne(ctx, client)
	return errors.Wrap(err, "insert client")
}

// FindClients returns every client.
func (c *MongoClientCollection) FindClients(ctx context.Context) ([]models.Client, error) {
	return c.find(ctx, bson.M{})
}

// FindClientByID finds a client by its id.
func (c *MongoClientCollection) FindClientByID(ctx context.Context, id string) (*models.Client, error) {
	if c.Collection == nil {
		return nil, errNilCollection
	}
	var client models.Client
	err := c.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound("client", id)
		}
		return nil, errors.Wrap(err, "find client")
	}
	return &client, nil
}

// FindClientsByIDs returns the clients among ids that exist, keyed by id.
func (c *MongoClientCollection) FindClientsByIDs(ctx context.Context, ids []string) (map[string]models.Client, error) {
	out := make(map[string]models.Client, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	clients, err := c.find(ctx, idsFilter(uniqueIDs(ids)))
	if err != nil {
		return nil, err
	}
	for _, client := range clients {
		out[client.ID] = client
	}
	return out, nil
}

// UpdateClient replaces the stored attributes of client.
func (c *MongoClientCollection) UpdateClient(ctx context.Context, client models.Client) error {
	if c.Collection == nil {
		return errNilCollection
	}
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": client.ID}, bson.M{"$set": bson.M{"nombre": client.Name}})
	if err != nil {
		return errors.Wrap(err, "update client")
	}
	if result.MatchedCount == 0 {
		return notFound("client", client.ID)
	}
	return nil
}

// DeleteClient deletes a client by its id.
func (c *MongoClientCollection) DeleteClient(ctx context.Context, id string) error {
	if c.Collection == nil {
		return errNilCollection
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete client")
	}
	if result.DeletedCount == 0 {
		return notFound("client", id)
	}
	return nil
}

func (c *MongoClientCollection) find(ctx context.Context, filter bson.M) ([]models.Client, error) {
	if c.Collection == nil {
		return nil, errNilCollection
	}
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "find clients")
	}
	clients := []models.Client{}
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, errors.Wrap(err, "decode clients")
	}
	return clients, nil
}
