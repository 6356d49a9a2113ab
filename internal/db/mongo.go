package db

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	clientsCollection   = "clientes"
	equipmentCollection = "equipos"
	servicesCollection  = "servicios"

	connectTimeout = 10 * time.Second
)

var errNilCollection = errors.New("mongo collection is nil")

// ConnectMongo connects to MongoDB at uri and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "mongo.Connect")
	}
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "mongo.Ping")
	}
	return client, nil
}

// MongoStore is the MongoDB-backed Store. Each entity lives in its own flat collection.
type MongoStore struct {
	client    *mongo.Client
	clients   *MongoClientCollection
	equipment *MongoEquipmentCollection
	services  *MongoServiceCollection
}

// NewMongoStore wires the collections of database and makes sure the indexes exist.
func NewMongoStore(ctx context.Context, client *mongo.Client, database string) (*MongoStore, error) {
	db := client.Database(database)
	s := &MongoStore{
		client:    client,
		clients:   &MongoClientCollection{Collection: db.Collection(clientsCollection)},
		equipment: &MongoEquipmentCollection{Collection: db.Collection(equipmentCollection)},
		services:  &MongoServiceCollection{Collection: db.Collection(servicesCollection)},
	}
	if err := s.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// EnsureIndexes creates the unique (equipo_id, fecha_programada) index that
// keeps a single service per equipment and date, plus the lookup indexes.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.services.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "equipo_id", Value: 1}, {Key: "fecha_programada", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("equipo_fecha_unique"),
		},
		{
			Keys:    bson.D{{Key: "fecha_programada", Value: 1}},
			Options: options.Index().SetName("fecha_programada"),
		},
	})
	if err != nil {
		return errors.Wrap(err, "create service indexes")
	}
	_, err = s.equipment.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "cliente_id", Value: 1}},
		Options: options.Index().SetName("cliente_id"),
	})
	if err != nil {
		return errors.Wrap(err, "create equipment indexes")
	}
	log.Debug("MongoDB indexes ensured")
	return nil
}

func (s *MongoStore) Clients() ClientCollection      { return s.clients }
func (s *MongoStore) Equipment() EquipmentCollection { return s.equipment }
func (s *MongoStore) Services() ServiceCollection    { return s.services }

// Ping checks the server is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// sortByDate orders services chronologically with the id as tie breaker.
var sortByDate = bson.D{{Key: "fecha_programada", Value: 1}, {Key: "_id", Value: 1}}

func idsFilter(ids []string) bson.M {
	return bson.M{"_id": bson.M{"$in": ids}}
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
