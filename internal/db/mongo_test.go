package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/prevmaint/internal/apperr"
	"github.com/ukydev/prevmaint/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

func TestConnectMongo_BadURI(t *testing.T) {
	client, err := ConnectMongo(context.Background(), "mongodb://bad:uri")
	if err == nil {
		t.Error("expected error for bad URI, got nil")
	}
	if client != nil {
		t.Error("expected nil client on error")
	}
}

func TestMongoCollections_NilCollection(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, (&MongoClientCollection{}).InsertClient(ctx, models.Client{}))
	_, err := (&MongoEquipmentCollection{}).FindEquipment(ctx)
	assert.Error(t, err)
	_, err = (&MongoServiceCollection{}).InsertServiceIfAbsent(ctx, "e1", "2025-01-01")
	assert.Error(t, err)
}

func TestServiceQuery(t *testing.T) {
	q := serviceQuery(ServiceFilter{EquipmentID: "e1", From: "2025-01-01", Before: "2025-02-01"})
	assert.Equal(t, bson.M{
		"equipo_id":        "e1",
		"fecha_programada": bson.M{"$gte": "2025-01-01", "$lt": "2025-02-01"},
	}, q)
	assert.Equal(t, bson.M{}, serviceQuery(ServiceFilter{}))
}

// Integration test (requires running MongoDB)
func TestMongoStore_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set, skipping integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := ConnectMongo(ctx, uri)
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
	}
	defer client.Disconnect(context.Background())

	database := "prevmaint_test"
	require.NoError(t, client.Database(database).Drop(ctx))
	store, err := NewMongoStore(ctx, client, database)
	require.NoError(t, err)

	require.NoError(t, store.Clients().InsertClient(ctx, models.Client{ID: "c1", Name: "Hospital"}))
	require.NoError(t, store.Equipment().InsertEquipment(ctx, models.Equipment{ID: "e1", ClientID: "c1", Periodicity: models.PeriodicityMonthly, FirstServiceOn: "2025-01-01"}))

	exists, err := store.Equipment().ExistsEquipmentForClient(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, exists)

	created, err := store.Services().InsertServiceIfAbsent(ctx, "e1", "2025-02-01")
	require.NoError(t, err)
	assert.True(t, created)
	created, err = store.Services().InsertServiceIfAbsent(ctx, "e1", "2025-02-01")
	require.NoError(t, err)
	assert.False(t, created)

	services, err := store.Services().FindServices(ctx, ServiceFilter{EquipmentID: "e1"})
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.False(t, services[0].Authorized)

	require.NoError(t, store.Services().SetServiceAuthorized(ctx, services[0].ID, true))
	deleted, err := store.Services().DeleteServicesByEquipment(ctx, "e1", true)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	_, err = store.Clients().FindClientByID(ctx, "missing")
	assert.True(t, apperr.IsNotFound(err))
}
