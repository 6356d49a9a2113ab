package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/prevmaint/internal/clock"
	"github.com/ukydev/prevmaint/internal/config"
	"github.com/ukydev/prevmaint/internal/db"
	"github.com/ukydev/prevmaint/internal/maintenance"
	"github.com/ukydev/prevmaint/internal/models"
	"github.com/ukydev/prevmaint/internal/schedule"
)

func newMemoryRouter(today time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := db.NewMemoryStore()
	clk := clock.NewMockClock(today)
	rec := schedule.NewReconciler(store.Services(), store.Equipment(), clk, schedule.WithLocation(time.UTC))

	engine := gin.New()
	NewRouter(engine, config.NewTestConfig(), Handlers{
		Clients:   NewClientHandler(maintenance.NewClientService(store)),
		Equipment: NewEquipmentHandler(maintenance.NewEquipmentService(store, rec, clk)),
		Services:  NewServiceHandler(maintenance.NewScheduleService(store, rec)),
		Store:     store,
	})
	return engine
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func TestRouter_MaintenanceLifecycle(t *testing.T) {
	r := newMemoryRouter(time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC))

	w := doRequest(t, r, http.MethodPost, "/api/clientes", models.ClientRequest{Name: "Hospital Central"})
	require.Equal(t, http.StatusOK, w.Code)
	client := decode[models.Client](t, w.Body.Bytes())

	req := models.EquipmentRequest{
		Model:          "Desfibrilador D1",
		SerialNumber:   "DF-77",
		ClientID:       client.ID,
		Periodicity:    models.PeriodicityMonthly,
		FirstServiceOn: "2025-01-15",
		UnderWarranty:  true,
	}
	w = doRequest(t, r, http.MethodPost, "/api/equipos", req)
	require.Equal(t, http.StatusOK, w.Code)
	equipment := decode[models.Equipment](t, w.Body.Bytes())
	assert.Equal(t, client.ID, equipment.ClientID)

	w = doRequest(t, r, http.MethodGet, "/api/servicios", nil)
	require.Equal(t, http.StatusOK, w.Code)
	services := decode[[]models.ServiceDetail](t, w.Body.Bytes())
	require.Len(t, services, 13)
	assert.Equal(t, "Hospital Central", services[0].ClientName)
	assert.Equal(t, "DF-77", services[0].EquipmentSerial)
	assert.True(t, services[0].UnderWarranty)

	feb := services[1]
	require.Equal(t, "2025-02-15", feb.ScheduledDate)
	w = doRequest(t, r, http.MethodPut, "/api/servicios/"+feb.ID+"/autorizar", nil)
	require.Equal(t, http.StatusOK, w.Code)

	req.Periodicity = models.PeriodicityQuarterly
	w = doRequest(t, r, http.MethodPut, "/api/equipos/"+equipment.ID, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/calendario/2025/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	february := decode[[]models.ServiceDetail](t, w.Body.Bytes())
	require.Len(t, february, 1)
	assert.Equal(t, feb.ID, february[0].ID)
	assert.True(t, february[0].Authorized)

	w = doRequest(t, r, http.MethodGet, "/api/calendario/2025/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = doRequest(t, r, http.MethodGet, "/api/calendario/2025/4", nil)
	assert.Len(t, decode[[]models.ServiceDetail](t, w.Body.Bytes()), 1)

	w = doRequest(t, r, http.MethodGet, "/api/servicios/proximos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.ServiceDetail](t, w.Body.Bytes()), 6)

	w = doRequest(t, r, http.MethodDelete, "/api/clientes/"+client.ID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodDelete, "/api/equipos/"+equipment.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/servicios", nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = doRequest(t, r, http.MethodDelete, "/api/clientes/"+client.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Cliente eliminado"}`, w.Body.String())
}

func TestRouter_EquipmentForUnknownClient(t *testing.T) {
	r := newMemoryRouter(time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC))

	w := doRequest(t, r, http.MethodPost, "/api/equipos", models.EquipmentRequest{
		Model:          "Monitor",
		SerialNumber:   "M-1",
		ClientID:       "does-not-exist",
		Periodicity:    models.PeriodicityAnnual,
		FirstServiceOn: "2025-02-01",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Cliente no encontrado"}`, w.Body.String())

	w = doRequest(t, r, http.MethodGet, "/api/equipos", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}
