package db

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/ukydev/prevmaint/internal/models"
)

// MemoryStore is an in-process Store used by tests and by STORE_DRIVER=memory.
// A single mutex guards all three collections, so every method is atomic.
type MemoryStore struct {
	mu        sync.RWMutex
	clients   map[string]models.Client
	equipment map[string]models.Equipment
	services  map[string]models.Service
	// (equipo_id, fecha_programada) -> service id
	serviceKeys map[serviceKey]string
}

type serviceKey struct {
	equipmentID string
	date        string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clients:     map[string]models.Client{},
		equipment:   map[string]models.Equipment{},
		services:    map[string]models.Service{},
		serviceKeys: map[serviceKey]string{},
	}
}

func (s *MemoryStore) Clients() ClientCollection      { return (*memoryClients)(s) }
func (s *MemoryStore) Equipment() EquipmentCollection { return (*memoryEquipment)(s) }
func (s *MemoryStore) Services() ServiceCollection    { return (*memoryServices)(s) }

func (s *MemoryStore) Ping(ctx context.Context) error  { return ctx.Err() }
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// PutService stores svc as is, bypassing the insert-if-absent path. Intended
// for seeding fixtures such as orphaned services.
func (s *MemoryStore) PutService(svc models.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = svc
	s.serviceKeys[serviceKey{svc.EquipmentID, svc.ScheduledDate}] = svc.ID
}

type memoryClients MemoryStore

func (m *memoryClients) InsertClient(ctx context.Context, client models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[client.ID] = client
	return nil
}

func (m *memoryClients) FindClients(ctx context.Context) ([]models.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Client, 0, len(m.clients))
	for _, c := range m.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryClients) FindClientByID(ctx context.Context, id string) (*models.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.clients[id]
	if !ok {
		return nil, notFound("client", id)
	}
	return &c, nil
}

func (m *memoryClients) FindClientsByIDs(ctx context.Context, ids []string) (map[string]models.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]models.Client, len(ids))
	for _, id := range ids {
		if c, ok := m.clients[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (m *memoryClients) UpdateClient(ctx context.Context, client models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[client.ID]; !ok {
		return notFound("client", client.ID)
	}
	m.clients[client.ID] = client
	return nil
}

func (m *memoryClients) DeleteClient(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[id]; !ok {
		return notFound("client", id)
	}
	delete(m.clients, id)
	return nil
}

type memoryEquipment MemoryStore

func (m *memoryEquipment) InsertEquipment(ctx context.Context, equipment models.Equipment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.equipment[equipment.ID] = equipment
	return nil
}

func (m *memoryEquipment) FindEquipment(ctx context.Context) ([]models.Equipment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Equipment, 0, len(m.equipment))
	for _, e := range m.equipment {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryEquipment) FindEquipmentByID(ctx context.Context, id string) (*models.Equipment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.equipment[id]
	if !ok {
		return nil, notFound("equipment", id)
	}
	return &e, nil
}

func (m *memoryEquipment) FindEquipmentByIDs(ctx context.Context, ids []string) (map[string]models.Equipment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]models.Equipment, len(ids))
	for _, id := range ids {
		if e, ok := m.equipment[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

func (m *memoryEquipment) ExistsEquipmentForClient(ctx context.Context, clientID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.equipment {
		if e.ClientID == clientID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryEquipment) UpdateEquipment(ctx context.Context, equipment models.Equipment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.equipment[equipment.ID]; !ok {
		return notFound("equipment", equipment.ID)
	}
	m.equipment[equipment.ID] = equipment
	return nil
}

func (m *memoryEquipment) DeleteEquipment(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.equipment[id]; !ok {
		return notFound("equipment", id)
	}
	delete(m.equipment, id)
	return nil
}

type memoryServices MemoryStore

func (m *memoryServices) InsertServiceIfAbsent(ctx context.Context, equipmentID, date string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := serviceKey{equipmentID, date}
	if _, ok := m.serviceKeys[key]; ok {
		return false, nil
	}
	svc := models.Service{ID: uuid.NewString(), EquipmentID: equipmentID, ScheduledDate: date}
	m.services[svc.ID] = svc
	m.serviceKeys[key] = svc.ID
	return true, nil
}

func (m *memoryServices) FindServices(ctx context.Context, filter ServiceFilter) ([]models.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Service{}
	for _, svc := range m.services {
		if filter.Matches(svc) {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledDate != out[j].ScheduledDate {
			return out[i].ScheduledDate < out[j].ScheduledDate
		}
		return out[i].ID < out[j].ID
	})
	if filter.Limit > 0 && int64(len(out)) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memoryServices) SetServiceAuthorized(ctx context.Context, id string, authorized bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	svc, ok := m.services[id]
	if !ok {
		return notFound("service", id)
	}
	svc.Authorized = authorized
	m.services[id] = svc
	return nil
}

func (m *memoryServices) DeleteServicesByEquipment(ctx context.Context, equipmentID string, onlyUnauthorized bool) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, svc := range m.services {
		if svc.EquipmentID != equipmentID || (onlyUnauthorized && svc.Authorized) {
			continue
		}
		delete(m.services, id)
		delete(m.serviceKeys, serviceKey{svc.EquipmentID, svc.ScheduledDate})
		deleted++
	}
	return deleted, nil
}
