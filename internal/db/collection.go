package db

import (
	"context"

	"github.com/ukydev/prevmaint/internal/models"
)

// ClientCollection defines the interface for client data operations.
type ClientCollection interface {
	InsertClient(ctx context.Context, client models.Client) error
	FindClients(ctx context.Context) ([]models.Client, error)
	FindClientByID(ctx context.Context, id string) (*models.Client, error)
	FindClientsByIDs(ctx context.Context, ids []string) (map[string]models.Client, error)
	UpdateClient(ctx context.Context, client models.Client) error
	DeleteClient(ctx context.Context, id string) error
}

// EquipmentCollection defines the interface for equipment data operations.
type EquipmentCollection interface {
	InsertEquipment(ctx context.Context, equipment models.Equipment) error
	FindEquipment(ctx context.Context) ([]models.Equipment, error)
	FindEquipmentByID(ctx context.Context, id string) (*models.Equipment, error)
	FindEquipmentByIDs(ctx context.Context, ids []string) (map[string]models.Equipment, error)
	ExistsEquipmentForClient(ctx context.Context, clientID string) (bool, error)
	UpdateEquipment(ctx context.Context, equipment models.Equipment) error
	DeleteEquipment(ctx context.Context, id string) error
}

// ServiceCollection defines the interface for scheduled service operations.
type ServiceCollection interface {
	// InsertServiceIfAbsent atomically creates an unauthorized service for
	// (equipmentID, date) unless one already exists. created is false when
	// the pair was already present.
	InsertServiceIfAbsent(ctx context.Context, equipmentID, date string) (created bool, err error)
	FindServices(ctx context.Context, filter ServiceFilter) ([]models.Service, error)
	SetServiceAuthorized(ctx context.Context, id string, authorized bool) error
	DeleteServicesByEquipment(ctx context.Context, equipmentID string, onlyUnauthorized bool) (int64, error)
}

// ServiceFilter narrows FindServices. Empty fields do not filter.
// Results are always ordered by scheduled date, then id.
type ServiceFilter struct {
	EquipmentID string
	From        string // inclusive YYYY-MM-DD
	Before      string // exclusive YYYY-MM-DD
	Limit       int64
}

// Matches reports whether s satisfies the filter.
func (f ServiceFilter) Matches(s models.Service) bool {
	if f.EquipmentID != "" && s.EquipmentID != f.EquipmentID {
		return false
	}
	if f.From != "" && s.ScheduledDate < f.From {
		return false
	}
	if f.Before != "" && s.ScheduledDate >= f.Before {
		return false
	}
	return true
}

// Store groups the three collections behind a single open/close lifecycle.
type Store interface {
	Clients() ClientCollection
	Equipment() EquipmentCollection
	Services() ServiceCollection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
