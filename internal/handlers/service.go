package handlers

import (
	"context"

	"github.com/ukydev/prevmaint/internal/models"
)

// ClientService is the client use-case layer consumed by ClientHandler.
type ClientService interface {
	List(ctx context.Context) ([]models.Client, error)
	Get(ctx context.Context, id string) (*models.Client, error)
	Create(ctx context.Context, req models.ClientRequest) (*models.Client, error)
	Update(ctx context.Context, id string, req models.ClientRequest) (*models.Client, error)
	Delete(ctx context.Context, id string) error
}

// EquipmentService is the equipment use-case layer consumed by EquipmentHandler.
type EquipmentService interface {
	List(ctx context.Context) ([]models.Equipment, error)
	Get(ctx context.Context, id string) (*models.Equipment, error)
	Create(ctx context.Context, req models.EquipmentRequest) (*models.Equipment, error)
	Update(ctx context.Context, id string, req models.EquipmentRequest) (*models.Equipment, error)
	Delete(ctx context.Context, id string) error
}

// ScheduleService answers service and calendar queries.
type ScheduleService interface {
	ListServices(ctx context.Context) ([]models.ServiceDetail, error)
	UpcomingServices(ctx context.Context) ([]models.ServiceDetail, error)
	CalendarMonth(ctx context.Context, year, month int) ([]models.ServiceDetail, error)
	SetAuthorized(ctx context.Context, id string, authorized bool) (*models.AuthorizationResult, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
