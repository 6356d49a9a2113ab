package maintenance

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/prevmaint/internal/apperr"
	"github.com/ukydev/prevmaint/internal/db"
	"github.com/ukydev/prevmaint/internal/models"
)

// UpcomingLimit caps the number of services returned by UpcomingServices.
const UpcomingLimit = 20

// Today reports the current calendar date used for upcoming queries.
type Today interface {
	Today() time.Time
}

// ScheduleService answers read queries over scheduled services and toggles
// their authorization.
type ScheduleService struct {
	clients   db.ClientCollection
	equipment db.EquipmentCollection
	services  db.ServiceCollection
	today     Today
}

// NewScheduleService creates a new schedule service. today is usually the
// schedule.Reconciler so both agree on the current date.
func NewScheduleService(store db.Store, today Today) *ScheduleService {
	return &ScheduleService{
		clients:   store.Clients(),
		equipment: store.Equipment(),
		services:  store.Services(),
		today:     today,
	}
}

// ListServices returns every service whose equipment still exists, ordered by date.
func (s *ScheduleService) ListServices(ctx context.Context) ([]models.ServiceDetail, error) {
	services, err := s.services.FindServices(ctx, db.ServiceFilter{})
	if err != nil {
		return nil, apperr.Wrap(err, "list services")
	}
	return s.enrich(ctx, services, 0)
}

// UpcomingServices returns up to UpcomingLimit services scheduled today or later.
func (s *ScheduleService) UpcomingServices(ctx context.Context) ([]models.ServiceDetail, error) {
	filter := db.ServiceFilter{From: models.FormatDate(s.today.Today())}
	services, err := s.services.FindServices(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(err, "list upcoming services")
	}
	return s.enrich(ctx, services, UpcomingLimit)
}

// CalendarMonth returns the services scheduled within the given month.
func (s *ScheduleService) CalendarMonth(ctx context.Context, year, month int) ([]models.ServiceDetail, error) {
	if month < 1 || month > 12 {
		return nil, apperr.Validationf("mes invalido: %d", month)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	filter := db.ServiceFilter{
		From:   models.FormatDate(first),
		Before: models.FormatDate(first.AddDate(0, 1, 0)),
	}
	services, err := s.services.FindServices(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(err, "list calendar services")
	}
	return s.enrich(ctx, services, 0)
}

// SetAuthorized sets the authorized flag of a service. Repeating the call is harmless.
func (s *ScheduleService) SetAuthorized(ctx context.Context, id string, authorized bool) (*models.AuthorizationResult, error) {
	if err := s.services.SetServiceAuthorized(ctx, id, authorized); err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound(msgServiceNotFound)
		}
		return nil, apperr.Wrap(err, "authorize service")
	}
	log.WithFields(log.Fields{"servicio_id": id, "autorizado": authorized}).Info("Service authorization updated")
	return &models.AuthorizationResult{Message: MsgServiceUpdated, Authorized: authorized}, nil
}

// enrich joins services with their equipment and client using one lookup per
// collection. Services whose equipment is gone are skipped; a missing client
// yields models.UnknownClientName. limit > 0 caps the result after skipping.
func (s *ScheduleService) enrich(ctx context.Context, services []models.Service, limit int) ([]models.ServiceDetail, error) {
	equipmentIDs := make([]string, 0, len(services))
	for _, svc := range services {
		equipmentIDs = append(equipmentIDs, svc.EquipmentID)
	}
	equipment, err := s.equipment.FindEquipmentByIDs(ctx, equipmentIDs)
	if err != nil {
		return nil, apperr.Wrap(err, "load equipment")
	}

	clientIDs := make([]string, 0, len(equipment))
	for _, e := range equipment {
		clientIDs = append(clientIDs, e.ClientID)
	}
	clients, err := s.clients.FindClientsByIDs(ctx, clientIDs)
	if err != nil {
		return nil, apperr.Wrap(err, "load clients")
	}

	details := make([]models.ServiceDetail, 0, len(services))
	for _, svc := range services {
		if limit > 0 && len(details) == limit {
			break
		}
		e, ok := equipment[svc.EquipmentID]
		if !ok {
			continue
		}
		var client *models.Client
		if c, ok := clients[e.ClientID]; ok {
			client = &c
		}
		details = append(details, models.NewServiceDetail(svc, e, client))
	}
	return details, nil
}
