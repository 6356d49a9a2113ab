package maintenance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/prevmaint/internal/apperr"
	"github.com/ukydev/prevmaint/internal/clock"
	"github.com/ukydev/prevmaint/internal/db"
	"github.com/ukydev/prevmaint/internal/models"
	"github.com/ukydev/prevmaint/internal/schedule"
)

// EquipmentService handles the equipment lifecycle and keeps each
// equipment's service schedule reconciled with its periodicity.
type EquipmentService struct {
	clients    db.ClientCollection
	equipment  db.EquipmentCollection
	services   db.ServiceCollection
	reconciler *schedule.Reconciler
	clock      clock.Clock
}

// NewEquipmentService creates a new equipment service.
func NewEquipmentService(store db.Store, reconciler *schedule.Reconciler, clk clock.Clock) *EquipmentService {
	return &EquipmentService{
		clients:    store.Clients(),
		equipment:  store.Equipment(),
		services:   store.Services(),
		reconciler: reconciler,
		clock:      clk,
	}
}

// List returns every equipment record.
func (s *EquipmentService) List(ctx context.Context) ([]models.Equipment, error) {
	equipment, err := s.equipment.FindEquipment(ctx)
	return equipment, apperr.Wrap(err, "list equipment")
}

// Get returns one equipment record.
func (s *EquipmentService) Get(ctx context.Context, id string) (*models.Equipment, error) {
	equipment, err := s.equipment.FindEquipmentByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound(msgEquipmentNotFound)
		}
		return nil, apperr.Wrap(err, "find equipment")
	}
	return equipment, nil
}

// Create stores new equipment for an existing client and generates its schedule.
func (s *EquipmentService) Create(ctx context.Context, req models.EquipmentRequest) (*models.Equipment, error) {
	if err := validateEquipment(req); err != nil {
		return nil, err
	}
	if err := s.requireClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	equipment := models.Equipment{
		ID:        uuid.NewString(),
		CreatedAt: s.clock.Now().UTC().Format(time.RFC3339),
	}
	req.Apply(&equipment)
	if err := s.equipment.InsertEquipment(ctx, equipment); err != nil {
		return nil, apperr.Wrap(err, "create equipment")
	}

	res, err := s.reconciler.Reconcile(ctx, equipment)
	if err != nil {
		return nil, apperr.Wrap(err, "generate services")
	}
	log.WithFields(log.Fields{
		"equipo_id": equipment.ID,
		"servicios": res.Created,
	}).Info("Equipment created")
	return &equipment, nil
}

// Update replaces the attributes of existing equipment, drops its
// unauthorized services and regenerates the schedule from the new values.
// Authorized services are kept even when they no longer fit the new periodicity.
func (s *EquipmentService) Update(ctx context.Context, id string, req models.EquipmentRequest) (*models.Equipment, error) {
	if err := validateEquipment(req); err != nil {
		return nil, err
	}
	if err := s.requireClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	existing, err := s.equipment.FindEquipmentByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound(msgEquipmentNotFound)
		}
		return nil, apperr.Wrap(err, "find equipment")
	}
	updated := *existing
	req.Apply(&updated)
	if err := s.equipment.UpdateEquipment(ctx, updated); err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound(msgEquipmentNotFound)
		}
		return nil, apperr.Wrap(err, "update equipment")
	}

	purged, err := s.services.DeleteServicesByEquipment(ctx, id, true)
	if err != nil {
		return nil, apperr.Wrap(err, "purge unauthorized services")
	}
	res, err := s.reconciler.Reconcile(ctx, updated)
	if err != nil {
		return nil, apperr.Wrap(err, "regenerate services")
	}
	log.WithFields(log.Fields{
		"equipo_id": id,
		"purged":    purged,
		"created":   res.Created,
		"kept":      res.Existing,
	}).Info("Equipment updated")
	return &updated, nil
}

// Delete removes equipment together with all of its services, authorized or not.
func (s *EquipmentService) Delete(ctx context.Context, id string) error {
	purged, err := s.services.DeleteServicesByEquipment(ctx, id, false)
	if err != nil {
		return apperr.Wrap(err, "delete equipment services")
	}
	if err := s.equipment.DeleteEquipment(ctx, id); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.NotFound(msgEquipmentNotFound)
		}
		return apperr.Wrap(err, "delete equipment")
	}
	log.WithFields(log.Fields{"equipo_id": id, "servicios": purged}).Info("Equipment deleted")
	return nil
}

func (s *EquipmentService) requireClient(ctx context.Context, clientID string) error {
	if _, err := s.clients.FindClientByID(ctx, clientID); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.NotFound(msgClientNotFound)
		}
		return apperr.Wrap(err, "find client")
	}
	return nil
}

// validateEquipment checks the fields the schedule depends on. Unknown
// periodicities are accepted and scheduled monthly.
func validateEquipment(req models.EquipmentRequest) error {
	if strings.TrimSpace(req.Model) == "" || strings.TrimSpace(req.SerialNumber) == "" {
		return apperr.Validation("modelo y numero_serie son obligatorios")
	}
	if strings.TrimSpace(req.ClientID) == "" {
		return apperr.Validation("cliente_id es obligatorio")
	}
	if _, err := models.ParseDate(req.FirstServiceOn); err != nil {
		return apperr.Validationf("fecha_primer_servicio: %v", err)
	}
	if req.WarrantyEndsOn != nil && *req.WarrantyEndsOn != "" {
		if _, err := models.ParseDate(*req.WarrantyEndsOn); err != nil {
			return apperr.Validationf("fecha_fin_garantia: %v", err)
		}
	}
	return nil
}
