package maintenance

import (
	"context"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/prevmaint/internal/apperr"
	"github.com/ukydev/prevmaint/internal/db"
	"github.com/ukydev/prevmaint/internal/models"
)

// ClientService handles client operations.
type ClientService struct {
	clients   db.ClientCollection
	equipment db.EquipmentCollection
}

// NewClientService creates a new client service.
func NewClientService(store db.Store) *ClientService {
	return &ClientService{clients: store.Clients(), equipment: store.Equipment()}
}

// List returns every client.
func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	clients, err := s.clients.FindClients(ctx)
	return clients, apperr.Wrap(err, "list clients")
}

// Get returns one client.
func (s *ClientService) Get(ctx context.Context, id string) (*models.Client, error) {
	client, err := s.clients.FindClientByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound(msgClientNotFound)
		}
		return nil, apperr.Wrap(err, "find client")
	}
	return client, nil
}

// Create stores a new client under a fresh id.
func (s *ClientService) Create(ctx context.Context, req models.ClientRequest) (*models.Client, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("nombre es obligatorio")
	}
	client := models.Client{ID: uuid.NewString(), Name: req.Name}
	if err := s.clients.InsertClient(ctx, client); err != nil {
		return nil, apperr.Wrap(err, "create client")
	}
	log.WithField("cliente_id", client.ID).Info("Client created")
	return &client, nil
}

// Update renames a client.
func (s *ClientService) Update(ctx context.Context, id string, req models.ClientRequest) (*models.Client, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("nombre es obligatorio")
	}
	client := models.Client{ID: id, Name: req.Name}
	if err := s.clients.UpdateClient(ctx, client); err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound(msgClientNotFound)
		}
		return nil, apperr.Wrap(err, "update client")
	}
	return &client, nil
}

// Delete removes a client that no equipment references.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	referenced, err := s.equipment.ExistsEquipmentForClient(ctx, id)
	if err != nil {
		return apperr.Wrap(err, "check client equipment")
	}
	if referenced {
		return apperr.Conflict(msgClientHasEquipment)
	}
	if err := s.clients.DeleteClient(ctx, id); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.NotFound(msgClientNotFound)
		}
		return apperr.Wrap(err, "delete client")
	}
	log.WithField("cliente_id", id).Info("Client deleted")
	return nil
}
