package models

// UnknownClientName is shown when a service's equipment points at a client that no longer exists.
const UnknownClientName = "Desconocido"

// Service represents one scheduled preventive maintenance visit.
type Service struct {
	ID            string `bson:"_id" json:"id"`
	EquipmentID   string `bson:"equipo_id" json:"equipo_id"`
	ScheduledDate string `bson:"fecha_programada" json:"fecha_programada"` // YYYY-MM-DD
	Authorized    bool   `bson:"autorizado" json:"autorizado"`
}

// ServiceDetail is a service joined with its equipment and the equipment's client.
type ServiceDetail struct {
	ID              string `json:"id"`
	EquipmentID     string `json:"equipo_id"`
	ScheduledDate   string `json:"fecha_programada"`
	Authorized      bool   `json:"autorizado"`
	EquipmentModel  string `json:"equipo_modelo"`
	EquipmentSerial string `json:"equipo_numero_serie"`
	ClientName      string `json:"cliente_nombre"`
	ClientID        string `json:"cliente_id"`
	UnderWarranty   bool   `json:"en_garantia"`
}

// NewServiceDetail builds the enriched view of s. A nil client yields UnknownClientName.
func NewServiceDetail(s Service, e Equipment, c *Client) ServiceDetail {
	name := UnknownClientName
	if c != nil {
		name = c.Name
	}
	return ServiceDetail{
		ID:              s.ID,
		EquipmentID:     s.EquipmentID,
		ScheduledDate:   s.ScheduledDate,
		Authorized:      s.Authorized,
		EquipmentModel:  e.Model,
		EquipmentSerial: e.SerialNumber,
		ClientName:      name,
		ClientID:        e.ClientID,
		UnderWarranty:   e.UnderWarranty,
	}
}

// AuthorizationResult is returned after toggling a service's authorized flag.
type AuthorizationResult struct {
	Message    string `json:"message"`
	Authorized bool   `json:"autorizado"`
}
