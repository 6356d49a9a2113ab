package models

// Equipment represents a medical device under a preventive maintenance plan.
type Equipment struct {
	ID             string      `bson:"_id" json:"id"`
	Model          string      `bson:"modelo" json:"modelo"`
	SerialNumber   string      `bson:"numero_serie" json:"numero_serie"`
	ClientID       string      `bson:"cliente_id" json:"cliente_id"`
	Periodicity    Periodicity `bson:"periodicidad" json:"periodicidad"`
	FirstServiceOn string      `bson:"fecha_primer_servicio" json:"fecha_primer_servicio"` // YYYY-MM-DD anchor
	UnderWarranty  bool        `bson:"en_garantia" json:"en_garantia"`
	WarrantyEndsOn *string     `bson:"fecha_fin_garantia,omitempty" json:"fecha_fin_garantia"`
	CreatedAt      string      `bson:"fecha_creacion" json:"fecha_creacion"` // RFC3339, UTC
}

// EquipmentRequest is the body accepted when creating or updating equipment.
type EquipmentRequest struct {
	Model          string      `json:"modelo" binding:"required"`
	SerialNumber   string      `json:"numero_serie" binding:"required"`
	ClientID       string      `json:"cliente_id" binding:"required"`
	Periodicity    Periodicity `json:"periodicidad" binding:"required"`
	FirstServiceOn string      `json:"fecha_primer_servicio" binding:"required"`
	UnderWarranty  bool        `json:"en_garantia"`
	WarrantyEndsOn *string     `json:"fecha_fin_garantia"`
}

// Apply copies the mutable attributes of the request onto e.
func (r EquipmentRequest) Apply(e *Equipment) {
	e.Model = r.Model
	e.SerialNumber = r.SerialNumber
	e.ClientID = r.ClientID
	e.Periodicity = r.Periodicity
	e.FirstServiceOn = r.FirstServiceOn
	e.UnderWarranty = r.UnderWarranty
	e.WarrantyEndsOn = r.WarrantyEndsOn
}
