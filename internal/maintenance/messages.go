package maintenance

// Messages returned to API callers.
const (
	msgClientNotFound     = "Cliente no encontrado"
	msgEquipmentNotFound  = "Equipo no encontrado"
	msgServiceNotFound    = "Servicio no encontrado"
	msgClientHasEquipment = "No se puede eliminar el cliente porque tiene equipos asociados"

	MsgClientDeleted    = "Cliente eliminado"
	MsgEquipmentDeleted = "Equipo eliminado"
	MsgServiceUpdated   = "Servicio actualizado"
)
