package agenda

import "github.com/promeza/agenda-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

const (
	StatusPendiente  = "PENDIENTE"
	StatusCompletada = "COMPLETADA"
	StatusCancelada  = "CANCELADA"
	StatusNoAsistio  = "NO_ASISTIO"
)

// Only PENDIENTE appointments hold capacity; everything else has released
// its slot.

func CanCancel(current string) error {
	if current != StatusPendiente {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current string) error {
	if current != StatusPendiente {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() string {
	return StatusPendiente
}
