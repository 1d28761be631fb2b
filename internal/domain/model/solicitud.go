package model

import "strings"

// EstadoSolicitud is the lifecycle state of a hold request.
type EstadoSolicitud string

const (
	EstadoPending EstadoSolicitud = "pending"
	EstadoReady   EstadoSolicitud = "ready"
	EstadoServed  EstadoSolicitud = "served"
)

// ParseEstadoSolicitud normalizes s and reports whether it is a known state.
func ParseEstadoSolicitud(s string) (EstadoSolicitud, bool) {
	e := EstadoSolicitud(strings.ToLower(strings.TrimSpace(s)))
	switch e {
	case EstadoPending, EstadoReady, EstadoServed:
		return e, true
	default:
		return "", false
	}
}

// Next returns the state a request advances to, if any.
// Requests move pending -> ready -> served and never back.
func (e EstadoSolicitud) Next() (EstadoSolicitud, bool) {
	switch e {
	case EstadoPending:
		return EstadoReady, true
	case EstadoReady:
		return EstadoServed, true
	default:
		return "", false
	}
}

// CanTransition reports whether moving from e to to is allowed.
func (e EstadoSolicitud) CanTransition(to EstadoSolicitud) bool {
	next, ok := e.Next()
	return ok && next == to
}

// Solicitud is a hold request for a book copy.
type Solicitud struct {
	ID     int64           `json:"solicitud_id"`
	Nombre string          `json:"nombre"`
	Titulo string          `json:"titulo,omitempty"`
	Estado EstadoSolicitud `json:"estado"`
}

// TransitionSolicitudRequest moves a hold request to a new state.
type TransitionSolicitudRequest struct {
	Estado EstadoSolicitud `json:"estado" validate:"required,oneof=ready served"`
}
