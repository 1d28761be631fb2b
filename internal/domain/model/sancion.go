package model

// Sancion is a penalty issued by the backend to a member.
type Sancion struct {
	ID     int64     `json:"sancion_id"`
	Nombre string    `json:"nombre"`
	Motivo string    `json:"motivo"`
	Hasta  Timestamp `json:"hasta"`
}
