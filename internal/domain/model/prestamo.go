package model

import (
	"strings"
	"time"
)

// TipoPrestamo distinguishes reading-room loans from take-home loans.
type TipoPrestamo string

const (
	TipoSala      TipoPrestamo = "Sala"
	TipoDomicilio TipoPrestamo = "Domicilio"
)

// TiposPrestamo lists every loan type in display order.
func TiposPrestamo() []TipoPrestamo {
	return []TipoPrestamo{TipoSala, TipoDomicilio}
}

// ParseTipoPrestamo matches s case-insensitively against the known loan types.
func ParseTipoPrestamo(s string) (TipoPrestamo, bool) {
	for _, t := range TiposPrestamo() {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}

// Prestamo is a loan joined with its member and book.
type Prestamo struct {
	ID               int64        `json:"prestamo_id"`
	FechaReserva     Timestamp    `json:"fecha_reserva"`
	FechaVencimiento Timestamp    `json:"fecha_vencimiento"`
	Tipo             TipoPrestamo `json:"tipo_prestamo"`
	UserID           int64        `json:"user_id"`
	Nombre           string       `json:"nombre"`
	Apellido1        string       `json:"apellido1"`
	Apellido2        string       `json:"apellido2"`
	Email            string       `json:"email"`
	LibroID          int64        `json:"id_libro"`
	Titulo           string       `json:"titulo"`
	Autor            string       `json:"autor"`
	Categoria        string       `json:"categoria,omitempty"`
}

// Usuario renders the borrower's full name.
func (p Prestamo) Usuario() string {
	return joinNonEmpty(p.Nombre, p.Apellido1, p.Apellido2)
}

// Vencido reports whether the due date is before now. Loans without a due date never expire.
func (p Prestamo) Vencido(now time.Time) bool {
	return !p.FechaVencimiento.IsZero() && p.FechaVencimiento.Before(now)
}

// PrestamosListOptions filters loans. An empty Tipos slice means all types.
type PrestamosListOptions struct {
	Tipos       []TipoPrestamo
	Q           string
	SoloActivos bool
}

// TipoParam renders Tipos as the comma-joined query value.
func (o PrestamosListOptions) TipoParam() string {
	parts := make([]string, 0, len(o.Tipos))
	for _, t := range o.Tipos {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ",")
}

// PrestamoRow is a loan with its overdue flag resolved at fetch time.
type PrestamoRow struct {
	Prestamo
	Vencido bool
}

// MarkVencidos resolves the overdue flag for each loan and, when soloVencidos
// is set, keeps only the overdue ones.
func MarkVencidos(items []Prestamo, now time.Time, soloVencidos bool) []PrestamoRow {
	rows := make([]PrestamoRow, 0, len(items))
	for _, p := range items {
		v := p.Vencido(now)
		if soloVencidos && !v {
			continue
		}
		rows = append(rows, PrestamoRow{Prestamo: p, Vencido: v})
	}
	return rows
}

// CreatePrestamoRequest lends a copy to a member.
type CreatePrestamoRequest struct {
	UserID     int64        `json:"user_id"     validate:"required,gt=0"`
	EjemplarID int64        `json:"id_ejemplar" validate:"required,gt=0"`
	Tipo       TipoPrestamo `json:"tipo"        validate:"required,oneof=Sala Domicilio"`
}

// DevolucionRequest registers the return of a copy.
type DevolucionRequest struct {
	EjemplarID int64 `json:"id_ejemplar" validate:"required,gt=0"`
}
