package model

import (
	"strconv"
	"strings"
)

// Usuario is a library member as listed by the backend.
type Usuario struct {
	ID        int64     `json:"user_id"`
	Nombre    string    `json:"nombre"`
	Apellido1 string    `json:"apellido1"`
	Apellido2 string    `json:"apellido2"`
	RutNumero int64     `json:"rut_numero"`
	RutDV     string    `json:"rut_dv"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt Timestamp `json:"created_at"`
}

// NombreCompleto joins the non-empty name parts.
func (u Usuario) NombreCompleto() string {
	return joinNonEmpty(u.Nombre, u.Apellido1, u.Apellido2)
}

// RUT renders the national id as "numero-dv".
func (u Usuario) RUT() string {
	if u.RutNumero == 0 {
		return ""
	}
	return strconv.FormatInt(u.RutNumero, 10) + "-" + u.RutDV
}

// UsuariosListOptions filters the member list.
type UsuariosListOptions struct {
	Q     string
	Limit int
}

// CreateUsuarioRequest registers a new member.
type CreateUsuarioRequest struct {
	Nombre    string `json:"nombre"     validate:"required,max=100"`
	Apellido1 string `json:"apellido1"  validate:"required,max=100"`
	Apellido2 string `json:"apellido2"  validate:"required,max=100"`
	RutNumero int64  `json:"rut_numero" validate:"required,gt=0,lt=100000000"`
	RutDV     string `json:"rut_dv"     validate:"required,rutdv"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=4"`
	Role      string `json:"role"       validate:"required,oneof=Cliente Bibliotecario Admin"`
}

// Normalize trims fields and uppercases the check digit.
func (r *CreateUsuarioRequest) Normalize() {
	r.Nombre = strings.TrimSpace(r.Nombre)
	r.Apellido1 = strings.TrimSpace(r.Apellido1)
	r.Apellido2 = strings.TrimSpace(r.Apellido2)
	r.RutDV = strings.ToUpper(strings.TrimSpace(r.RutDV))
	r.Email = strings.TrimSpace(r.Email)
}

// UsuarioCreado is the backend's confirmation of a new member.
type UsuarioCreado struct {
	ID        int64     `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt Timestamp `json:"created_at"`
}

// ValidRutDV reports whether dv is a single check digit 0-9 or K.
func ValidRutDV(dv string) bool {
	dv = strings.ToUpper(strings.TrimSpace(dv))
	if len(dv) != 1 {
		return false
	}
	c := dv[0]
	return (c >= '0' && c <= '9') || c == 'K'
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
