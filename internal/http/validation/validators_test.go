package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sisbib/sisbib-web/internal/domain/model"
)

func validUsuario() model.CreateUsuarioRequest {
	return model.CreateUsuarioRequest{
		Nombre:    "Ana",
		Apellido1: "Rojas",
		Apellido2: "Soto",
		RutNumero: 12345678,
		RutDV:     "K",
		Email:     "ana@biblio.cl",
		Password:  "secret",
		Role:      "Cliente",
	}
}

func TestNew_CreateUsuario(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		mutate func(*model.CreateUsuarioRequest)
		want   map[string]string
	}{
		{name: "valid", mutate: func(*model.CreateUsuarioRequest) {}},
		{
			name:   "numeric check digit",
			mutate: func(r *model.CreateUsuarioRequest) { r.RutDV = "7" },
		},
		{
			name:   "bad check digit",
			mutate: func(r *model.CreateUsuarioRequest) { r.RutDV = "X" },
			want:   map[string]string{"rut_dv": "Dígito verificador inválido (0-9 o K)."},
		},
		{
			name:   "missing nombre",
			mutate: func(r *model.CreateUsuarioRequest) { r.Nombre = "" },
			want:   map[string]string{"nombre": "Campo obligatorio."},
		},
		{
			name:   "bad email",
			mutate: func(r *model.CreateUsuarioRequest) { r.Email = "ana" },
			want:   map[string]string{"email": "Ingresa un email válido."},
		},
		{
			name:   "unknown role",
			mutate: func(r *model.CreateUsuarioRequest) { r.Role = "Root" },
			want:   map[string]string{"role": "Debe ser uno de: Cliente, Bibliotecario, Admin."},
		},
		{
			name:   "rut out of range",
			mutate: func(r *model.CreateUsuarioRequest) { r.RutNumero = 100000000 },
			want:   map[string]string{"rut_numero": "Debe ser menor que 100000000."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUsuario()
			tt.mutate(&req)
			err := v.Struct(req)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want, Errors(err))
		})
	}
}

func TestNew_OtherForms(t *testing.T) {
	v := New()

	err := v.Struct(model.CreateLibroRequest{Autor: "Borges"})
	assert.Equal(t, map[string]string{"titulo": "Campo obligatorio."}, Errors(err))

	err = v.Struct(model.CreatePrestamoRequest{UserID: 1, EjemplarID: 2, Tipo: "Casa"})
	assert.Equal(t, map[string]string{"tipo": "Debe ser uno de: Sala, Domicilio."}, Errors(err))

	require.NoError(t, v.Struct(model.TransitionSolicitudRequest{Estado: model.EstadoServed}))
	err = v.Struct(model.TransitionSolicitudRequest{Estado: model.EstadoPending})
	assert.Contains(t, Errors(err), "estado")
}

func TestErrors_NotValidation(t *testing.T) {
	assert.Nil(t, Errors(nil))
	assert.Nil(t, Errors(errors.New("boom")))
}
