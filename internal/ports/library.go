package ports

import (
	"context"

	"github.com/sisbib/sisbib-web/internal/domain/model"
)

// LibraryAPI is the library backend as seen by the views.
// Every method returns an error classified by internal/errors:
// ErrCodeRejected carries the backend's message verbatim,
// ErrCodeUnavailable/ErrCodeTimeout are transport problems,
// ErrCodeCanceled means the caller gave up and nothing should be shown.
type LibraryAPI interface {
	Authenticator

	Health(ctx context.Context) error

	ListUsuarios(ctx context.Context, opts model.UsuariosListOptions) ([]model.Usuario, error)
	CreateUsuario(ctx context.Context, req model.CreateUsuarioRequest) (model.UsuarioCreado, error)

	ListLibros(ctx context.Context, opts model.LibrosListOptions) ([]model.Libro, error)
	CreateLibro(ctx context.Context, req model.CreateLibroRequest) error
	CreateEjemplar(ctx context.Context, req model.CreateEjemplarRequest) error

	ListPrestamos(ctx context.Context, opts model.PrestamosListOptions) ([]model.Prestamo, error)
	CreatePrestamo(ctx context.Context, req model.CreatePrestamoRequest) error
	RegisterDevolucion(ctx context.Context, req model.DevolucionRequest) error

	ListSolicitudes(ctx context.Context, estados []model.EstadoSolicitud) ([]model.Solicitud, error)
	TransitionSolicitud(ctx context.Context, id int64, req model.TransitionSolicitudRequest) error

	ListSanciones(ctx context.Context) ([]model.Sancion, error)

	// NotifyOverdue asks the backend to notify borrowers with overdue loans and
	// returns its human-readable summary.
	NotifyOverdue(ctx context.Context) (string, error)
}
