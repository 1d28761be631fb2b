package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	domainauth "github.com/sisbib/sisbib-web/internal/domain/auth"
	"github.com/sisbib/sisbib-web/internal/domain/model"
	apperrors "github.com/sisbib/sisbib-web/internal/errors"
	"github.com/sisbib/sisbib-web/internal/ports"
)

var _ ports.LibraryAPI = (*Client)(nil)

// Health checks GET /api/health.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, call{endpoint: "health", method: http.MethodGet, path: "/api/health"})
	return err
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Login authenticates against POST /api/login. The returned role is the backend's,
// which may differ from the requested one.
func (c *Client) Login(ctx context.Context, creds ports.Credentials) (ports.LoginResult, error) {
	env, err := c.do(ctx, call{
		endpoint: "login",
		method:   http.MethodPost,
		path:     "/api/login",
		body: loginBody{
			Email:    strings.TrimSpace(creds.Email),
			Password: creds.Password,
			Role:     string(creds.Role),
		},
	})
	if err != nil {
		return ports.LoginResult{}, err
	}

	var user domainauth.User
	if len(env.User) > 0 {
		if decodeErr := json.Unmarshal(env.User, &user); decodeErr != nil {
			return ports.LoginResult{}, apperrors.Unavailable(fmt.Errorf("decode login user: %w", decodeErr))
		}
	}
	return ports.LoginResult{Role: env.Role, User: user}, nil
}

// ListUsuarios lists members via GET /api/users.
func (c *Client) ListUsuarios(ctx context.Context, opts model.UsuariosListOptions) ([]model.Usuario, error) {
	q := queryOf("q", opts.Q)
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	env, err := c.do(ctx, call{endpoint: "users.list", method: http.MethodGet, path: "/api/users", query: q})
	if err != nil {
		return nil, err
	}
	return decodeItems[model.Usuario](env, "users.list")
}

// CreateUsuario registers a member via POST /api/users.
func (c *Client) CreateUsuario(ctx context.Context, req model.CreateUsuarioRequest) (model.UsuarioCreado, error) {
	req.Normalize()
	env, err := c.do(ctx, call{endpoint: "users.create", method: http.MethodPost, path: "/api/users", body: req})
	if err != nil {
		return model.UsuarioCreado{}, err
	}
	created := model.UsuarioCreado{Email: req.Email}
	if len(env.User) > 0 {
		if decodeErr := json.Unmarshal(env.User, &created); decodeErr != nil {
			return model.UsuarioCreado{}, apperrors.Unavailable(fmt.Errorf("decode created user: %w", decodeErr))
		}
	}
	return created, nil
}

// ListLibros lists the catalog via GET /api/libros, by category when one is given.
func (c *Client) ListLibros(ctx context.Context, opts model.LibrosListOptions) ([]model.Libro, error) {
	q := queryOf("q", opts.Q)
	if cat := strings.TrimSpace(opts.Categoria); cat != "" {
		q = queryOf("categoria", cat)
	}
	env, err := c.do(ctx, call{endpoint: "libros.list", method: http.MethodGet, path: "/api/libros", query: q})
	if err != nil {
		return nil, err
	}
	return decodeItems[model.Libro](env, "libros.list")
}

// CreateLibro adds a book via POST /api/libros.
func (c *Client) CreateLibro(ctx context.Context, req model.CreateLibroRequest) error {
	_, err := c.do(ctx, call{endpoint: "libros.create", method: http.MethodPost, path: "/api/libros", body: req})
	return err
}

// CreateEjemplar adds a copy via POST /api/ejemplares.
func (c *Client) CreateEjemplar(ctx context.Context, req model.CreateEjemplarRequest) error {
	_, err := c.do(ctx, call{endpoint: "ejemplares.create", method: http.MethodPost, path: "/api/ejemplares", body: req})
	return err
}

// ListPrestamos lists loans via GET /api/prestamos.
func (c *Client) ListPrestamos(ctx context.Context, opts model.PrestamosListOptions) ([]model.Prestamo, error) {
	q := queryOf("tipo", opts.TipoParam())
	if s := strings.TrimSpace(opts.Q); s != "" {
		q.Set("q", s)
	}
	if opts.SoloActivos {
		q.Set("solo_activos", "1")
	}
	env, err := c.do(ctx, call{endpoint: "prestamos.list", method: http.MethodGet, path: "/api/prestamos", query: q})
	if err != nil {
		return nil, err
	}
	return decodeItems[model.Prestamo](env, "prestamos.list")
}

// CreatePrestamo lends a copy via POST /api/prestamos.
func (c *Client) CreatePrestamo(ctx context.Context, req model.CreatePrestamoRequest) error {
	_, err := c.do(ctx, call{endpoint: "prestamos.create", method: http.MethodPost, path: "/api/prestamos", body: req})
	return err
}

// RegisterDevolucion registers a return via POST /api/devoluciones.
func (c *Client) RegisterDevolucion(ctx context.Context, req model.DevolucionRequest) error {
	_, err := c.do(ctx, call{endpoint: "devoluciones.create", method: http.MethodPost, path: "/api/devoluciones", body: req})
	return err
}

// ListSolicitudes lists hold requests in the given states via GET /api/solicitudes.
func (c *Client) ListSolicitudes(ctx context.Context, estados []model.EstadoSolicitud) ([]model.Solicitud, error) {
	parts := make([]string, 0, len(estados))
	for _, e := range estados {
		parts = append(parts, string(e))
	}
	q := queryOf("estado", strings.Join(parts, ","))
	env, err := c.do(ctx, call{endpoint: "solicitudes.list", method: http.MethodGet, path: "/api/solicitudes", query: q})
	if err != nil {
		return nil, err
	}
	return decodeItems[model.Solicitud](env, "solicitudes.list")
}

// TransitionSolicitud moves a hold request via PATCH /api/solicitudes/{id}.
func (c *Client) TransitionSolicitud(ctx context.Context, id int64, req model.TransitionSolicitudRequest) error {
	if id <= 0 {
		return apperrors.ValidationField("id", "Solicitud inválida")
	}
	_, err := c.do(ctx, call{
		endpoint: "solicitudes.transition",
		method:   http.MethodPatch,
		path:     "/api/solicitudes/" + strconv.FormatInt(id, 10),
		body:     req,
	})
	return err
}

// ListSanciones lists penalties via GET /api/sanciones.
func (c *Client) ListSanciones(ctx context.Context) ([]model.Sancion, error) {
	env, err := c.do(ctx, call{endpoint: "sanciones.list", method: http.MethodGet, path: "/api/sanciones"})
	if err != nil {
		return nil, err
	}
	return decodeItems[model.Sancion](env, "sanciones.list")
}

// NotifyOverdue triggers overdue notifications via POST /api/notify-overdue.
func (c *Client) NotifyOverdue(ctx context.Context) (string, error) {
	env, err := c.do(ctx, call{endpoint: "notify_overdue", method: http.MethodPost, path: "/api/notify-overdue"})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// queryOf builds query values holding key=value, or empty values when value is blank.
func queryOf(key, value string) url.Values {
	q := url.Values{}
	if v := strings.TrimSpace(value); v != "" {
		q.Set(key, v)
	}
	return q
}
