package httpx

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/sisbib/sisbib-web/internal/domain/model"
	apperrors "github.com/sisbib/sisbib-web/internal/errors"
)

const (
	usuariosListLimit = 200
	prestamosPath     = "/admin/prestamos"

	msgNotifyOverdueDefault = "Notificaciones enviadas con éxito."

	eventUsuariosRefresh = "usuarios" + eventRefreshSuffix
)

type adminTile struct {
	Href  string
	Icon  string
	Title string
}

//nolint:gochecknoglobals // static dashboard layout
var adminTiles = []adminTile{
	{Href: "/admin/usuarios", Icon: "👥", Title: "Usuarios"},
	{Href: "/admin/registro-ficha", Icon: "🗂️", Title: "Registro de ficha"},
	{Href: "/admin/prestamos-domicilio", Icon: "🏠", Title: "Prestamos domicilio"},
	{Href: "/admin/prestamos-sala", Icon: "🏢", Title: "Prestamos sala"},
}

// AdminDashboard renders the admin tool tiles.
// GET /admin/dashboard.
func (h *UIHandlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Dashboard - SisBib", PageTitle: "Dashboard", CurrentPage: PageAdminDashboard},
		Fetch: func(_ context.Context, data map[string]any) error {
			data["Tiles"] = adminTiles
			return nil
		},
	})
}

// AdminUsuarios lists members, optionally filtered by q.
// GET /admin/usuarios?q=.
func (h *UIHandlers) AdminUsuarios(w http.ResponseWriter, r *http.Request) {
	q := queryString(r, "q")
	data := NewTemplateData(r, PageMeta{
		Title:       "Usuarios - SisBib",
		PageTitle:   "Usuarios",
		CurrentPage: PageAdminUsuarios,
	}).With("Q", q).Build()

	items, err := fetchLatest(h, r, PageAdminUsuarios, func(ctx context.Context) ([]model.Usuario, error) {
		return h.API.ListUsuarios(ctx, model.UsuariosListOptions{Q: q, Limit: usuariosListLimit})
	})
	if skipStale(w, err) {
		return
	}
	if err != nil {
		h.logger().WarnContext(r.Context(), "list usuarios failed", "error", err)
	}
	data["Items"] = items
	if f := errorFlash(apperrors.UserMessage(err)); f != nil {
		data["Flash"] = f
	}
	h.renderResults(w, r, http.StatusOK, data, "usuarios-results")
}

func registroFichaMeta() PageMeta {
	return PageMeta{Title: "Registro de ficha - SisBib", PageTitle: "Registro de ficha", CurrentPage: PageAdminRegistroFicha}
}

// usuarioRoles are the backend role names offered when registering a member.
//
//nolint:gochecknoglobals // static select options
var usuarioRoles = []string{"Cliente", "Bibliotecario", "Admin"}

func (h *UIHandlers) registroFichaPage(r *http.Request, _ map[string]any) map[string]any {
	return NewTemplateData(r, registroFichaMeta()).
		With("Roles", usuarioRoles).
		With("ActiveForm", "usuario").
		With("Form", map[string]string{"role": usuarioRoles[0]}).
		Build()
}

// RegistroFicha renders the member registration form.
// GET /admin/registro-ficha.
func (h *UIHandlers) RegistroFicha(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, h.registroFichaPage(r, nil))
}

// CreateUsuario registers a member.
// POST /admin/registro-ficha.
func (h *UIHandlers) CreateUsuario(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[model.CreateUsuarioRequest]{
		Name:     "usuario",
		W:        w,
		R:        r,
		Parse:    parseCreateUsuario,
		Validate: h.Validate,
		Submit: func(ctx context.Context, req model.CreateUsuarioRequest) (string, error) {
			created, err := h.API.CreateUsuario(ctx, req)
			if err != nil {
				return "", err
			}
			email := created.Email
			if email == "" {
				email = req.Email
			}
			return fmt.Sprintf("Usuario %s creado con éxito.", email), nil
		},
		Render: func(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
			data["Roles"] = usuarioRoles
			h.formView("usuario-form", h.registroFichaPage)(w, r, status, data)
		},
		RefreshEvent: eventUsuariosRefresh,
		Secret:       []string{"password"},
		Logger:       h.logger(),
	})
}

func parseCreateUsuario(r *http.Request) (model.CreateUsuarioRequest, map[string]string) {
	errs := map[string]string{}
	req := model.CreateUsuarioRequest{
		Nombre:    formString(r, "nombre"),
		Apellido1: formString(r, "apellido1"),
		Apellido2: formString(r, "apellido2"),
		RutNumero: formInt64(r, "rut_numero", errs),
		RutDV:     formString(r, "rut_dv"),
		Email:     formString(r, "email"),
		Password:  r.PostFormValue("password"),
		Role:      formString(r, "role"),
	}
	req.Normalize()
	return req, errs
}

// prestamosFilter is the state of the loans filter form.
type prestamosFilter struct {
	Path         string
	Q            string
	Tipos        []model.TipoPrestamo
	SoloVencidos bool
}

// Checked reports whether the tipo checkbox is on.
func (f prestamosFilter) Checked(t model.TipoPrestamo) bool {
	return slices.Contains(f.Tipos, t)
}

// parsePrestamosFilter reads the filter. Before the form is first submitted
// (no f=1 marker) the preset tipos apply, or every tipo when none is preset.
func parsePrestamosFilter(r *http.Request, preset []model.TipoPrestamo) prestamosFilter {
	q := r.URL.Query()
	f := prestamosFilter{
		Path:         r.URL.Path,
		Q:            queryString(r, "q"),
		SoloVencidos: queryFlag(r, "vencidos"),
	}
	if q.Get("f") == "" {
		f.Tipos = preset
		if len(f.Tipos) == 0 {
			f.Tipos = model.TiposPrestamo()
		}
		return f
	}
	for _, v := range q["tipo"] {
		if t, ok := model.ParseTipoPrestamo(v); ok && !f.Checked(t) {
			f.Tipos = append(f.Tipos, t)
		}
	}
	return f
}

func prestamosMeta(preset []model.TipoPrestamo) PageMeta {
	title := "Préstamos"
	if len(preset) == 1 {
		title = "Préstamos " + map[model.TipoPrestamo]string{
			model.TipoDomicilio: "domicilio",
			model.TipoSala:      "sala",
		}[preset[0]]
	}
	return PageMeta{Title: title + " - SisBib", PageTitle: title, CurrentPage: PageAdminPrestamos}
}

// loadPrestamos fetches loans for the filter. With no tipo selected the list
// is empty and the backend is not called.
func (h *UIHandlers) loadPrestamos(r *http.Request, f prestamosFilter) ([]model.PrestamoRow, error) {
	if len(f.Tipos) == 0 {
		return []model.PrestamoRow{}, nil
	}
	items, err := fetchLatest(h, r, PageAdminPrestamos, func(ctx context.Context) ([]model.Prestamo, error) {
		return h.API.ListPrestamos(ctx, model.PrestamosListOptions{Tipos: f.Tipos, Q: f.Q})
	})
	if err != nil {
		return nil, err
	}
	return model.MarkVencidos(items, h.now(), f.SoloVencidos), nil
}

// AdminPrestamos lists loans with the tipo checkboxes, text search and the
// overdue-only toggle. preset narrows the initial tipos for the per-tipo pages.
// GET /admin/prestamos, /admin/prestamos-domicilio, /admin/prestamos-sala.
func (h *UIHandlers) AdminPrestamos(preset ...model.TipoPrestamo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := parsePrestamosFilter(r, preset)
		data := NewTemplateData(r, prestamosMeta(preset)).
			With("Filter", f).
			With("Tipos", model.TiposPrestamo()).
			Build()

		rows, err := h.loadPrestamos(r, f)
		if skipStale(w, err) {
			return
		}
		if err != nil {
			h.logger().WarnContext(r.Context(), "list prestamos failed", "error", err)
		}
		data["Items"] = rows
		if fl := errorFlash(apperrors.UserMessage(err)); fl != nil {
			data["Flash"] = fl
		}
		h.renderResults(w, r, http.StatusOK, data, "prestamos-results")
	}
}

// NotifyOverdue asks the backend to notify overdue borrowers, then shows its
// message above a refreshed list. The filter travels in the posted form.
// POST /admin/prestamos/notify-overdue.
func (h *UIHandlers) NotifyOverdue(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	// The list is re-read with the same filter the page showed.
	r.URL.RawQuery = r.PostForm.Encode()
	f := parsePrestamosFilter(r, nil)
	f.Path = prestamosPath
	data := NewTemplateData(r, prestamosMeta(nil)).
		With("Filter", f).
		With("Tipos", model.TiposPrestamo()).
		Build()

	msg, err := h.API.NotifyOverdue(r.Context())
	if skipStale(w, err) {
		return
	}
	if err != nil {
		h.logger().WarnContext(r.Context(), "notify overdue failed", "error", err)
		data["Flash"] = errorFlash(apperrors.UserMessage(err))
	} else {
		if msg == "" {
			msg = msgNotifyOverdueDefault
		}
		data["Flash"] = successFlash(msg)
	}

	rows, listErr := h.loadPrestamos(r, f)
	if skipStale(w, listErr) {
		return
	}
	if listErr != nil {
		h.logger().WarnContext(r.Context(), "list prestamos failed", "error", listErr)
		if err == nil {
			data["Flash"] = errorFlash(apperrors.UserMessage(listErr))
		}
	}
	data["Items"] = rows
	h.renderResults(w, r, http.StatusOK, data, "prestamos-results")
}
