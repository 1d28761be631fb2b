package httpx

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sisbib/sisbib-web/internal/domain/model"
	apperrors "github.com/sisbib/sisbib-web/internal/errors"
)

// TabListTarget is the id of the list inside a dashboard tab. Mutations
// trigger "<tab>:refresh" and the list reloads itself into this region.
const TabListTarget = "tab-list"

const tileCountUnavailable = "—"

type dashboardTab struct {
	Key   string
	Label string
	Icon  string
}

//nolint:gochecknoglobals // static tab layout
var dashboardTabs = []dashboardTab{
	{Key: TabLibros, Label: "Libros", Icon: "📚"},
	{Key: TabSolicitudes, Label: "Solicitudes", Icon: "📥"},
	{Key: TabPrestamos, Label: "Préstamos", Icon: "🏦"},
	{Key: TabSanciones, Label: "Sanciones", Icon: "⚠️"},
}

func validTab(tab string) bool {
	for _, t := range dashboardTabs {
		if t.Key == tab {
			return true
		}
	}
	return false
}

// biblioTile is a home tile with a live count. Count is "—" when the count
// could not be fetched. CountLabel qualifies counts narrower than the tab's list.
type biblioTile struct {
	dashboardTab
	Href       string
	Count      string
	CountLabel string
}

// tileCountLabels names counts that cover less than the linked tab shows.
//
//nolint:gochecknoglobals // static tile captions
var tileCountLabels = map[string]string{
	TabPrestamos: "activos",
}

// BiblioHome renders the bibliotecario landing tiles. The four counts are
// fetched concurrently; a failed count degrades only its own tile.
// GET /bibliotecario/home.
func (h *UIHandlers) BiblioHome(w http.ResponseWriter, r *http.Request) {
	counts := h.tabCounts(r.Context())
	if r.Context().Err() != nil {
		return
	}
	tiles := make([]biblioTile, 0, len(dashboardTabs))
	for _, t := range dashboardTabs {
		tiles = append(tiles, biblioTile{
			dashboardTab: t,
			Href:         "/bibliotecario/dashboard?tab=" + t.Key,
			Count:        counts[t.Key],
			CountLabel:   tileCountLabels[t.Key],
		})
	}
	data := NewTemplateData(r, PageMeta{
		Title:       "Bibliotecario - SisBib",
		PageTitle:   "Panel de Bibliotecario",
		CurrentPage: PageBiblioHome,
	}).With("Tiles", tiles).Build()
	h.renderPage(w, r, http.StatusOK, data)
}

func (h *UIHandlers) tabCounts(ctx context.Context) map[string]string {
	loaders := map[string]func(ctx context.Context) (int, error){
		TabLibros: func(ctx context.Context) (int, error) {
			items, err := h.API.ListLibros(ctx, model.LibrosListOptions{})
			return len(items), err
		},
		TabSolicitudes: func(ctx context.Context) (int, error) {
			items, err := h.API.ListSolicitudes(ctx, []model.EstadoSolicitud{model.EstadoPending, model.EstadoReady})
			return len(items), err
		},
		TabPrestamos: func(ctx context.Context) (int, error) {
			items, err := h.API.ListPrestamos(ctx, model.PrestamosListOptions{SoloActivos: true})
			return len(items), err
		},
		TabSanciones: func(ctx context.Context) (int, error) {
			items, err := h.API.ListSanciones(ctx)
			return len(items), err
		},
	}

	var mu sync.Mutex
	counts := make(map[string]string, len(loaders))
	g, gctx := errgroup.WithContext(ctx)
	for tab, load := range loaders {
		g.Go(func() error {
			n, err := load(gctx)
			v := strconv.Itoa(n)
			if err != nil {
				v = tileCountUnavailable
				if !apperrors.IsCanceled(err) {
					h.logger().WarnContext(ctx, "tile count failed", "tab", tab, "error", err)
				}
			}
			mu.Lock()
			counts[tab] = v
			mu.Unlock()
			// Tiles fail independently, so errors never cancel the group.
			return nil
		})
	}
	_ = g.Wait()
	return counts
}

func dashboardMeta() PageMeta {
	return PageMeta{Title: "Panel de Bibliotecario - SisBib", PageTitle: "Panel de Bibliotecario", CurrentPage: PageBiblioDashboard}
}

// loadTab reads the list shown by tab into data.
func (h *UIHandlers) loadTab(ctx context.Context, tab string, data map[string]any) error {
	switch tab {
	case TabSolicitudes:
		items, err := h.API.ListSolicitudes(ctx, []model.EstadoSolicitud{model.EstadoPending, model.EstadoReady})
		data["Solicitudes"] = items
		return err
	case TabPrestamos:
		items, err := h.API.ListPrestamos(ctx, model.PrestamosListOptions{})
		data["Prestamos"] = model.MarkVencidos(items, h.now(), false)
		return err
	case TabSanciones:
		items, err := h.API.ListSanciones(ctx)
		data["Sanciones"] = items
		return err
	default:
		items, err := h.API.ListLibros(ctx, model.LibrosListOptions{})
		data["Libros"] = items
		return err
	}
}

func dashboardTabFrom(r *http.Request) string {
	tab := queryString(r, "tab")
	if !validTab(tab) {
		return TabLibros
	}
	return tab
}

func (h *UIHandlers) dashboardData(r *http.Request, tab string) map[string]any {
	return NewTemplateData(r, dashboardMeta()).
		With("Tab", tab).
		With("Tabs", dashboardTabs).
		With("TiposPrestamo", model.TiposPrestamo()).
		Build()
}

// BiblioDashboard renders the tabbed panel. Tab links swap the whole panel
// into the results region; refreshes after a mutation swap only the list.
// GET /bibliotecario/dashboard?tab=libros|solicitudes|prestamos|sanciones.
func (h *UIHandlers) BiblioDashboard(w http.ResponseWriter, r *http.Request) {
	tab := dashboardTabFrom(r)
	data := h.dashboardData(r, tab)

	_, err := fetchLatest(h, r, PageBiblioDashboard, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, h.loadTab(ctx, tab, data)
	})
	if skipStale(w, err) {
		return
	}
	if err != nil {
		h.logger().WarnContext(r.Context(), "load dashboard tab failed", "tab", tab, "error", err)
		data["ListError"] = apperrors.UserMessage(err)
	}

	h.renderRegions(w, r, http.StatusOK, data, map[string]string{
		ResultsTarget: "biblio-tab-panel",
		TabListTarget: "biblio-" + tab + "-list",
	})
}

// dashboardPage rebuilds the whole panel for plain form posts. After a failed
// post the list is not re-read; the panel offers a reload link instead.
func (h *UIHandlers) dashboardPage(tab string) func(r *http.Request, form map[string]any) map[string]any {
	return func(r *http.Request, form map[string]any) map[string]any {
		data := h.dashboardData(r, tab)
		if formFailed(form) {
			data["ListStale"] = true
			return data
		}
		if err := h.loadTab(r.Context(), tab, data); err != nil && !apperrors.IsCanceled(err) {
			data["ListError"] = apperrors.UserMessage(err)
		}
		return data
	}
}

// CreateLibro adds a book to the catalog.
// POST /bibliotecario/libros.
func (h *UIHandlers) CreateLibro(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[model.CreateLibroRequest]{
		Name: "libro",
		W:    w,
		R:    r,
		Parse: func(r *http.Request) (model.CreateLibroRequest, map[string]string) {
			return model.CreateLibroRequest{
				Titulo:    formString(r, "titulo"),
				Autor:     formString(r, "autor"),
				Categoria: formString(r, "categoria"),
				ISBN:      formString(r, "isbn"),
			}, nil
		},
		Validate: h.Validate,
		Submit: func(ctx context.Context, req model.CreateLibroRequest) (string, error) {
			return "Libro agregado", h.API.CreateLibro(ctx, req)
		},
		Render:       h.formView("libro-form", h.dashboardPage(TabLibros)),
		RefreshEvent: TabLibros + eventRefreshSuffix,
		Logger:       h.logger(),
	})
}

// CreateEjemplar adds a copy of an existing book.
// POST /bibliotecario/ejemplares.
func (h *UIHandlers) CreateEjemplar(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[model.CreateEjemplarRequest]{
		Name: "ejemplar",
		W:    w,
		R:    r,
		Parse: func(r *http.Request) (model.CreateEjemplarRequest, map[string]string) {
			errs := map[string]string{}
			return model.CreateEjemplarRequest{LibroID: formInt64(r, "id_libro", errs)}, errs
		},
		Validate: h.Validate,
		Submit: func(ctx context.Context, req model.CreateEjemplarRequest) (string, error) {
			return "Ejemplar agregado", h.API.CreateEjemplar(ctx, req)
		},
		Render:       h.formView("ejemplar-form", h.dashboardPage(TabLibros)),
		RefreshEvent: TabLibros + eventRefreshSuffix,
		Logger:       h.logger(),
	})
}

type solicitudTransition struct {
	ID int64
	model.TransitionSolicitudRequest
}

// TransitionSolicitud advances a hold request.
// POST /bibliotecario/solicitudes/{id}/estado.
func (h *UIHandlers) TransitionSolicitud(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[solicitudTransition]{
		Name: "solicitud",
		W:    w,
		R:    r,
		Parse: func(r *http.Request) (solicitudTransition, map[string]string) {
			errs := map[string]string{}
			id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
			if err != nil || id <= 0 {
				errs["id"] = "Solicitud inválida."
			}
			estado, ok := model.ParseEstadoSolicitud(formString(r, "estado"))
			if !ok {
				estado = model.EstadoSolicitud(formString(r, "estado"))
			}
			return solicitudTransition{ID: id, TransitionSolicitudRequest: model.TransitionSolicitudRequest{Estado: estado}}, errs
		},
		Validate: h.Validate,
		Submit: func(ctx context.Context, req solicitudTransition) (string, error) {
			if err := h.API.TransitionSolicitud(ctx, req.ID, req.TransitionSolicitudRequest); err != nil {
				return "", err
			}
			return fmt.Sprintf("Solicitud %d → %s", req.ID, req.Estado), nil
		},
		Render:       h.formView("flash", h.dashboardPage(TabSolicitudes)),
		RefreshEvent: TabSolicitudes + eventRefreshSuffix,
		Logger:       h.logger(),
	})
}

// CreatePrestamo lends a copy. A rejected loan leaves the list untouched.
// POST /bibliotecario/prestamos.
func (h *UIHandlers) CreatePrestamo(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[model.CreatePrestamoRequest]{
		Name: "prestamo",
		W:    w,
		R:    r,
		Parse: func(r *http.Request) (model.CreatePrestamoRequest, map[string]string) {
			errs := map[string]string{}
			tipo, ok := model.ParseTipoPrestamo(formString(r, "tipo"))
			if !ok {
				tipo = model.TipoPrestamo(formString(r, "tipo"))
			}
			return model.CreatePrestamoRequest{
				UserID:     formInt64(r, "user_id", errs),
				EjemplarID: formInt64(r, "id_ejemplar", errs),
				Tipo:       tipo,
			}, errs
		},
		Validate: h.Validate,
		Submit: func(ctx context.Context, req model.CreatePrestamoRequest) (string, error) {
			return "Préstamo registrado", h.API.CreatePrestamo(ctx, req)
		},
		Render:       h.formView("prestamo-form", h.dashboardPage(TabPrestamos)),
		RefreshEvent: TabPrestamos + eventRefreshSuffix,
		Logger:       h.logger(),
	})
}

// RegisterDevolucion records a returned copy.
// POST /bibliotecario/devoluciones.
func (h *UIHandlers) RegisterDevolucion(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[model.DevolucionRequest]{
		Name: "devolucion",
		W:    w,
		R:    r,
		Parse: func(r *http.Request) (model.DevolucionRequest, map[string]string) {
			errs := map[string]string{}
			return model.DevolucionRequest{EjemplarID: formInt64(r, "id_ejemplar", errs)}, errs
		},
		Validate: h.Validate,
		Submit: func(ctx context.Context, req model.DevolucionRequest) (string, error) {
			return "Devolución registrada", h.API.RegisterDevolucion(ctx, req)
		},
		Render:       h.formView("devolucion-form", h.dashboardPage(TabPrestamos)),
		RefreshEvent: TabPrestamos + eventRefreshSuffix,
		Logger:       h.logger(),
	})
}
