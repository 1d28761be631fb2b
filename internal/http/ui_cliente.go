package httpx

import (
	"context"
	"net/http"

	"github.com/sisbib/sisbib-web/internal/domain/model"
	apperrors "github.com/sisbib/sisbib-web/internal/errors"
)

// FiltroGenero is the catalog filter that turns the search text into a
// category match.
const FiltroGenero = "Género"

//nolint:gochecknoglobals // static filter labels
var catalogFiltros = []string{FiltroGenero, "Longitud", "Disponibilidad", "Idioma", "Año"}

// catalogQuery is the state of the catalog search form.
type catalogQuery struct {
	Q      string
	Filtro string
}

func (c catalogQuery) options() model.LibrosListOptions {
	if c.Filtro == FiltroGenero && c.Q != "" {
		return model.LibrosListOptions{Categoria: c.Q}
	}
	return model.LibrosListOptions{Q: c.Q}
}

func parseCatalogQuery(r *http.Request) catalogQuery {
	c := catalogQuery{Q: queryString(r, "q")}
	filtro := queryString(r, "filtro")
	for _, f := range catalogFiltros {
		if f == filtro {
			c.Filtro = f
		}
	}
	return c
}

// ClienteHome renders the catalog. Text search matches title, author or ISBN;
// with the Género filter active it matches the category instead.
// GET /cliente/home?q=&filtro=.
func (h *UIHandlers) ClienteHome(w http.ResponseWriter, r *http.Request) {
	c := parseCatalogQuery(r)
	data := NewTemplateData(r, PageMeta{
		Title:       "Catálogo - SisBib",
		PageTitle:   "Catálogo",
		CurrentPage: PageClienteHome,
	}).
		With("Query", c).
		With("Filtros", catalogFiltros).
		Build()

	items, err := fetchLatest(h, r, PageClienteHome, func(ctx context.Context) ([]model.Libro, error) {
		return h.API.ListLibros(ctx, c.options())
	})
	if skipStale(w, err) {
		return
	}
	if err != nil {
		h.logger().WarnContext(r.Context(), "list libros failed", "error", err)
	}
	data["Items"] = items
	if f := errorFlash(apperrors.UserMessage(err)); f != nil {
		data["Flash"] = f
	}
	h.renderResults(w, r, http.StatusOK, data, "catalogo-results")
}
