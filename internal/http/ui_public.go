package httpx

import (
	"net/http"
)

// Landing renders the public welcome page.
// GET /.
func (h *UIHandlers) Landing(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{Meta: PageMeta{
		Title:       "SisBib",
		PageTitle:   "Biblioteca",
		CurrentPage: PageLanding,
	}})
}

// NotFound renders the 404 page.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	data := basePageData(r, PageMeta{
		Title:       "Página no encontrada - SisBib",
		PageTitle:   "Página no encontrada",
		CurrentPage: PageNotFound,
	})
	h.renderPage(w, r, http.StatusNotFound, data)
}

// Unavailable renders the 503 page shown when sessions cannot be resolved.
func (h *UIHandlers) Unavailable(w http.ResponseWriter, r *http.Request) {
	data := basePageData(r, PageMeta{
		Title:       "Servicio no disponible - SisBib",
		PageTitle:   "Servicio no disponible",
		CurrentPage: PageUnavailable,
	})
	w.Header().Set("Retry-After", "5")
	h.renderPage(w, r, http.StatusServiceUnavailable, data)
}
