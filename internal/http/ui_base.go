package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	domainauth "github.com/sisbib/sisbib-web/internal/domain/auth"
	apperrors "github.com/sisbib/sisbib-web/internal/errors"
	"github.com/sisbib/sisbib-web/internal/fetch"
	"github.com/sisbib/sisbib-web/internal/http/ui/viewmodel"
	"github.com/sisbib/sisbib-web/internal/ports"
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T        *TemplateRenderer
	API      ports.LibraryAPI
	Fetches  *fetch.Registry
	Validate *validator.Validate
	Now      func() time.Time
	IsDev    bool // Development mode flag for enhanced error reporting
	Logger   *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UIHandlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

//nolint:gochecknoglobals // static navigation per role
var roleNav = map[domainauth.Role][]viewmodel.NavItem{
	domainauth.RoleAdmin: {
		{Label: "Panel", Href: domainauth.HomeAdmin},
		{Label: "Usuarios", Href: "/admin/usuarios"},
		{Label: "Registro de ficha", Href: "/admin/registro-ficha"},
		{Label: "Préstamos", Href: "/admin/prestamos"},
	},
	domainauth.RoleBibliotecario: {
		{Label: "Inicio", Href: domainauth.HomeBibliotecario},
		{Label: "Panel", Href: "/bibliotecario/dashboard"},
	},
	domainauth.RoleCliente: {
		{Label: "Catálogo", Href: domainauth.HomeCliente},
	},
}

func navFor(role domainauth.Role, path string) []viewmodel.NavItem {
	items := make([]viewmodel.NavItem, 0, len(roleNav[role]))
	for _, item := range roleNav[role] {
		item.Active = item.Href == path
		items = append(items, item)
	}
	return items
}

// buildLayout constructs shared layout metadata from the request/session context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
		Home:        domainauth.HomePublic,
	}

	if session := GetSessionFromContext(r.Context()); session != nil {
		layout.IsAuthenticated = true
		layout.Home = domainauth.RoleHome(session)
		layout.User = &viewmodel.User{
			Name:      domainauth.DisplayName(session),
			Email:     session.User.Email,
			Role:      string(session.Role),
			RoleLabel: session.Role.Label(),
		}
		layout.Nav = navFor(session.Role, r.URL.Path)
	}
	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"Home":            layout.Home,
		"Nav":             layout.Nav,
	}
	if layout.CSRFToken != "" {
		data["CSRFToken"] = layout.CSRFToken
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// PageSpec defines metadata and an optional fetch for page-specific data.
type PageSpec struct {
	Meta  PageMeta
	Fetch func(ctx context.Context, data map[string]any) error
}

// Page builds base data, optionally fetches content data, and renders.
// A failed fetch still renders the page with 200, with the error as a banner.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := basePageData(r, spec.Meta)
	var err error
	if spec.Fetch != nil {
		err = spec.Fetch(r.Context(), data)
	}
	if skipStale(w, err) {
		return
	}
	if err != nil {
		data["Flash"] = errorFlash(apperrors.UserMessage(err))
	}
	h.renderPage(w, r, http.StatusOK, data)
}

// renderPage renders a page with htmx partial support: htmx navigations get
// the content block plus a new <title> and an out-of-band header title.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.Render(w, status, "layout", data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	page, _ := data["CurrentPage"].(string)
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})
	// partial-page carries a <title> and an out-of-band header title with the content.
	if err := h.T.Render(w, status, "partial-page", data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render: "+ContentTemplateFor(page))
	}
}

// renderResults answers filter-form requests aimed at the results region with
// only that fragment, and everything else with the page.
func (h *UIHandlers) renderResults(w http.ResponseWriter, r *http.Request, status int, data map[string]any, fragment string) {
	h.renderRegions(w, r, status, data, map[string]string{ResultsTarget: fragment})
}

// renderRegions answers htmx requests aimed at one of regions (target id to
// fragment name) with that fragment, and everything else with the page.
func (h *UIHandlers) renderRegions(w http.ResponseWriter, r *http.Request, status int, data map[string]any, regions map[string]string) {
	if fragment, ok := regions[HXTarget(r)]; ok && IsHTMX(r) {
		if err := h.T.Render(w, status, fragment, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "region render: "+fragment)
		}
		return
	}
	h.renderPage(w, r, status, data)
}

// renderFragment renders a single named template.
func (h *UIHandlers) renderFragment(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	if err := h.T.Render(w, status, name, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "fragment render: "+name)
	}
}

// skipStale ends the response with 204 when err is a cancellation or a
// superseded fetch. Nothing is rendered and no error is shown.
func skipStale(w http.ResponseWriter, err error) bool {
	if err == nil || !apperrors.IsCanceled(err) {
		return false
	}
	w.WriteHeader(http.StatusNoContent)
	return true
}

// viewStatus picks the status for a response that shows err to the user.
// htmx only swaps 2xx responses, so htmx requests always get 200.
func viewStatus(r *http.Request, err error) int {
	if err == nil || IsHTMX(r) {
		return http.StatusOK
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeRejected:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		if _, writeErr := w.Write([]byte(`<div class="template-error"><h2>Template Rendering Error</h2>` +
			`<p><strong>Context:</strong> ` + html.EscapeString(context) + `</p>` +
			`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
			`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// formView renders the outcome of a form post. htmx requests get only the
// form fragment; plain posts get the whole page built by page from the form
// state, with that state merged in.
func (h *UIHandlers) formView(fragment string, page func(r *http.Request, form map[string]any) map[string]any) FormRenderer {
	return func(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
		if IsHTMX(r) {
			h.renderFragment(w, r, status, fragment, withForm(newFragmentData(r).Build(), data))
			return
		}
		h.renderPage(w, r, status, withForm(page(r, data), data))
	}
}

// formFailed reports whether form state comes from a rejected or invalid post.
func formFailed(form map[string]any) bool {
	failed, _ := form["Failed"].(bool)
	return failed
}
