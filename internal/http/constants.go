package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageLanding     = "landing"
	PageLogin       = "login"
	PageNotFound    = "notfound"
	PageUnavailable = "unavailable"

	// Admin pages.
	PageAdminDashboard     = "admin-dashboard"
	PageAdminUsuarios      = "admin-usuarios"
	PageAdminRegistroFicha = "admin-registro-ficha"
	PageAdminPrestamos     = "admin-prestamos"

	// Bibliotecario pages.
	PageBiblioHome      = "biblio-home"
	PageBiblioDashboard = "biblio-dashboard"

	// Cliente pages.
	PageClienteHome = "cliente-home"
)

// Ids of the swappable regions inside pages. Filter forms target ResultsTarget;
// each mutation form targets its own container.
const (
	ResultsTarget = "results"

	eventRefreshSuffix = ":refresh"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Dashboard tabs for the bibliotecario panel.
const (
	TabLibros      = "libros"
	TabSolicitudes = "solicitudes"
	TabPrestamos   = "prestamos"
	TabSanciones   = "sanciones"
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageLanding:            "landing-content",
	PageLogin:              "login-content",
	PageNotFound:           "notfound-content",
	PageUnavailable:        "unavailable-content",
	PageAdminDashboard:     "admin-dashboard-content",
	PageAdminUsuarios:      "admin-usuarios-content",
	PageAdminRegistroFicha: "admin-registro-ficha-content",
	PageAdminPrestamos:     "admin-prestamos-content",
	PageBiblioHome:         "biblio-home-content",
	PageBiblioDashboard:    "biblio-dashboard-content",
	PageClienteHome:        "cliente-home-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to notfound-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "notfound-content"
}
