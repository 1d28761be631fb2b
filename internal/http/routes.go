package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	sisbib "github.com/sisbib/sisbib-web"
	domainauth "github.com/sisbib/sisbib-web/internal/domain/auth"
	"github.com/sisbib/sisbib-web/internal/domain/model"
	"github.com/sisbib/sisbib-web/internal/fetch"
	"github.com/sisbib/sisbib-web/internal/http/validation"
	"github.com/sisbib/sisbib-web/internal/ports"
	"github.com/sisbib/sisbib-web/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth    *service.AuthService
	API     ports.LibraryAPI
	Store   ports.Pinger // optional: pinged by /readyz
	Fetches *fetch.Registry
	// Validate defaults to validation.New().
	Validate *validator.Validate
	// TemplateFS and StaticFS override the embedded frontend (tests, dev).
	TemplateFS fs.FS
	StaticFS   fs.FS

	CookieDomain       string
	CompressionEnabled bool
	CompressionLevel   int
	MetricsEnabled     bool
	Now                func() time.Time
	IsDev              bool         // Development mode: templates and assets from disk
	Logger             *slog.Logger // Logger for template and HTTP errors (optional)
}

//nolint:gochecknoglobals // static access table, read-only
var viewRoles = map[string][]domainauth.Role{
	domainauth.HomeAdmin:         {domainauth.RoleAdmin},
	"/admin/usuarios":            {domainauth.RoleAdmin},
	"/admin/registro-ficha":      {domainauth.RoleAdmin},
	prestamosPath:                {domainauth.RoleAdmin},
	"/admin/prestamos-domicilio": {domainauth.RoleAdmin},
	"/admin/prestamos-sala":      {domainauth.RoleAdmin},
	domainauth.HomeBibliotecario: {domainauth.RoleBibliotecario},
	"/bibliotecario/dashboard":   {domainauth.RoleBibliotecario},
	domainauth.HomeCliente:       {domainauth.RoleCliente},
}

// RouteRoles reports which roles may open the view at path. The query string
// is ignored. ok is false for paths that are not protected views.
func RouteRoles(path string) ([]domainauth.Role, bool) {
	path, _, _ = strings.Cut(path, "?")
	roles, ok := viewRoles[path]
	return roles, ok
}

func mustRoles(path string) []domainauth.Role {
	roles, ok := RouteRoles(path)
	if !ok {
		panic("no roles registered for view " + path) //nolint:forbidigo // programmer error at startup
	}
	return roles
}

// NewRouter creates and configures the HTTP router with its middleware chain.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templateFS, staticFS, err := frontendFS(services)
	if err != nil {
		return nil, err
	}
	ui, err := setupUIHandlers(services, templateFS, staticFS, logger)
	if err != nil {
		return nil, err
	}

	guard := &Guard{
		Sessions:     services.Auth,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
		Unavailable:  ui.Unavailable,
	}
	csrf := CSRFProtection(CSRFConfig{
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	})
	auth := &AuthHandlers{
		Svc:          services.Auth,
		UI:           ui,
		CookieDomain: services.CookieDomain,
		RouteRoles:   RouteRoles,
		Logger:       logger,
	}
	ready := &ReadinessHandlers{Store: services.Store, Logger: logger}
	if services.API != nil {
		ready.Backend = services.API.Health
	}

	mux := http.NewServeMux()
	rt := routeTable{mux: mux, guard: guard, csrf: csrf}

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)
	mux.HandleFunc("GET /readyz", ready.Ready)
	if services.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}
	mux.Handle("GET /static/", staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))))

	registerPublicRoutes(rt, ui, auth)
	registerAdminRoutes(rt, ui)
	registerBibliotecarioRoutes(rt, ui)
	registerClienteRoutes(rt, ui)

	var handler http.Handler = mux
	if services.CompressionEnabled {
		handler = Compression(CompressionConfig{Level: services.CompressionLevel, Logger: logger})(handler)
	}
	handler = Metrics()(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler, nil
}

// routeTable registers browser routes behind the session guard and CSRF check.
type routeTable struct {
	mux   *http.ServeMux
	guard *Guard
	csrf  func(http.Handler) http.Handler
}

// public serves pattern to anyone. The session is still loaded for the navbar.
func (rt routeTable) public(pattern string, h http.HandlerFunc) {
	rt.mux.Handle(pattern, rt.guard.Load(rt.csrf(h)))
}

// anonymous serves pattern to visitors without a session; signed-in users go home.
func (rt routeTable) anonymous(pattern string, h http.HandlerFunc) {
	rt.mux.Handle(pattern, rt.guard.Load(rt.guard.Anonymous(rt.csrf(h))))
}

// protected serves pattern only to sessions holding one of roles.
func (rt routeTable) protected(pattern string, roles []domainauth.Role, h http.HandlerFunc) {
	rt.mux.Handle(pattern, rt.guard.Load(rt.guard.Require(roles...)(rt.csrf(h))))
}

// view registers a GET page whose roles come from the access table.
func (rt routeTable) view(path string, h http.HandlerFunc) {
	rt.protected("GET "+path, mustRoles(path), h)
}

func registerPublicRoutes(rt routeTable, ui *UIHandlers, auth *AuthHandlers) {
	rt.anonymous("GET /{$}", ui.Landing)
	rt.anonymous("GET "+domainauth.LoginPath, auth.LoginPage)
	rt.anonymous("POST "+domainauth.LoginPath, auth.Login)
	rt.protected("POST /logout", nil, auth.Logout)
	rt.public("/", ui.NotFound)
}

func registerAdminRoutes(rt routeTable, ui *UIHandlers) {
	admin := mustRoles(domainauth.HomeAdmin)
	rt.view(domainauth.HomeAdmin, ui.AdminDashboard)
	rt.view("/admin/usuarios", ui.AdminUsuarios)
	rt.view("/admin/registro-ficha", ui.RegistroFicha)
	rt.protected("POST /admin/registro-ficha", admin, ui.CreateUsuario)
	rt.view(prestamosPath, ui.AdminPrestamos())
	rt.view("/admin/prestamos-domicilio", ui.AdminPrestamos(model.TipoDomicilio))
	rt.view("/admin/prestamos-sala", ui.AdminPrestamos(model.TipoSala))
	rt.protected("POST /admin/prestamos/notify-overdue", admin, ui.NotifyOverdue)
}

func registerBibliotecarioRoutes(rt routeTable, ui *UIHandlers) {
	biblio := mustRoles(domainauth.HomeBibliotecario)
	rt.view(domainauth.HomeBibliotecario, ui.BiblioHome)
	rt.view("/bibliotecario/dashboard", ui.BiblioDashboard)
	rt.protected("POST /bibliotecario/libros", biblio, ui.CreateLibro)
	rt.protected("POST /bibliotecario/ejemplares", biblio, ui.CreateEjemplar)
	rt.protected("POST /bibliotecario/solicitudes/{id}/estado", biblio, ui.TransitionSolicitud)
	rt.protected("POST /bibliotecario/prestamos", biblio, ui.CreatePrestamo)
	rt.protected("POST /bibliotecario/devoluciones", biblio, ui.RegisterDevolucion)
}

func registerClienteRoutes(rt routeTable, ui *UIHandlers) {
	rt.view(domainauth.HomeCliente, ui.ClienteHome)
}

const staticPathFromRoot = "frontend/static"

// frontendFS picks the template and static filesystems: explicit overrides
// first, then disk in dev mode, then the embedded copies.
func frontendFS(services RouterServices) (templates, static fs.FS, err error) {
	templates, static = services.TemplateFS, services.StaticFS
	if templates == nil {
		if services.IsDev {
			templates = os.DirFS(TemplatePathFromRoot)
		} else if templates, err = fs.Sub(sisbib.TemplateFS, TemplatePathFromRoot); err != nil {
			return nil, nil, err
		}
	}
	if static == nil {
		if services.IsDev {
			static = os.DirFS(staticPathFromRoot)
		} else if static, err = fs.Sub(sisbib.StaticFS, staticPathFromRoot); err != nil {
			return nil, nil, err
		}
	}
	return templates, static, nil
}

// setupUIHandlers creates UI handlers with template renderer and asset resolver.
func setupUIHandlers(services RouterServices, templateFS, staticFS fs.FS, logger *slog.Logger) (*UIHandlers, error) {
	resolver, err := NewAssetResolver(staticFS, services.IsDev, logger)
	if err != nil {
		logger.Warn("asset fingerprinting failed; serving unversioned URLs", slog.Any("error", err))
		resolver = nil
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Resolver:   resolver,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	validate := services.Validate
	if validate == nil {
		validate = validation.New()
	}
	return &UIHandlers{
		T:        tr,
		API:      services.API,
		Fetches:  services.Fetches,
		Validate: validate,
		Now:      services.Now,
		IsDev:    services.IsDev,
		Logger:   logger,
	}, nil
}

// staticWithCacheHeaders lets browsers keep fingerprinted URLs (?v=<hash>)
// forever and revalidate everything else.
func staticWithCacheHeaders(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") != "" {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}
		handler.ServeHTTP(w, r)
	})
}
