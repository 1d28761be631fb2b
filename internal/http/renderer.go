package httpx

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	httpassets "github.com/sisbib/sisbib-web/internal/http/assets"
	corefuncs "github.com/sisbib/sisbib-web/internal/http/templates/core"
)

// AssetResolver aliases the asset resolver so callers only import httpx.
type AssetResolver = httpassets.AssetResolver

// NewAssetResolver fingerprints the static files in fsys.
func NewAssetResolver(fsys fs.FS, devMode bool, logger *slog.Logger) (*AssetResolver, error) {
	return httpassets.NewAssetResolver(fsys, devMode, logger)
}

// TemplateRenderer renders HTML templates for UI responses.
type TemplateRenderer struct {
	t        *template.Template
	resolver *AssetResolver
	logger   *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS          // Filesystem containing templates (required)
	Resolver   *AssetResolver // Versioned static URLs (optional)
	Logger     *slog.Logger   // Logger for template errors (optional)
}

// NewTemplateRenderer constructs a renderer by parsing templates from the provided config.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	renderer := &TemplateRenderer{resolver: cfg.Resolver, logger: cfg.Logger}

	var t *template.Template
	funcs := corefuncs.Funcs(corefuncs.Deps{
		Template:           &t,
		ContentTemplateFor: ContentTemplateFor,
		Asset:              renderer.resolver.Resolve,
	})
	t, err := template.New("root").Funcs(funcs).ParseFS(cfg.TemplateFS,
		"*.tmpl",
		"pages/*.tmpl",
		"partials/*.tmpl",
	)
	if err != nil {
		cfg.Logger.Error("template parsing failed",
			slog.Any("error", err),
			slog.String("phase", "initialization"),
		)
		return nil, err
	}
	renderer.t = t
	return renderer, nil
}

// HasTemplate reports whether name is defined.
func (r *TemplateRenderer) HasTemplate(name string) bool {
	return r.t.Lookup(name) != nil
}

// Render executes templateName into a buffer and, only when that succeeds,
// writes it with status.
func (r *TemplateRenderer) Render(w http.ResponseWriter, status int, templateName string, data any) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, templateName, data); err != nil {
		r.logger.Error("template execution failed",
			slog.String("template", templateName),
			slog.Any("error", err),
		)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error("failed to write rendered template",
			slog.String("template", templateName),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}
