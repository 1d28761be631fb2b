package httpx

import (
	"net/http"
)

// Flash is a one-shot status line shown above a form or list.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

func successFlash(msg string) *Flash { return &Flash{Kind: "success", Message: msg} }

func errorFlash(msg string) *Flash {
	if msg == "" {
		return nil
	}
	return &Flash{Kind: "error", Message: msg}
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{data: basePageData(r, meta)}
}

// newFragmentData starts a data map for a fragment render, carrying only the
// CSRF token forms need.
func newFragmentData(r *http.Request) *TemplateDataBuilder {
	data := map[string]any{}
	if token := GetCSRFToken(r); token != "" {
		data["CSRFToken"] = token
	}
	return &TemplateDataBuilder{data: data}
}

// WithFlash sets the status line. A nil flash is ignored.
func (b *TemplateDataBuilder) WithFlash(f *Flash) *TemplateDataBuilder {
	if f != nil {
		b.data["Flash"] = f
	}
	return b
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	return b.WithFlash(errorFlash(msg))
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}
