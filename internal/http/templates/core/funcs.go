// Package core holds the template helpers shared by every page.
package core

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/sisbib/sisbib-web/internal/domain/model"
)

// DateLayout is how dates appear in tables.
const DateLayout = "02-01-2006"

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
	Asset              func(string) string
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
func Funcs(deps Deps) template.FuncMap {
	asset := deps.Asset
	if asset == nil {
		asset = func(name string) string { return "/static/" + strings.TrimPrefix(name, "/") }
	}
	funcs := template.FuncMap{
		"sectionTmpl":  deps.ContentTemplateFor,
		"asset":        asset,
		"fecha":        Fecha,
		"add":          func(a, b int) int { return a + b },
		"upper":        strings.ToUpper,
		"formatNumber": FormatNumber,
		"truncateText": TruncateText,
		"estadoClass":  EstadoClass,
		"fieldError":   FieldError,
		"fieldValue":   FieldValue,
		"dict":         Dict,
		"formFor":      FormFor,
	}

	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - output of our own html/template execution, already escaped.
		return template.HTML(buf.String()), nil
	}
	return funcs
}

// Fecha renders a date as dd-mm-yyyy, or "" when absent.
func Fecha(v any) string {
	var t time.Time
	switch x := v.(type) {
	case model.Timestamp:
		t = x.Time
	case *model.Timestamp:
		if x != nil {
			t = x.Time
		}
	case time.Time:
		t = x
	case *time.Time:
		if x != nil {
			t = *x
		}
	}
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatNumber groups thousands with dots, as RUTs are written.
func FormatNumber(v any) string {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case int32:
		n = int64(x)
	default:
		return fmt.Sprint(v)
	}
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	prefix := len(s) % 3
	if prefix == 0 {
		prefix = 3
	}
	b.WriteString(s[:prefix])
	for i := prefix; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// TruncateText truncates s to maxLen runes, ending with an ellipsis when cut.
func TruncateText(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return string(runes[:1])
	}
	return string(runes[:maxLen-1]) + "…"
}

// EstadoClass picks the badge style for a hold request state.
func EstadoClass(estado model.EstadoSolicitud) string {
	switch estado {
	case model.EstadoPending:
		return "badge-warning"
	case model.EstadoReady:
		return "badge-info"
	case model.EstadoServed:
		return "badge-success"
	default:
		return "badge-light"
	}
}

// FieldError looks up the message for field. A missing map yields "".
func FieldError(errs any, field string) string {
	return lookup(errs, field)
}

// FieldValue looks up the posted value for field. A missing map yields "".
func FieldValue(form any, field string) string {
	return lookup(form, field)
}

func lookup(m any, key string) string {
	switch x := m.(type) {
	case map[string]string:
		return x[key]
	case map[string]any:
		if s, ok := x[key].(string); ok {
			return s
		}
	}
	return ""
}

// Dict builds a map from alternating key/value arguments so templates can pass
// several values to a partial.
func Dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict needs an even number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %d is %T, not string", i/2, pairs[i])
		}
		m[k] = pairs[i+1]
	}
	return m, nil
}

// FormFor narrows page data to what one embedded form needs. Form state
// (values, errors, flash) is only passed on when data["ActiveForm"] names it,
// so a page with several forms shows the outcome under the one submitted.
func FormFor(data map[string]any, name string) map[string]any {
	out := map[string]any{}
	if token, ok := data["CSRFToken"]; ok {
		out["CSRFToken"] = token
	}
	if active, _ := data["ActiveForm"].(string); active != name {
		return out
	}
	for _, k := range []string{"Form", "Errors", "Flash"} {
		if v, ok := data[k]; ok {
			out[k] = v
		}
	}
	return out
}
