package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	domainauth "github.com/sisbib/sisbib-web/internal/domain/auth"
	"github.com/sisbib/sisbib-web/internal/http/ui/viewmodel"
)

func TestNewTemplateData(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	meta := PageMeta{
		Title:       "Test Title",
		PageTitle:   "Test Page",
		CurrentPage: "test",
	}

	data := NewTemplateData(r, meta).Build()

	if data["Title"] != "Test Title" {
		t.Errorf("Title = %v, want %v", data["Title"], "Test Title")
	}
	if data["PageTitle"] != "Test Page" {
		t.Errorf("PageTitle = %v, want %v", data["PageTitle"], "Test Page")
	}
	if data["CurrentPage"] != "test" {
		t.Errorf("CurrentPage = %v, want %v", data["CurrentPage"], "test")
	}
	if data["IsAuthenticated"] != false {
		t.Errorf("IsAuthenticated = %v, want %v", data["IsAuthenticated"], false)
	}
	if data["Home"] != domainauth.HomePublic {
		t.Errorf("Home = %v, want %v", data["Home"], domainauth.HomePublic)
	}
	if _, ok := data["User"]; ok {
		t.Error("User should not be set for anonymous requests")
	}
}

func TestNewTemplateData_Authenticated(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin/usuarios", nil)
	sess := &domainauth.Session{
		ID:   "s1",
		Role: domainauth.RoleAdmin,
		User: domainauth.User{UserID: 1, Email: "admin@biblio.cl", Nombre: "Ada", Apellido1: "Lovelace"},
	}
	r = r.WithContext(SetSessionInContext(r.Context(), sess))

	data := NewTemplateData(r, PageMeta{CurrentPage: PageAdminUsuarios}).Build()

	if data["IsAuthenticated"] != true {
		t.Fatalf("IsAuthenticated = %v, want true", data["IsAuthenticated"])
	}
	if data["Home"] != domainauth.HomeAdmin {
		t.Errorf("Home = %v, want %v", data["Home"], domainauth.HomeAdmin)
	}
	user, ok := data["User"].(*viewmodel.User)
	if !ok {
		t.Fatalf("User is %T", data["User"])
	}
	if user.Name != "Ada Lovelace" || user.RoleLabel != "Admin" {
		t.Errorf("User = %+v", user)
	}

	nav, ok := data["Nav"].([]viewmodel.NavItem)
	if !ok || len(nav) != 4 {
		t.Fatalf("Nav = %#v", data["Nav"])
	}
	for _, item := range nav {
		if item.Active != (item.Href == "/admin/usuarios") {
			t.Errorf("nav %s active = %v", item.Href, item.Active)
		}
	}
}

func TestTemplateDataBuilder_WithError(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	meta := PageMeta{Title: "Test", PageTitle: "Test", CurrentPage: "test"}

	data := NewTemplateData(r, meta).
		WithError("Ejemplar no disponible").
		Build()

	f, ok := data["Flash"].(*Flash)
	if !ok {
		t.Fatalf("Flash is %T", data["Flash"])
	}
	if f.Kind != "error" || f.Message != "Ejemplar no disponible" {
		t.Errorf("Flash = %+v", f)
	}

	data = NewTemplateData(r, meta).WithError("").Build()
	if _, ok := data["Flash"]; ok {
		t.Error("an empty message must not set a flash")
	}
}

func TestTemplateDataBuilder_WithFieldErrors(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	meta := PageMeta{Title: "Test", PageTitle: "Test", CurrentPage: "test"}

	t.Run("with errors", func(t *testing.T) {
		errs := map[string]string{
			"email":  "Ingresa un email válido.",
			"rut_dv": "Dígito verificador inválido (0-9 o K).",
		}

		data := NewTemplateData(r, meta).WithFieldErrors(errs).Build()

		got, ok := data["Errors"].(map[string]string)
		if !ok {
			t.Fatal("Errors is not a map[string]string")
		}
		if got["email"] != errs["email"] || got["rut_dv"] != errs["rut_dv"] {
			t.Errorf("Errors = %v", got)
		}
	})

	t.Run("with empty errors", func(t *testing.T) {
		data := NewTemplateData(r, meta).WithFieldErrors(map[string]string{}).Build()
		if _, ok := data["Errors"]; ok {
			t.Error("Errors should not be set when errors map is empty")
		}
	})

	t.Run("with nil errors", func(t *testing.T) {
		data := NewTemplateData(r, meta).WithFieldErrors(nil).Build()
		if _, ok := data["Errors"]; ok {
			t.Error("Errors should not be set when errors map is nil")
		}
	})
}

func TestTemplateDataBuilder_Chaining(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin/usuarios?q=ana", nil)
	meta := PageMeta{Title: "Usuarios", PageTitle: "Usuarios", CurrentPage: PageAdminUsuarios}

	data := NewTemplateData(r, meta).
		With("Q", "ana").
		With("Items", []string{"u1", "u2"}).
		WithFlash(successFlash("Listo")).
		WithFlash(nil).
		Build()

	if data["Q"] != "ana" {
		t.Error("Q not set correctly in chaining")
	}
	if data["Items"] == nil {
		t.Error("Items not set correctly in chaining")
	}
	if f, _ := data["Flash"].(*Flash); f == nil || f.Message != "Listo" {
		t.Error("a nil flash must not clear an earlier one")
	}
}

func TestNewFragmentData_CarriesOnlyCSRFToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/bibliotecario/prestamos", nil)
	if data := newFragmentData(r).Build(); len(data) != 0 {
		t.Errorf("fragment data without token = %v", data)
	}

	r = r.WithContext(context.WithValue(r.Context(), csrfTokenKey{}, "tok"))
	data := newFragmentData(r).Build()
	if len(data) != 1 || data["CSRFToken"] != "tok" {
		t.Errorf("fragment data = %v", data)
	}
}
