package httpx

import (
	"context"
	"log/slog"
	"maps"
	"net/http"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/sisbib/sisbib-web/internal/errors"
	"github.com/sisbib/sisbib-web/internal/http/validation"
)

const msgFixFields = "Revisa los campos marcados."

// FormParser builds a request from the posted form. It returns field errors
// for values that cannot be converted (e.g. a non-numeric id).
type FormParser[T any] func(r *http.Request) (T, map[string]string)

// FormSubmitter sends the request to the backend and returns the success text.
type FormSubmitter[T any] func(ctx context.Context, req T) (string, error)

// FormRenderer renders the form with the given status and data. Data holds
// "Form" (the posted values), "Errors" and "Flash".
type FormRenderer func(w http.ResponseWriter, r *http.Request, status int, data map[string]any)

// FormHandlerOpts contains all options needed to handle a form submission.
type FormHandlerOpts[T any] struct {
	// Name identifies the form on pages that embed several of them.
	Name     string
	W        http.ResponseWriter
	R        *http.Request
	Parse    FormParser[T]
	Validate *validator.Validate
	Submit   FormSubmitter[T]
	Render   FormRenderer
	// RefreshEvent is triggered on success so lists showing the changed data
	// reload themselves. Failures never trigger it.
	RefreshEvent string
	// Secret lists fields that are never echoed back into the form.
	Secret []string
	Logger *slog.Logger
}

// HandleForm parses, validates and submits a form, then re-renders it.
// On success the form comes back empty with a success flash. On failure the
// entered values are kept and the message is shown as the backend wrote it.
func HandleForm[T any](opts FormHandlerOpts[T]) {
	w, r := opts.W, opts.R
	if opts.Parse == nil || opts.Submit == nil || opts.Render == nil {
		http.Error(w, "misconfigured form handler", http.StatusInternalServerError)
		return
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := r.ParseForm(); err != nil {
		opts.Render(w, r, formStatus(r, http.StatusBadRequest), map[string]any{
			"ActiveForm": opts.Name,
			"Failed":     true,
			"Flash":      errorFlash("No se pudo leer el formulario."),
		})
		return
	}
	values := postedValues(r, opts.Secret)

	req, fieldErrors := opts.Parse(r)
	if opts.Validate != nil {
		if verrs := validation.Errors(opts.Validate.Struct(req)); len(verrs) > 0 {
			if fieldErrors == nil {
				fieldErrors = map[string]string{}
			}
			for k, v := range verrs {
				if _, seen := fieldErrors[k]; !seen {
					fieldErrors[k] = v
				}
			}
		}
	}
	if len(fieldErrors) > 0 {
		opts.Render(w, r, formStatus(r, http.StatusUnprocessableEntity), map[string]any{
			"ActiveForm": opts.Name,
			"Failed":     true,
			"Form":       values,
			"Errors":     fieldErrors,
			"Flash":      errorFlash(msgFixFields),
		})
		return
	}

	msg, err := opts.Submit(r.Context(), req)
	if skipStale(w, err) {
		return
	}
	if err != nil {
		logger.InfoContext(r.Context(), "form submission failed",
			slog.String("path", r.URL.Path),
			slog.String("code", string(apperrors.GetCode(err))),
			slog.Any("error", err))
		data := map[string]any{
			"ActiveForm": opts.Name,
			"Failed":     true,
			"Form":       values,
			"Flash":      errorFlash(apperrors.UserMessage(err)),
		}
		if field := apperrors.GetField(err); field != "" {
			data["Errors"] = map[string]string{field: apperrors.UserMessage(err)}
		}
		opts.Render(w, r, viewStatus(r, err), data)
		return
	}

	if opts.RefreshEvent != "" {
		HTMX(w).Trigger(opts.RefreshEvent, nil)
	}
	opts.Render(w, r, http.StatusOK, map[string]any{
		"ActiveForm": opts.Name,
		"Form":       map[string]string{},
		"Flash":      successFlash(msg),
	})
}

func formStatus(r *http.Request, status int) int {
	if IsHTMX(r) {
		return http.StatusOK
	}
	return status
}

// postedValues copies the first value of each posted field, minus secrets and
// the CSRF token.
func postedValues(r *http.Request, secret []string) map[string]string {
	out := make(map[string]string, len(r.PostForm))
	for k, v := range r.PostForm {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	delete(out, DefaultCSRFCookieName)
	for _, k := range secret {
		delete(out, k)
	}
	return out
}

// withForm merges form state into page data.
func withForm(data, form map[string]any) map[string]any {
	maps.Copy(data, form)
	return data
}
