package handler

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/base48/vietqr-portal/internal/config"
	"github.com/base48/vietqr-portal/internal/qrpay"
	"github.com/base48/vietqr-portal/internal/tlv"
	"github.com/base48/vietqr-portal/internal/vietqr"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler holds dependencies for HTTP handlers. It keeps no per-user state;
// everything a page needs travels in the request.
type Handler struct {
	qr        *qrpay.Service
	config    *config.Config
	templates *template.Template
	validate  *validator.Validate
	log       *slog.Logger
}

// New creates a new Handler instance
func New(qrService *qrpay.Service, cfg *config.Config, log *slog.Logger) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"dataURL": func(b []byte) template.URL { return template.URL(qrpay.DataURL(b)) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Handler{
		qr:        qrService,
		config:    cfg,
		templates: tmpl,
		validate:  newValidator(),
		log:       log,
	}, nil
}

// Routes registers all pages and API endpoints on a new router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", h.HealthHandler)

	// Form pages
	r.Get("/", h.HomeHandler)
	r.Post("/generate", h.GenerateFormHandler)
	r.Post("/decode", h.DecodeFormHandler)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Get("/banks", h.BanksHandler)
		r.Post("/qr", h.GenerateHandler)
		r.Get("/qr.png", h.QRImageHandler)
		r.Post("/decode", h.DecodeHandler)
		r.Post("/parse", h.ParseHandler)
	})

	return r
}

// HealthHandler reports liveness. It fails while no renderer is configured,
// since no page could produce an image.
// GET /healthz
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !h.qr.IsConfigured() {
		http.Error(w, "renderer not configured", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// render is a helper to render templates
func (h *Handler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.log.Error("template execution failed", "template", name, "error", err)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]interface{}{
		"error": message,
	})
}

// writeError maps domain errors to HTTP status codes and user-facing messages.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		h.log.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	h.jsonError(w, message, status)
}

func errorStatus(err error) (int, string) {
	var (
		verrs  validator.ValidationErrors
		maxErr *http.MaxBytesError
		upErr  errUpload
	)
	switch {
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge, "Image must be smaller than 10 MiB"
	case errors.As(err, &upErr):
		return http.StatusBadRequest, `Upload a QR image in the "file" field`
	case errors.As(err, &verrs):
		return http.StatusBadRequest, validationMessage(verrs)
	case errors.Is(err, vietqr.ErrMissingRequiredField):
		return http.StatusBadRequest, "Account number and bank are required"
	case errors.Is(err, vietqr.ErrUnknownBank):
		return http.StatusBadRequest, "Unknown bank, use a 6-digit BIN or a bank code"
	case errors.Is(err, vietqr.ErrInvalidAmount):
		return http.StatusBadRequest, "Amount must be a positive whole number of dong"
	case errors.Is(err, tlv.ErrValueTooLong):
		return http.StatusBadRequest, "A field is too long for a VietQR code"
	case errors.Is(err, vietqr.ErrChecksumMismatch):
		return http.StatusUnprocessableEntity, "QR code checksum does not match"
	case errors.Is(err, tlv.ErrTruncatedPayload), errors.Is(err, tlv.ErrInvalidLength):
		return http.StatusUnprocessableEntity, "QR code content is not a valid VietQR payload"
	case errors.Is(err, qrpay.ErrUnreadableImage):
		return http.StatusBadRequest, "Upload a PNG or JPEG image"
	case errors.Is(err, qrpay.ErrNoQRCode):
		return http.StatusUnprocessableEntity, "Could not find a QR code in the image"
	}
	return http.StatusInternalServerError, "Internal error"
}

func validationMessage(verrs validator.ValidationErrors) string {
	if len(verrs) == 0 {
		return "Invalid request"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: failed %q check", fe.Field(), fe.Tag())
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
