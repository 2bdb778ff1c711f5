// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/brightcode-org/outreach/internal/model"
	"github.com/brightcode-org/outreach/internal/notify"
	"github.com/brightcode-org/outreach/internal/service"
)

// maxUploadBytes bounds the whole multipart chapter application, uploaded
// letters included.
const maxUploadBytes = 16 << 20

// acceptedDocTypes are the file extensions allowed for uploaded documents.
var acceptedDocTypes = []string{".pdf", ".doc", ".docx"}

// FormHandler holds all HTTP handlers for the form submission API.
type FormHandler struct {
	svc    *service.FormService
	logger *slog.Logger

	// ready is false when no email provider key is configured; every
	// endpoint must then fail immediately without attempting any work.
	ready bool
}

// NewFormHandler constructs a FormHandler.
func NewFormHandler(svc *service.FormService, logger *slog.Logger, ready bool) *FormHandler {
	return &FormHandler{svc: svc, logger: logger, ready: ready}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// guard rejects every request when the email provider is unconfigured.
func (h *FormHandler) guard(w http.ResponseWriter) bool {
	if !h.ready {
		writeError(w, http.StatusInternalServerError, "email service is not configured")
		return false
	}
	return true
}

// respond converts a pipeline result or error into the response envelope.
func (h *FormHandler) respond(w http.ResponseWriter, kind string, res notify.Result, err error) {
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalid):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, notify.ErrNoRecipients):
			h.logger.Error("submission failed", "kind", kind, "error", err)
			writeError(w, http.StatusInternalServerError, "no notification recipients configured")
		default:
			// Details stay in the server log; clients get a retryable message.
			h.logger.Error("submission failed", "kind", kind, "error", err)
			writeError(w, http.StatusInternalServerError,
				"we couldn't process your submission, please try again")
		}
		return
	}

	status := http.StatusOK
	if res.Degraded() {
		status = http.StatusAccepted
	}
	writeJSON(w, status, model.SubmissionResponse{
		OK:                     true,
		Message:                res.Message,
		ConfirmationEmailSent:  res.ConfirmationEmailSent,
		ConfirmationEmailError: res.ConfirmationEmailError,
		FallbackGroupUsed:      res.FallbackUsed,
		TargetRecipients:       res.Recipients,
		VolunteerID:            res.VolunteerID,
		StorageWarning:         res.StorageWarning,
	})
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// RSVP handles POST /api/workshops/rsvp
func (h *FormHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w) {
		return
	}
	var req model.RSVPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	res, err := h.svc.SubmitRSVP(r.Context(), req)
	h.respond(w, "workshop-rsvp", res, err)
}

// Contact handles POST /api/workshops/contact
func (h *FormHandler) Contact(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w) {
		return
	}
	var req model.ContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	res, err := h.svc.SubmitContact(r.Context(), req)
	h.respond(w, "workshop-contact", res, err)
}

// Volunteer handles POST /api/workshops/volunteer
func (h *FormHandler) Volunteer(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w) {
		return
	}
	var req model.VolunteerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	res, err := h.svc.SubmitVolunteer(r.Context(), req)
	h.respond(w, "workshop-volunteer", res, err)
}

// ChapterApplication handles POST /api/chapter-application
// The body is multipart form data: scalar fields, the agreements checkbox
// group, and optional document uploads.
func (h *FormHandler) ChapterApplication(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body: "+err.Error())
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	app := model.ChapterApplication{
		InstitutionName: r.FormValue("institutionName"),
		InstitutionType: r.FormValue("institutionType"),
		City:            r.FormValue("city"),
		Country:         r.FormValue("country"),
		Website:         r.FormValue("website"),
		LeadFirstName:   r.FormValue("leadFirstName"),
		LeadLastName:    r.FormValue("leadLastName"),
		LeadEmail:       r.FormValue("leadEmail"),
		LeadPhone:       r.FormValue("leadPhone"),
		LeadRole:        r.FormValue("leadRole"),
		Motivation:      r.FormValue("motivation"),
		Experience:      r.FormValue("experience"),
		SignatureName:   r.FormValue("signatureName"),
		Agreements:      r.MultipartForm.Value["agreements"],
	}

	for _, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			upload, err := readUpload(fh)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			app.Documents = append(app.Documents, upload)
		}
	}

	res, err := h.svc.SubmitChapterApplication(r.Context(), app)
	h.respond(w, "chapter-application", res, err)
}

func readUpload(fh *multipart.FileHeader) (model.Upload, error) {
	if !acceptedDoc(fh.Filename) {
		return model.Upload{}, errors.New("uploaded files must be PDF or Word documents")
	}
	f, err := fh.Open()
	if err != nil {
		return model.Upload{}, errors.New("could not read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return model.Upload{}, errors.New("could not read uploaded file")
	}
	return model.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func acceptedDoc(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range acceptedDocTypes {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
