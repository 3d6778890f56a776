package assessment

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"pet-care-advisor/internal/pet"
)

// ReportGenerator renders a stored assessment as a downloadable document.
type ReportGenerator interface {
	Generate(a *Assessment) ([]byte, error)
}

type Handler struct {
	svc      Service
	reports  ReportGenerator
	validate *validator.Validate
}

func NewHandler(svc Service, reports ReportGenerator) *Handler {
	return &Handler{
		svc:      svc,
		reports:  reports,
		validate: validator.New(),
	}
}

type AssessRequest struct {
	Symptoms []string `json:"symptoms" validate:"required,min=1"`
	Species  string   `json:"species" validate:"required"`

	Name               string   `json:"name"`
	Breed              string   `json:"breed"`
	AgeYears           float64  `json:"age_years" validate:"gte=0"`
	WeightKg           float64  `json:"weight_kg" validate:"gte=0"`
	MedicalHistory     []string `json:"medical_history"`
	CurrentMedications []string `json:"current_medications"`
}

func (h *Handler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	in := Input{
		Symptoms: req.Symptoms,
		Pet: pet.Profile{
			Name:               req.Name,
			Species:            req.Species,
			Breed:              req.Breed,
			AgeYears:           req.AgeYears,
			WeightKg:           req.WeightKg,
			MedicalHistory:     req.MedicalHistory,
			CurrentMedications: req.CurrentMedications,
		},
	}

	a, err := h.svc.Assess(r.Context(), in)
	if err != nil {
		var unknownSpecies *UnknownSpeciesError
		switch {
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, "Please describe at least one symptom", http.StatusBadRequest)
		case errors.As(err, &unknownSpecies):
			http.Error(w, unknownSpecies.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, "Assessment failed: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, a)
}

func (h *Handler) HandleGetAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid assessment ID", http.StatusBadRequest)
		return
	}

	a, err := h.svc.GetAssessment(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrHistoryUnavailable) {
			http.Error(w, "Assessment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load assessment", http.StatusInternalServerError)
		return
	}

	writeJSON(w, a)
}

func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid assessment ID", http.StatusBadRequest)
		return
	}

	a, err := h.svc.GetAssessment(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrHistoryUnavailable) {
			http.Error(w, "Assessment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load assessment", http.StatusInternalServerError)
		return
	}

	data, err := h.reports.Generate(a)
	if err != nil {
		http.Error(w, "Report generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="assessment_%s.pdf"`, a.ID))
	w.Write(data)
}

func (h *Handler) HandleListSymptoms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"symptoms": h.svc.Symptoms()})
}

func (h *Handler) HandleListConditions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"conditions": h.svc.Conditions()})
}

func (h *Handler) HandleReloadKnowledge(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ReloadKnowledge(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"status": "reloaded"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/assessment", h.HandleAssess)
	r.Get("/assessment/{id}", h.HandleGetAssessment)
	r.Get("/assessment/{id}/report", h.HandleReport)
	r.Get("/symptoms", h.HandleListSymptoms)
	r.Get("/conditions", h.HandleListConditions)
	r.Post("/knowledge/reload", h.HandleReloadKnowledge)
}
