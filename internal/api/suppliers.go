package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/SupplyRank/internal/hermes"
	"github.com/MikeSquared-Agency/SupplyRank/internal/scoring"
	"github.com/MikeSquared-Agency/SupplyRank/internal/store"
)

type SuppliersHandler struct {
	store   store.Store
	hermes  hermes.Client
	metrics *Metrics
	logger  *slog.Logger
}

func NewSuppliersHandler(s store.Store, h hermes.Client, m *Metrics, logger *slog.Logger) *SuppliersHandler {
	return &SuppliersHandler{store: s, hermes: h, metrics: m, logger: logger}
}

// decodeSupplier reads and validates the supplier form.
func decodeSupplier(r *http.Request) (store.SupplierAttributes, *errorResponse) {
	var a store.SupplierAttributes
	if e := decodeJSON(r, &a, false); e != nil {
		return a, e
	}
	if a.DeforestationScore != 0 && a.DeforestationScore != a.DeforestationRisk.Score() {
		return a, &errorResponse{
			Error:   "validation failed",
			Details: map[string]string{"deforestation_score": "does not match deforestation_risk"},
		}
	}
	return a, nil
}

// nonFinite is the 400 body for inputs whose totals overflow.
func nonFinite(err error) *errorResponse {
	return &errorResponse{
		Error:   "validation failed",
		Details: map[string]string{"totals": err.Error()},
	}
}

// Create handles POST /api/v1/suppliers
func (h *SuppliersHandler) Create(w http.ResponseWriter, r *http.Request) {
	attrs, e := decodeSupplier(r)
	if e != nil {
		writeJSON(w, http.StatusBadRequest, e)
		return
	}

	sup, err := scoring.NewSupplier(attrs)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, nonFinite(err))
		return
	}
	if err := h.store.CreateSupplier(r.Context(), sup); err != nil {
		h.logger.Error("create supplier failed", "error", err, "name", sup.Name)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.metrics.SupplierCreated()
	h.publishCreated(sup)

	writeJSON(w, http.StatusCreated, sup)
}

func (h *SuppliersHandler) publishCreated(sup *store.Supplier) {
	if h.hermes == nil {
		return
	}
	err := h.hermes.Publish(hermes.SubjectSupplierCreated(sup.ID.String()), hermes.SupplierCreatedEvent{
		SupplierID:     sup.ID.String(),
		Name:           sup.Name,
		TotalCost:      sup.TotalCost,
		TotalEmissions: sup.TotalEmissions,
		CreatedAt:      sup.CreatedAt,
	})
	if err != nil {
		h.logger.Warn("publish supplier created failed", "error", err, "supplier_id", sup.ID)
	}
}

// Preview handles POST /api/v1/suppliers/preview: totals without persisting.
func (h *SuppliersHandler) Preview(w http.ResponseWriter, r *http.Request) {
	attrs, e := decodeSupplier(r)
	if e != nil {
		writeJSON(w, http.StatusBadRequest, e)
		return
	}
	totals := scoring.ComputeTotals(attrs.Normalize())
	if err := totals.Check(); err != nil {
		writeJSON(w, http.StatusBadRequest, nonFinite(err))
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// List handles GET /api/v1/suppliers
func (h *SuppliersHandler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.store.ListSuppliers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if suppliers == nil {
		suppliers = []*store.Supplier{}
	}
	writeJSON(w, http.StatusOK, suppliers)
}

// Get handles GET /api/v1/suppliers/{id}
func (h *SuppliersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	sup, err := h.store.GetSupplier(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sup == nil {
		writeError(w, http.StatusNotFound, "supplier not found")
		return
	}
	writeJSON(w, http.StatusOK, sup)
}

// Bubble handles GET /api/v1/chart/bubble
func (h *SuppliersHandler) Bubble(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.store.ListSuppliers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scoring.BubblePoints(suppliers))
}
