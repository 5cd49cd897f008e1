package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/SupplyRank/internal/hermes"
	"github.com/MikeSquared-Agency/SupplyRank/internal/scoring"
	"github.com/MikeSquared-Agency/SupplyRank/internal/store"
)

// topEventSize caps the suppliers carried by a ranking event.
const topEventSize = 5

type RankingHandler struct {
	store    store.Store
	hermes   hermes.Client
	ranker   *scoring.Ranker
	defaults scoring.PairwiseMatrix
	metrics  *Metrics
	logger   *slog.Logger
}

func NewRankingHandler(s store.Store, h hermes.Client, r *scoring.Ranker, defaults scoring.PairwiseMatrix, m *Metrics, logger *slog.Logger) *RankingHandler {
	return &RankingHandler{store: s, hermes: h, ranker: r, defaults: defaults, metrics: m, logger: logger}
}

// PairwiseRequest carries the user's judgments either by criterion name or as
// the raw upper triangle. With neither, the configured default applies.
type PairwiseRequest struct {
	Judgments []JudgmentRequest `json:"judgments" validate:"omitempty,dive"`
	Upper     []float64         `json:"upper" validate:"omitempty,len=6,excluded_with=Judgments"`
}

type JudgmentRequest struct {
	A     string  `json:"a" validate:"required"`
	B     string  `json:"b" validate:"required"`
	Value float64 `json:"value" validate:"gt=0"`
}

type WeightsResponse struct {
	Criteria []scoring.Criterion    `json:"criteria"`
	Pairwise scoring.PairwiseMatrix `json:"pairwise"`
	Weights  []float64              `json:"weights"`
}

func (req *PairwiseRequest) matrix(defaults scoring.PairwiseMatrix) (scoring.PairwiseMatrix, error) {
	switch {
	case len(req.Judgments) > 0:
		js := make([]scoring.Judgment, len(req.Judgments))
		for i, j := range req.Judgments {
			js[i] = scoring.Judgment{A: j.A, B: j.B, Value: j.Value}
		}
		return scoring.PairwiseFromJudgments(scoring.SupplierCriteria, js)
	case len(req.Upper) > 0:
		return scoring.NewPairwiseMatrix(req.Upper)
	}
	return defaults, nil
}

func (h *RankingHandler) decodePairwise(w http.ResponseWriter, r *http.Request) (scoring.PairwiseMatrix, bool) {
	var req PairwiseRequest
	if e := decodeJSON(r, &req, true); e != nil {
		writeJSON(w, http.StatusBadRequest, e)
		return scoring.PairwiseMatrix{}, false
	}
	p, err := req.matrix(h.defaults)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return scoring.PairwiseMatrix{}, false
	}
	return p, true
}

// Weights handles POST /api/v1/weights
func (h *RankingHandler) Weights(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodePairwise(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, WeightsResponse{
		Criteria: scoring.SupplierCriteria,
		Pairwise: p,
		Weights:  scoring.DeriveWeights(p),
	})
}

// Rank handles POST /api/v1/ranking over every stored supplier.
func (h *RankingHandler) Rank(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	p, ok := h.decodePairwise(w, r)
	if !ok {
		h.metrics.RankingDone("invalid", 0, time.Since(start))
		return
	}

	suppliers, err := h.store.ListSuppliers(r.Context())
	if err != nil {
		h.logger.Error("list suppliers failed", "error", err)
		h.metrics.RankingDone("error", 0, time.Since(start))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out, err := h.ranker.RankSuppliers(suppliers, p)
	if err != nil {
		status, outcome := rankingErrorStatus(err)
		h.metrics.RankingDone(outcome, len(suppliers), time.Since(start))
		msg := err.Error()
		if errors.Is(err, scoring.ErrEmptySupplierSet) {
			msg = "no suppliers stored yet"
		}
		writeError(w, status, msg)
		return
	}

	h.metrics.RankingDone("ok", len(suppliers), time.Since(start))
	h.publishRanking(suppliers, out)
	writeJSON(w, http.StatusOK, out)
}

func rankingErrorStatus(err error) (int, string) {
	var degenerate *scoring.DegenerateInputError
	switch {
	case errors.Is(err, scoring.ErrEmptySupplierSet):
		return http.StatusConflict, "empty"
	case errors.As(err, &degenerate):
		return http.StatusUnprocessableEntity, "degenerate"
	case errors.Is(err, scoring.ErrNonFinite):
		return http.StatusUnprocessableEntity, "degenerate"
	case errors.Is(err, scoring.ErrDimensionMismatch):
		return http.StatusBadRequest, "invalid"
	}
	return http.StatusInternalServerError, "error"
}

func (h *RankingHandler) publishRanking(suppliers []*store.Supplier, out *scoring.RankingOutput) {
	if h.hermes == nil {
		return
	}
	evt := hermes.RankingComputedEvent{
		Suppliers: len(suppliers),
		Weights:   out.Weights,
		Timestamp: time.Now().UTC(),
	}
	for _, res := range out.Results {
		if len(evt.Top) == topEventSize {
			break
		}
		evt.Top = append(evt.Top, hermes.RankedSupplier{
			SupplierID: res.ID,
			Name:       res.Name,
			Rank:       res.Rank,
			Closeness:  res.Closeness,
		})
	}
	if err := h.hermes.Publish(hermes.SubjectRankingComputed, evt); err != nil {
		h.logger.Warn("publish ranking computed failed", "error", err)
	}
}
