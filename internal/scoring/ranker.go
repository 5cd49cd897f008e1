package scoring

import (
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/SupplyRank/internal/store"
)

// RankingOutput is the complete AHP + TOPSIS result for a supplier set.
type RankingOutput struct {
	Criteria           []Criterion    `json:"criteria"`
	Pairwise           PairwiseMatrix `json:"pairwise"`
	DecisionMatrix     DecisionMatrix `json:"decision_matrix"`
	DegenerateCriteria []string       `json:"degenerate_criteria,omitempty"`
	Ranking
}

// Ranker derives AHP weights and ranks suppliers with TOPSIS over SupplierCriteria.
type Ranker struct {
	strict bool
	logger *slog.Logger
}

// NewRanker creates a Ranker. In strict mode degenerate input is returned as
// a *DegenerateInputError instead of being reported in the output.
func NewRanker(strict bool, logger *slog.Logger) *Ranker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ranker{strict: strict, logger: logger}
}

// RankSuppliers ranks suppliers in the given order using weights derived from p.
func (r *Ranker) RankSuppliers(suppliers []*store.Supplier, p PairwiseMatrix) (*RankingOutput, error) {
	criteria := SupplierCriteria
	if p.N() != len(criteria) {
		return nil, fmt.Errorf("%w: pairwise matrix is %dx%d, want %d criteria", ErrDimensionMismatch, p.N(), p.N(), len(criteria))
	}
	if len(suppliers) == 0 {
		return nil, ErrEmptySupplierSet
	}

	weights := DeriveWeights(p)
	benefit := BenefitFlags(criteria)
	dm := BuildDecisionMatrix(suppliers)

	ranking, err := Rank(dm, weights, benefit)
	if err != nil {
		return nil, fmt.Errorf("rank suppliers: %w", err)
	}

	out := &RankingOutput{
		Criteria:       criteria,
		Pairwise:       p,
		DecisionMatrix: dm,
		Ranking:        ranking,
	}
	for _, j := range ranking.DegenerateColumns {
		out.DegenerateCriteria = append(out.DegenerateCriteria, criteria[j].Name)
	}

	if err := r.checkDegenerate(out); err != nil {
		return nil, err
	}

	frontier := make(map[int]bool)
	for _, i := range ComputeFrontier(dm.Rows, benefit) {
		frontier[i] = true
	}
	for k := range out.Results {
		out.Results[k].ParetoOptimal = frontier[out.Results[k].Index]
	}

	r.logger.Debug("suppliers ranked",
		"suppliers", len(suppliers),
		"weights", weights,
		"top", out.Results[0].Name,
		"degenerate", out.DegenerateCriteria,
	)
	return out, nil
}

func (r *Ranker) checkDegenerate(out *RankingOutput) error {
	if len(out.DegenerateCriteria) > 0 {
		if r.strict {
			return &DegenerateInputError{Criterion: out.DegenerateCriteria[0], Row: -1, Reason: "all values are zero"}
		}
		r.logger.Warn("degenerate criteria ignored", "criteria", out.DegenerateCriteria)
	}
	for _, res := range out.Results {
		if !res.Indeterminate {
			continue
		}
		if r.strict {
			return &DegenerateInputError{Row: res.Index, Reason: fmt.Sprintf("supplier %q coincides with both ideal and nadir", res.Name)}
		}
		r.logger.Warn("indeterminate closeness", "supplier", res.Name, "row", res.Index)
	}
	return nil
}
