package hermes

const (
	SubjectRankingComputed = "supply.ranking.computed"

	StreamName   = "SUPPLYRANK_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectSupplierCreated(supplierID string) string {
	return "supply.supplier." + supplierID + ".created"
}
