package hermes

import (
	"strings"
	"testing"
)

func TestSubjectsWithinStream(t *testing.T) {
	subjects := []string{
		SubjectSupplierCreated("3f1c"),
		SubjectRankingComputed,
	}
	for _, s := range subjects {
		if !strings.HasPrefix(s, "supply.supplier.") && !strings.HasPrefix(s, "supply.ranking.") {
			t.Errorf("subject %s not covered by stream %s", s, StreamName)
		}
	}
	if got := SubjectSupplierCreated("abc"); got != "supply.supplier.abc.created" {
		t.Errorf("unexpected subject %s", got)
	}
}
