package observability

import (
	"testing"

	"github.com/boredclicker/bored"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordOutcome(t *testing.T) {
	found := resolverOutcomes.WithLabelValues("found")
	invalid := resolverOutcomes.WithLabelValues("invalid_arguments")
	foundBefore := testutil.ToFloat64(found)
	invalidBefore := testutil.ToFloat64(invalid)

	RecordOutcome(bored.OutcomeFound)
	RecordOutcome(bored.OutcomeFound)
	RecordOutcome(bored.OutcomeInvalidArguments)

	assert.Equal(t, foundBefore+2, testutil.ToFloat64(found))
	assert.Equal(t, invalidBefore+1, testutil.ToFloat64(invalid))
}
