package monitoring

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/kirinyoku/tix-ledger/internal/domain"
)

func TestRecordOperation_Statuses(t *testing.T) {
	RecordOperation("test_op", nil)
	RecordOperation("test_op", fmt.Errorf("%w: sold out", domain.ErrRejected))
	RecordOperation("test_op", errors.New("db down"))
	RecordOperation("test_op", errors.New("db down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(ledgerOperations.WithLabelValues("test_op", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(ledgerOperations.WithLabelValues("test_op", StatusRejected)))
	assert.Equal(t, 2.0, testutil.ToFloat64(ledgerOperations.WithLabelValues("test_op", StatusError)))
}

func TestSetSupply(t *testing.T) {
	SetSupply(991, 3, 7)

	assert.Equal(t, 3.0, testutil.ToFloat64(ticketsIssued.WithLabelValues("991")))
	assert.Equal(t, 7.0, testutil.ToFloat64(ticketsRemaining.WithLabelValues("991")))
}

func TestAddSettlement(t *testing.T) {
	before := testutil.ToFloat64(settledRevenue.WithLabelValues("venue"))
	AddSettlement(90, 10)

	assert.Equal(t, before+10, testutil.ToFloat64(settledRevenue.WithLabelValues("venue")))
}
