package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLendingCounters(t *testing.T) {
	created := testutil.ToFloat64(loansCreated)
	LoanCreated()
	assert.Equal(t, created+1, testutil.ToFloat64(loansCreated))

	approved := testutil.ToFloat64(loansReviewed.WithLabelValues("Approved"))
	LoanReviewed("Approved")
	assert.Equal(t, approved+1, testutil.ToFloat64(loansReviewed.WithLabelValues("Approved")))

	hits := testutil.ToFloat64(calculations.WithLabelValues("hit"))
	Calculation(true)
	Calculation(false)
	assert.Equal(t, hits+1, testutil.ToFloat64(calculations.WithLabelValues("hit")))

	SetPendingLoans(7)
	assert.Equal(t, float64(7), testutil.ToFloat64(pendingLoans))
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveHTTP("GET", "/health", 200, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "bank_loan_http_requests_total")
	assert.Contains(t, rec.Body.String(), "bank_loan_loans_created_total")
}
