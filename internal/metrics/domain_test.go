package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	assert.Equal(t, "ok", Result(nil))
	assert.Equal(t, "error", Result(errors.New("boom")))
}

func TestCertificatesRequested_Counts(t *testing.T) {
	before := testutil.ToFloat64(CertificatesRequested.WithLabelValues("ok"))
	CertificatesRequested.WithLabelValues(Result(nil)).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(CertificatesRequested.WithLabelValues("ok")))
}
