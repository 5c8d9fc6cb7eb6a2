package services

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAddsSeriesPerOperation(t *testing.T) {
	before := testutil.CollectAndCount(coreComputeDuration)
	beforeRows := testutil.CollectAndCount(coreInputRows)
	observe("observe_test", 12, time.Now())
	observe("observe_test", 3, time.Now())
	assert.Equal(t, before+1, testutil.CollectAndCount(coreComputeDuration))
	assert.Equal(t, beforeRows+1, testutil.CollectAndCount(coreInputRows))
}

func TestRecordsWrittenCounter(t *testing.T) {
	c := recordsWritten.WithLabelValues("metrics_test")
	c.Inc()
	c.Inc()
	assert.Equal(t, 2.0, testutil.ToFloat64(c))
}
