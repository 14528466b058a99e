// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// #nosec G404
package metrics

import (
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T, m *prometheusMetrics) map[string]*dto.MetricFamily {
	families, err := m.registry.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func TestPromMetrics(t *testing.T) {
	m := newPrometheusMetrics().(*prometheusMetrics)

	count1 := m.GetOrCreateCountMeter("count1")
	count1.Add(1)

	randCount2 := rand.N(100) + 1
	for range randCount2 {
		// resolves to the same meter each time
		m.GetOrCreateCountMeter("count2").Add(1)
	}

	countVec := m.GetOrCreateCountVecMeter("countVec1", []string{"zeroOrOne"})
	totalCountVec := 0
	for i := range rand.N(100) + 2 {
		countVec.AddWithLabel(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(i % 2)})
		totalCountVec += i
	}

	gauge := m.GetOrCreateGaugeMeter("gauge1")
	gauge.Set(10)
	gauge.Add(-3)

	hist := m.GetOrCreateHistogramVecMeter("hist1", []string{"zeroOrOne"}, BucketHTTPReqs)
	histTotal := 0
	for i := range rand.N(100) + 2 {
		hist.ObserveWithLabels(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(i % 2)})
		histTotal += i
	}

	families := gather(t, m)

	require.Contains(t, families, "rico_count1")
	assert.Equal(t, float64(1), families["rico_count1"].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, float64(randCount2), families["rico_count2"].GetMetric()[0].GetCounter().GetValue())

	sumCountVec := 0.0
	for _, metric := range families["rico_countVec1"].GetMetric() {
		sumCountVec += metric.GetCounter().GetValue()
	}
	assert.Equal(t, float64(totalCountVec), sumCountVec)

	assert.Equal(t, float64(7), families["rico_gauge1"].GetMetric()[0].GetGauge().GetValue())

	sumHist := 0.0
	for _, metric := range families["rico_hist1"].GetMetric() {
		sumHist += metric.GetHistogram().GetSampleSum()
	}
	assert.Equal(t, float64(histTotal), sumHist)

	// process and go collectors are registered too
	assert.Contains(t, families, "go_goroutines")
}

func TestPromHandler(t *testing.T) {
	m := newPrometheusMetrics()
	m.GetOrCreateCountMeter("served").Add(3)

	server := httptest.NewServer(m.GetOrCreateHandler())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "rico_served 3")
}
