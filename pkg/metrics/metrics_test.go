package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化（重复调用不panic）
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if BookUpsertsTotal == nil {
		t.Error("BookUpsertsTotal未初始化")
	}
	if ReferencesCreatedTotal == nil {
		t.Error("ReferencesCreatedTotal未初始化")
	}
	if NameLockWaitDuration == nil {
		t.Error("NameLockWaitDuration未初始化")
	}

	t.Log("✅ 所有指标初始化成功")
}

// TestCounterVec 测试CounterVec指标
func TestCounterVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"op": OpCreate, "result": ResultSuccess}
	before := getCounterVecValue(t, BookUpsertsTotal, labels)

	IncCounterVec(BookUpsertsTotal, labels)
	IncCounterVec(BookUpsertsTotal, labels)
	IncCounterVec(BookUpsertsTotal, map[string]string{"op": OpUpdate, "result": ResultNotFound})

	if got := getCounterVecValue(t, BookUpsertsTotal, labels) - before; got != 2 {
		t.Errorf("CounterVec增量错误: expected=2, got=%f", got)
	}

	t.Log("✅ CounterVec测试通过")
}

// TestAddCounterVec 测试按数量累加
func TestAddCounterVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"action": ActionAdd}
	before := getCounterVecValue(t, AuthorLinksTotal, labels)

	AddCounterVec(AuthorLinksTotal, labels, 3)
	AddCounterVec(AuthorLinksTotal, labels, 0)
	AddCounterVec(AuthorLinksTotal, labels, -1)

	if got := getCounterVecValue(t, AuthorLinksTotal, labels) - before; got != 3 {
		t.Errorf("AddCounterVec增量错误: expected=3, got=%f", got)
	}
}

// TestGauge 测试Gauge指标
func TestGauge(t *testing.T) {
	InitMetrics()

	SetGauge(HTTPRequestsInProgress, 0)
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	if v := getGaugeValue(t, HTTPRequestsInProgress); v != 2 {
		t.Errorf("Gauge递增后值错误: expected=2, got=%f", v)
	}

	DecGauge(HTTPRequestsInProgress)
	if v := getGaugeValue(t, HTTPRequestsInProgress); v != 1 {
		t.Errorf("Gauge递减后值错误: expected=1, got=%f", v)
	}

	SetGauge(HTTPRequestsInProgress, 0)
	t.Log("✅ Gauge测试通过")
}

// TestHistogramVec 测试HistogramVec指标
func TestHistogramVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"op": OpUpdate}
	before := getHistogramVecCount(t, BookUpsertDuration, labels)

	ObserveHistogramVec(BookUpsertDuration, labels, 0.02)
	ObserveHistogramVec(BookUpsertDuration, labels, 0.2)
	ObserveHistogram(NameLockWaitDuration, 0.001)

	if got := getHistogramVecCount(t, BookUpsertDuration, labels) - before; got != 2 {
		t.Errorf("HistogramVec观测次数错误: expected=2, got=%d", got)
	}

	t.Log("✅ HistogramVec测试通过")
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	if err := counterVec.With(labels).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取HistogramVec观测次数
func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	var metric dto.Metric
	histogram := histogramVec.With(labels)
	if err := histogram.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("读取HistogramVec值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
