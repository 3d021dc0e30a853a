package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricPrefix = "estoque_"

	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once
	registry     *prometheus.Registry

	batchTotal    *prometheus.CounterVec
	batchLatency  *prometheus.HistogramVec
	batchRows     *prometheus.CounterVec
	notFoundItems prometheus.Counter

	analysisTotal    *prometheus.CounterVec
	stockStatusTotal *prometheus.CounterVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	referenceImportTotal *prometheus.CounterVec
	referenceBackupTotal *prometheus.CounterVec
)

// Init registra as métricas do pipeline. Antes de Init todas as funções são no-op.
func Init() {
	registerOnce.Do(func() {
		registry = prometheus.NewRegistry()

		batchTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "batch_total",
				Help: "Total sales batches processed by result",
			},
			[]string{"result"},
		)
		batchLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "batch_latency_seconds",
				Help:    "Sales batch processing latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		batchRows = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "batch_rows_total",
				Help: "Spreadsheet rows read by outcome",
			},
			[]string{"outcome"},
		)
		notFoundItems = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "items_not_found_total",
				Help: "Sold items without reference price",
			},
		)

		analysisTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "analysis_total",
				Help: "Stock analyses by result",
			},
			[]string{"result"},
		)
		stockStatusTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "stock_status_total",
				Help: "Assessed products by stock status",
			},
			[]string{"status"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Incorrect stock exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Incorrect stock export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		referenceImportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reference_import_total",
				Help: "Reference price-list imports by result",
			},
			[]string{"result"},
		)
		referenceBackupTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reference_backup_total",
				Help: "Reference price-list backup snapshots by result",
			},
			[]string{"result"},
		)

		registry.MustRegister(
			collectors.NewGoCollector(),
			batchTotal,
			batchLatency,
			batchRows,
			notFoundItems,
			analysisTotal,
			stockStatusTotal,
			exportTotal,
			exportLatency,
			referenceImportTotal,
			referenceBackupTotal,
		)
	})
}

// Handler expõe as métricas registradas; sem Init responde 404
func Handler() http.Handler {
	if registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func resultOf(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}

// ObserveBatch registra a duração e o resultado de um lote de vendas
func ObserveBatch(err error, duration time.Duration) {
	result := resultOf(err)
	if batchTotal != nil {
		batchTotal.WithLabelValues(result).Inc()
	}
	if batchLatency != nil {
		batchLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// AddBatchRows soma as linhas lidas por desfecho (sale, rejected, skipped)
func AddBatchRows(outcome string, count int) {
	if count <= 0 || batchRows == nil {
		return
	}
	batchRows.WithLabelValues(outcome).Add(float64(count))
}

func AddNotFound(count int) {
	if count <= 0 || notFoundItems == nil {
		return
	}
	notFoundItems.Add(float64(count))
}

func ObserveAnalysis(err error) {
	if analysisTotal != nil {
		analysisTotal.WithLabelValues(resultOf(err)).Inc()
	}
}

func IncStockStatus(status string) {
	if status == "" {
		status = "unknown"
	}
	if stockStatusTotal != nil {
		stockStatusTotal.WithLabelValues(status).Inc()
	}
}

func ObserveExport(format string, err error, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	result := resultOf(err)
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

func ObserveReferenceImport(err error) {
	if referenceImportTotal != nil {
		referenceImportTotal.WithLabelValues(resultOf(err)).Inc()
	}
}

func ObserveReferenceBackup(err error) {
	if referenceBackupTotal != nil {
		referenceBackupTotal.WithLabelValues(resultOf(err)).Inc()
	}
}
