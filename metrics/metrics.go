package metrics

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/testinfra/suite-launcher/types"
)

const (
	MetricsNamespace = "launcher"
)

var (
	Debug                bool = true
	validResults              = []types.RunStatus{types.RunStatusPass, types.RunStatusFail}
	nonAlphanumericRegex      = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	testRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "test_runs_total",
		Help:      "Count of executed test runs",
	}, []string{
		"suite",
		"run_id",
		"environment",
		"result",
	})

	suiteResults = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_results",
		Help:      "Result of suite executions",
	}, []string{
		"suite",
		"run_id",
		"result",
	})

	suiteRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_runs_total",
		Help:      "Total number of test runs in a suite execution",
	}, []string{
		"suite",
		"run_id",
	})

	suiteRunsPassed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_runs_passed",
		Help:      "Number of passed test runs in a suite execution",
	}, []string{
		"suite",
		"run_id",
	})

	suiteRunsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_runs_failed",
		Help:      "Number of failed test runs in a suite execution",
	}, []string{
		"suite",
		"run_id",
	})

	suiteDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_duration",
		Help:      "Duration of suite executions",
	}, []string{
		"suite",
		"run_id",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	if Debug {
		log.Debug("metric inc",
			"m", "errors_total",
			"error", error,
		)
	}
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	RecordError(label)
}

func RecordTestRun(suite string, runID string, environment string, result types.RunStatus) {
	if !isValidResult(result) {
		log.Error("RecordTestRun - invalid result", "result", result)
		return
	}
	if Debug {
		log.Debug("metric inc",
			"m", "test_runs_total",
			"suite", suite,
			"run_id", runID,
			"environment", environment,
			"result", result)
	}
	testRunsTotal.WithLabelValues(suite, runID, environment, string(result)).Inc()
}

func RecordSuite(
	suite string,
	runID string,
	result string,
	total int,
	passed int,
	failed int,
	duration time.Duration,
) {
	suiteResults.WithLabelValues(suite, runID, result).Set(1)
	suiteRunsTotal.WithLabelValues(suite, runID).Add(float64(total))
	suiteRunsPassed.WithLabelValues(suite, runID).Add(float64(passed))
	suiteRunsFailed.WithLabelValues(suite, runID).Add(float64(failed))
	suiteDuration.WithLabelValues(suite, runID).Set(duration.Seconds())
}

func isValidResult(result types.RunStatus) bool {
	return slices.Contains(validResults, result)
}
