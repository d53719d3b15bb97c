package mission

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/agroscout/fieldsim/internal/mission"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
