package courses

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("courseplan.services.courses")
