package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/caveplan-go/internal/application/common"
	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

// PrometheusMiddleware creates a middleware that records command execution metrics
//
// This middleware wraps all command/query execution and records:
// - Execution duration (histogram)
// - Success/failure counts (counter)
// - Simulation outcomes when the response is a dive calculation result
//
// Command names are extracted via reflection and simplified to remove package prefixes.
// For example: "*commands.SimulateDiveCommand" becomes "SimulateDiveCommand"
func PrometheusMiddleware(commands *CommandMetricsCollector, simulations *SimulationMetricsCollector) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		// Skip metrics if collectors are nil (metrics disabled)
		if commands == nil {
			return next(ctx, request)
		}

		commandName := extractCommandName(request)
		start := time.Now()

		response, err := next(ctx, request)

		duration := time.Since(start).Seconds()
		success := err == nil
		commands.RecordCommandExecution(commandName, duration, success)

		if simulations != nil && err == nil {
			if result, ok := response.(*dive.DiveCalculationResult); ok && result != nil {
				simulations.RecordSimulation(len(result.Results), result.HasBreach(), len(result.Advisories))
			}
		}

		return response, err
	}
}

// extractCommandName extracts a clean command name from the request using reflection
// Examples:
//   - "*commands.SimulateDiveCommand" → "SimulateDiveCommand"
//   - "*queries.GetPlanQuery" → "GetPlanQuery"
func extractCommandName(request common.Request) string {
	if request == nil {
		return "UnknownCommand"
	}

	requestType := reflect.TypeOf(request)
	fullName := requestType.String()
	fullName = strings.TrimPrefix(fullName, "*")

	parts := strings.Split(fullName, ".")
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}

	return fullName
}
