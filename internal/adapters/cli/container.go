package cli

import (
	"fmt"
	"reflect"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/andrescamacho/caveplan-go/internal/adapters/metrics"
	"github.com/andrescamacho/caveplan-go/internal/adapters/persistence"
	"github.com/andrescamacho/caveplan-go/internal/application/common"
	"github.com/andrescamacho/caveplan-go/internal/application/planning/commands"
	"github.com/andrescamacho/caveplan-go/internal/application/planning/queries"
	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
	"github.com/andrescamacho/caveplan-go/internal/infrastructure/config"
	"github.com/andrescamacho/caveplan-go/internal/infrastructure/database"
	"github.com/andrescamacho/caveplan-go/internal/infrastructure/logging"
)

// Container wires infrastructure, repositories, and the mediator together.
// One container serves one CLI invocation.
type Container struct {
	Config   *config.Config
	Logger   zerolog.Logger
	DB       *gorm.DB
	Plans    dive.PlanRepository
	Configs  dive.ConfigurationRepository
	Mediator common.Mediator
}

// NewContainer builds the full application graph from configuration
func NewContainer(configPath string, verbose bool) (*Container, error) {
	cfg := config.LoadConfigOrDefault(configPath)
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger := logging.New(&cfg.Logging)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	plans := persistence.NewGormPlanRepository(db, logger)
	configs := persistence.NewGormConfigurationRepository(db, logger)

	m := common.NewMediator()
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		commandMetrics := metrics.NewCommandMetricsCollector()
		simulationMetrics := metrics.NewSimulationMetricsCollector()
		if err := commandMetrics.Register(); err != nil {
			return nil, fmt.Errorf("failed to register command metrics: %w", err)
		}
		if err := simulationMetrics.Register(); err != nil {
			return nil, fmt.Errorf("failed to register simulation metrics: %w", err)
		}
		m.Use(metrics.PrometheusMiddleware(commandMetrics, simulationMetrics))
	}

	if err := registerHandlers(m, plans, configs, logger); err != nil {
		return nil, err
	}

	return &Container{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Plans:    plans,
		Configs:  configs,
		Mediator: m,
	}, nil
}

// Close releases held resources
func (c *Container) Close() error {
	return database.Close(c.DB)
}

func registerHandlers(
	m common.Mediator,
	plans dive.PlanRepository,
	configs dive.ConfigurationRepository,
	logger zerolog.Logger,
) error {
	registrations := map[reflect.Type]common.RequestHandler{
		reflect.TypeOf(&commands.SimulateDiveCommand{}):       commands.NewSimulateDiveHandler(plans, configs, logger),
		reflect.TypeOf(&commands.FixSegmentDistanceCommand{}): commands.NewFixSegmentDistanceHandler(plans, configs, logger),
		reflect.TypeOf(&commands.SavePlanCommand{}):           commands.NewSavePlanHandler(plans, logger),
		reflect.TypeOf(&commands.DeletePlanCommand{}):         commands.NewDeletePlanHandler(plans, logger),
		reflect.TypeOf(&commands.SaveConfigurationCommand{}):  commands.NewSaveConfigurationHandler(configs, logger),
		reflect.TypeOf(&queries.GetPlanQuery{}):               queries.NewGetPlanHandler(plans),
		reflect.TypeOf(&queries.ListPlansQuery{}):             queries.NewListPlansHandler(plans),
		reflect.TypeOf(&queries.GetConfigurationQuery{}):      queries.NewGetConfigurationHandler(configs),
	}

	for requestType, handler := range registrations {
		if err := m.Register(requestType, handler); err != nil {
			return fmt.Errorf("failed to register handler: %w", err)
		}
	}
	return nil
}
