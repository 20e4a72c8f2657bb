package steps

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

type divePlanningContext struct {
	cfg      *dive.StandingConfiguration
	segments []*dive.Segment
	result   *dive.DiveCalculationResult

	fixedDistance float64
	fixable       bool
}

func (c *divePlanningContext) reset() {
	c.cfg = nil
	c.segments = nil
	c.result = nil
	c.fixedDistance = 0
	c.fixable = false
}

// InitializeDivePlanningScenario registers the dive planning step definitions
func InitializeDivePlanningScenario(sc *godog.ScenarioContext) {
	c := &divePlanningContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	sc.Step(`^a standing configuration:$`, c.aStandingConfiguration)
	sc.Step(`^stage tanks:$`, c.stageTanks)
	sc.Step(`^a plan with segments:$`, c.aPlanWithSegments)
	sc.Step(`^I simulate the dive$`, c.iSimulateTheDive)
	sc.Step(`^I fix the distance of segment (\d+)$`, c.iFixTheDistanceOfSegment)

	sc.Step(`^the turn pressure should be (\d+) bar$`, c.theTurnPressureShouldBe)
	sc.Step(`^the rounded usable volume should be (\d+) L$`, c.theRoundedUsableVolumeShouldBe)
	sc.Step(`^the remaining pressure should be ([\d.]+) bar$`, c.theRemainingPressureShouldBe)
	sc.Step(`^the plan should breach turn pressure$`, c.thePlanShouldBreach)
	sc.Step(`^the plan should not breach turn pressure$`, c.thePlanShouldNotBreach)
	sc.Step(`^a stage drop advisory for "([^"]*)" at (\d+) m$`, c.aStageDropAdvisory)
	sc.Step(`^the re-entry scenario should be "([^"]*)"$`, c.theReentryScenarioShouldBe)
	sc.Step(`^the re-entry should be possible$`, c.theReentryShouldBePossible)
	sc.Step(`^the re-entry should not be possible$`, c.theReentryShouldNotBePossible)
	sc.Step(`^the re-entry threshold should be (\d+) bar$`, c.theReentryThresholdShouldBe)
	sc.Step(`^the fixed distance should be (\d+) m$`, c.theFixedDistanceShouldBe)
}

func (c *divePlanningContext) aStandingConfiguration(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("configuration table needs a header and one row")
	}
	row := table.Rows[1]

	c.cfg = &dive.StandingConfiguration{
		ConsumptionRate:    cellFloat(table, row, "consumptionRate"),
		SwimSpeed:          cellFloat(table, row, "swimSpeed"),
		TankVolume:         cellFloat(table, row, "tankVolume"),
		FillPressure:       cellFloat(table, row, "fillPressure"),
		ConservatismMargin: cellFloat(table, row, "conservatismMargin"),
		StageTime:          cellFloat(table, row, "stageTime"),
	}
	return c.cfg.Validate()
}

func (c *divePlanningContext) stageTanks(table *godog.Table) error {
	if c.cfg == nil {
		return fmt.Errorf("no standing configuration set")
	}
	for _, row := range table.Rows[1:] {
		c.cfg.Stages = append(c.cfg.Stages, &dive.StageDefinition{
			ID:               cellValue(table, row, "id"),
			TankVolume:       cellFloat(table, row, "volume"),
			FillPressure:     cellFloat(table, row, "pressure"),
			ReserveInPrimary: cellValue(table, row, "reserveInPrimary") == "true",
		})
	}
	return c.cfg.Validate()
}

func (c *divePlanningContext) aPlanWithSegments(table *godog.Table) error {
	for i, row := range table.Rows[1:] {
		kind, err := dive.ParseSegmentKind(cellValue(table, row, "kind"))
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}

		var seg *dive.Segment
		switch kind {
		case dive.SegmentSwim:
			seg, err = dive.NewSwimSegment(cellFloat(table, row, "depth"), cellFloat(table, row, "distance"))
		case dive.SegmentStageEvent:
			seg, err = dive.NewStageEventSegment(cellValue(table, row, "stage"))
		default:
			seg, err = dive.NewMarkerSegment(kind)
		}
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		c.segments = append(c.segments, seg)
	}
	return nil
}

func (c *divePlanningContext) iSimulateTheDive() error {
	if c.cfg == nil {
		return fmt.Errorf("no standing configuration set")
	}
	c.result = dive.NewConsumptionSimulator().Simulate(c.cfg, c.segments)
	return nil
}

func (c *divePlanningContext) iFixTheDistanceOfSegment(index int) error {
	if c.result == nil {
		return fmt.Errorf("no simulation result")
	}
	c.fixedDistance, c.fixable = dive.NewDistanceFixService().FixDistance(
		c.segments,
		c.result.Results,
		c.result.RoundedUsableVolume,
		c.result.TankVolume,
		index,
	)
	return nil
}

func (c *divePlanningContext) theTurnPressureShouldBe(expected int) error {
	if c.result.TurnPressure != float64(expected) {
		return fmt.Errorf("expected turn pressure %d bar, got %.1f", expected, c.result.TurnPressure)
	}
	return nil
}

func (c *divePlanningContext) theRoundedUsableVolumeShouldBe(expected int) error {
	if c.result.RoundedUsableVolume != float64(expected) {
		return fmt.Errorf("expected rounded usable volume %d L, got %.1f", expected, c.result.RoundedUsableVolume)
	}
	return nil
}

func (c *divePlanningContext) theRemainingPressureShouldBe(expected string) error {
	want, err := strconv.ParseFloat(expected, 64)
	if err != nil {
		return err
	}
	final := c.result.FinalResult()
	if final == nil {
		return fmt.Errorf("empty plan has no final result")
	}
	if math.Abs(final.RemainingPressure-want) > 0.01 {
		return fmt.Errorf("expected remaining pressure %.2f bar, got %.2f", want, final.RemainingPressure)
	}
	return nil
}

func (c *divePlanningContext) thePlanShouldBreach() error {
	if !c.result.HasBreach() {
		return fmt.Errorf("expected a turn pressure breach, got none")
	}
	return nil
}

func (c *divePlanningContext) thePlanShouldNotBreach() error {
	if c.result.HasBreach() {
		return fmt.Errorf("expected no turn pressure breach")
	}
	return nil
}

func (c *divePlanningContext) aStageDropAdvisory(stageID string, split int) error {
	for _, adv := range c.result.Advisories {
		if adv.StageID != stageID {
			continue
		}
		if adv.SplitDistance == nil {
			return fmt.Errorf("advisory for %s has no split distance", stageID)
		}
		if *adv.SplitDistance != float64(split) {
			return fmt.Errorf("expected split at %d m, got %.0f", split, *adv.SplitDistance)
		}
		return nil
	}
	return fmt.Errorf("no advisory for stage %s", stageID)
}

func (c *divePlanningContext) lastRecalculation() (*dive.RecalculationResult, error) {
	for i := len(c.result.Results) - 1; i >= 0; i-- {
		if rec := c.result.Results[i].Recalculation; rec != nil {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("no recalculation segment in the plan")
}

func (c *divePlanningContext) theReentryScenarioShouldBe(expected string) error {
	rec, err := c.lastRecalculation()
	if err != nil {
		return err
	}
	if string(rec.Scenario) != expected {
		return fmt.Errorf("expected scenario %s, got %s", expected, rec.Scenario)
	}
	return nil
}

func (c *divePlanningContext) theReentryShouldBePossible() error {
	rec, err := c.lastRecalculation()
	if err != nil {
		return err
	}
	if !rec.Possible {
		return fmt.Errorf("expected re-entry to be possible")
	}
	return nil
}

func (c *divePlanningContext) theReentryShouldNotBePossible() error {
	rec, err := c.lastRecalculation()
	if err != nil {
		return err
	}
	if rec.Possible {
		return fmt.Errorf("expected re-entry to not be possible")
	}
	return nil
}

func (c *divePlanningContext) theReentryThresholdShouldBe(expected int) error {
	rec, err := c.lastRecalculation()
	if err != nil {
		return err
	}
	if rec.Threshold != float64(expected) {
		return fmt.Errorf("expected threshold %d bar, got %.1f", expected, rec.Threshold)
	}
	return nil
}

func (c *divePlanningContext) theFixedDistanceShouldBe(expected int) error {
	if !c.fixable {
		return fmt.Errorf("segment was not fixable")
	}
	if c.fixedDistance != float64(expected) {
		return fmt.Errorf("expected fixed distance %d m, got %.0f", expected, c.fixedDistance)
	}
	return nil
}

// cellValue finds a cell in a table row by header column name
func cellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	for i, header := range table.Rows[0].Cells {
		if header.Value == columnName {
			if i < len(row.Cells) {
				return strings.TrimSpace(row.Cells[i].Value)
			}
			return ""
		}
	}
	return ""
}

func cellFloat(table *godog.Table, row *messages.PickleTableRow, columnName string) float64 {
	value := cellValue(table, row, columnName)
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
