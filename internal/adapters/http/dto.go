package http

import (
	"fmt"

	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

// segmentPayload is the wire shape of one plan segment
type segmentPayload struct {
	ID       string  `json:"id,omitempty"`
	Kind     string  `json:"kind" binding:"required"`
	Depth    float64 `json:"depth,omitempty"`
	Distance float64 `json:"distance,omitempty"`
	StageID  string  `json:"stageId,omitempty"`
	Note     string  `json:"note,omitempty"`
}

// planPayload is the wire shape of a plan
type planPayload struct {
	ID       string           `json:"id,omitempty"`
	Name     string           `json:"name" binding:"required"`
	Segments []segmentPayload `json:"segments"`
}

// stagePayload is the wire shape of a stage definition
type stagePayload struct {
	ID               string  `json:"id" binding:"required"`
	Name             string  `json:"name,omitempty"`
	TankVolume       float64 `json:"tankVolume"`
	FillPressure     float64 `json:"fillPressure"`
	ReserveInPrimary bool    `json:"reserveInPrimary,omitempty"`
}

// configurationPayload is the wire shape of the standing configuration
type configurationPayload struct {
	ConsumptionRate    float64        `json:"consumptionRate"`
	SwimSpeed          float64        `json:"swimSpeed"`
	TankVolume         float64        `json:"tankVolume"`
	FillPressure       float64        `json:"fillPressure"`
	ConservatismMargin float64        `json:"conservatismMargin"`
	StageTime          float64        `json:"stageTime"`
	Stages             []stagePayload `json:"stages"`
}

type stageStatePayload struct {
	StageID      string  `json:"stageId"`
	Pressure     float64 `json:"pressure"`
	DropPressure float64 `json:"dropPressure"`
	Dropped      bool    `json:"dropped"`
}

type recalculationPayload struct {
	Scenario          string  `json:"scenario"`
	Possible          bool    `json:"possible"`
	AvailableVolume   float64 `json:"availableVolume"`
	AvailablePressure float64 `json:"availablePressure"`
	Source            string  `json:"source"`
	GasToExit         float64 `json:"gasToExit"`
	Threshold         float64 `json:"threshold"`
}

type segmentResultPayload struct {
	SegmentID         string                `json:"segmentId"`
	Kind              string                `json:"kind"`
	Time              float64               `json:"time"`
	Depth             float64               `json:"depth"`
	GasConsumed       float64               `json:"gasConsumed"`
	TotalConsumed     float64               `json:"totalConsumed"`
	TotalTime         float64               `json:"totalTime"`
	AverageDepth      float64               `json:"averageDepth"`
	RemainingVolume   float64               `json:"remainingVolume"`
	RemainingPressure float64               `json:"remainingPressure"`
	Stages            []stageStatePayload   `json:"stages"`
	DroppedStages     []string              `json:"droppedStages,omitempty"`
	BreathedStages    []string              `json:"breathedStages,omitempty"`
	BreathedPrimary   bool                  `json:"breathedPrimary"`
	TurnWarning       bool                  `json:"turnWarning"`
	Returning         bool                  `json:"returning"`
	DistanceFromExit  float64               `json:"distanceFromExit"`
	TimeFromExit      float64               `json:"timeFromExit"`
	GasToExit         float64               `json:"gasToExit"`
	Recalculation     *recalculationPayload `json:"recalculation,omitempty"`
}

type advisoryPayload struct {
	SegmentID     string   `json:"segmentId"`
	StageID       string   `json:"stageId"`
	SplitDistance *float64 `json:"splitDistance,omitempty"`
}

type simulationPayload struct {
	Results               []segmentResultPayload `json:"results"`
	TankVolume            float64                `json:"tankVolume"`
	TotalVolume           float64                `json:"totalVolume"`
	EffectiveVolume       float64                `json:"effectiveVolume"`
	UsableVolume          float64                `json:"usableVolume"`
	RoundedUsableVolume   float64                `json:"roundedUsableVolume"`
	RoundedUsablePressure float64                `json:"roundedUsablePressure"`
	TurnPressure          float64                `json:"turnPressure"`
	Breach                bool                   `json:"breach"`
	Advisories            []advisoryPayload      `json:"advisories,omitempty"`
}

func toPlanPayload(plan *dive.Plan) planPayload {
	segments := plan.Segments()
	payload := planPayload{
		ID:       plan.ID(),
		Name:     plan.Name(),
		Segments: make([]segmentPayload, 0, len(segments)),
	}
	for _, seg := range segments {
		payload.Segments = append(payload.Segments, segmentPayload{
			ID:       seg.ID,
			Kind:     string(seg.Kind),
			Depth:    seg.Depth,
			Distance: seg.Distance,
			StageID:  seg.StageID,
			Note:     seg.Note,
		})
	}
	return payload
}

func toDomainSegments(payloads []segmentPayload) ([]*dive.Segment, error) {
	segments := make([]*dive.Segment, 0, len(payloads))
	for i, p := range payloads {
		seg, err := toDomainSegment(p)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

func toDomainSegment(p segmentPayload) (*dive.Segment, error) {
	kind, err := dive.ParseSegmentKind(p.Kind)
	if err != nil {
		return nil, err
	}

	var seg *dive.Segment
	switch kind {
	case dive.SegmentSwim:
		seg, err = dive.NewSwimSegment(p.Depth, p.Distance)
	case dive.SegmentStageEvent:
		seg, err = dive.NewStageEventSegment(p.StageID)
	default:
		seg, err = dive.NewMarkerSegment(kind)
	}
	if err != nil {
		return nil, err
	}

	if p.ID != "" {
		seg.ID = p.ID
	}
	seg.Note = p.Note
	return seg, nil
}

func toConfigurationPayload(cfg *dive.StandingConfiguration) configurationPayload {
	payload := configurationPayload{
		ConsumptionRate:    cfg.ConsumptionRate,
		SwimSpeed:          cfg.SwimSpeed,
		TankVolume:         cfg.TankVolume,
		FillPressure:       cfg.FillPressure,
		ConservatismMargin: cfg.ConservatismMargin,
		StageTime:          cfg.StageTime,
		Stages:             make([]stagePayload, 0, len(cfg.Stages)),
	}
	for _, st := range cfg.Stages {
		payload.Stages = append(payload.Stages, stagePayload{
			ID:               st.ID,
			Name:             st.Name,
			TankVolume:       st.TankVolume,
			FillPressure:     st.FillPressure,
			ReserveInPrimary: st.ReserveInPrimary,
		})
	}
	return payload
}

func toDomainConfiguration(p configurationPayload) *dive.StandingConfiguration {
	cfg := &dive.StandingConfiguration{
		ConsumptionRate:    p.ConsumptionRate,
		SwimSpeed:          p.SwimSpeed,
		TankVolume:         p.TankVolume,
		FillPressure:       p.FillPressure,
		ConservatismMargin: p.ConservatismMargin,
		StageTime:          p.StageTime,
	}
	for _, st := range p.Stages {
		cfg.Stages = append(cfg.Stages, &dive.StageDefinition{
			ID:               st.ID,
			Name:             st.Name,
			TankVolume:       st.TankVolume,
			FillPressure:     st.FillPressure,
			ReserveInPrimary: st.ReserveInPrimary,
		})
	}
	return cfg
}

func toSimulationPayload(result *dive.DiveCalculationResult) simulationPayload {
	payload := simulationPayload{
		Results:               make([]segmentResultPayload, 0, len(result.Results)),
		TankVolume:            result.TankVolume,
		TotalVolume:           result.TotalVolume,
		EffectiveVolume:       result.EffectiveVolume,
		UsableVolume:          result.UsableVolume,
		RoundedUsableVolume:   result.RoundedUsableVolume,
		RoundedUsablePressure: result.RoundedUsablePressure,
		TurnPressure:          result.TurnPressure,
		Breach:                result.HasBreach(),
	}

	for _, res := range result.Results {
		entry := segmentResultPayload{
			SegmentID:         res.SegmentID,
			Kind:              string(res.Kind),
			Time:              res.Time,
			Depth:             res.Depth,
			GasConsumed:       res.GasConsumed,
			TotalConsumed:     res.TotalConsumed,
			TotalTime:         res.TotalTime,
			AverageDepth:      res.AverageDepth,
			RemainingVolume:   res.RemainingVolume,
			RemainingPressure: res.RemainingPressure,
			Stages:            make([]stageStatePayload, 0, len(res.Stages)),
			DroppedStages:     res.DroppedStages,
			BreathedStages:    res.BreathedStages,
			BreathedPrimary:   res.BreathedPrimary,
			TurnWarning:       res.TurnWarning,
			Returning:         res.Returning,
			DistanceFromExit:  res.DistanceFromExit,
			TimeFromExit:      res.TimeFromExit,
			GasToExit:         res.GasToExit,
		}
		for _, st := range res.Stages {
			entry.Stages = append(entry.Stages, stageStatePayload{
				StageID:      st.StageID,
				Pressure:     st.Pressure,
				DropPressure: st.DropPressure,
				Dropped:      st.Dropped,
			})
		}
		if res.Recalculation != nil {
			entry.Recalculation = &recalculationPayload{
				Scenario:          string(res.Recalculation.Scenario),
				Possible:          res.Recalculation.Possible,
				AvailableVolume:   res.Recalculation.AvailableVolume,
				AvailablePressure: res.Recalculation.AvailablePressure,
				Source:            res.Recalculation.Source,
				GasToExit:         res.Recalculation.GasToExit,
				Threshold:         res.Recalculation.Threshold,
			}
		}
		payload.Results = append(payload.Results, entry)
	}

	for _, adv := range result.Advisories {
		payload.Advisories = append(payload.Advisories, advisoryPayload{
			SegmentID:     adv.SegmentID,
			StageID:       adv.StageID,
			SplitDistance: adv.SplitDistance,
		})
	}

	return payload
}
