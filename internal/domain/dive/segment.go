package dive

import (
	"fmt"

	"github.com/google/uuid"
)

// SegmentKind is the closed set of planned actions a segment can represent
type SegmentKind string

const (
	SegmentSwim          SegmentKind = "SWIM"
	SegmentTurnLeft      SegmentKind = "TURN_LEFT"
	SegmentTurnRight     SegmentKind = "TURN_RIGHT"
	SegmentJumpLeft      SegmentKind = "JUMP_LEFT"
	SegmentJumpRight     SegmentKind = "JUMP_RIGHT"
	SegmentStageEvent    SegmentKind = "STAGE_EVENT"
	SegmentTurnaround    SegmentKind = "TURNAROUND"
	SegmentRecalculation SegmentKind = "RECALCULATION"
)

// jumpTransitMinutes is the fixed transit time for jump segments. A jump is
// a short traverse onto a parallel line; no configuration path overrides it.
const jumpTransitMinutes = 2.0

var segmentKinds = map[SegmentKind]bool{
	SegmentSwim:          true,
	SegmentTurnLeft:      true,
	SegmentTurnRight:     true,
	SegmentJumpLeft:      true,
	SegmentJumpRight:     true,
	SegmentStageEvent:    true,
	SegmentTurnaround:    true,
	SegmentRecalculation: true,
}

// IsValidSegmentKind checks if a kind string is valid
func IsValidSegmentKind(kind string) bool {
	return segmentKinds[SegmentKind(kind)]
}

// ParseSegmentKind parses a kind string into a SegmentKind
func ParseSegmentKind(kind string) (SegmentKind, error) {
	k := SegmentKind(kind)
	if !segmentKinds[k] {
		return SegmentSwim, fmt.Errorf("invalid segment kind: %s", kind)
	}
	return k, nil
}

// Segment represents one planned action in a dive plan.
//
// Depth and Distance are meaningful only for SWIM segments; StageID only for
// STAGE_EVENT segments (drop while outbound, pickup while returning). Every
// segment carries a stable identity so results and advisories can reference
// it across runs.
type Segment struct {
	ID       string
	Kind     SegmentKind
	Depth    float64
	Distance float64
	StageID  string
	Note     string
}

// NewSwimSegment creates a swim leg at the given depth and distance
func NewSwimSegment(depth, distance float64) (*Segment, error) {
	if depth < 0 {
		return nil, fmt.Errorf("depth cannot be negative")
	}
	if distance < 0 {
		return nil, fmt.Errorf("distance cannot be negative")
	}
	return &Segment{
		ID:       uuid.NewString(),
		Kind:     SegmentSwim,
		Depth:    depth,
		Distance: distance,
	}, nil
}

// NewMarkerSegment creates a segment for the non-swim kinds
func NewMarkerSegment(kind SegmentKind) (*Segment, error) {
	switch kind {
	case SegmentTurnLeft, SegmentTurnRight, SegmentJumpLeft, SegmentJumpRight,
		SegmentTurnaround, SegmentRecalculation:
		return &Segment{ID: uuid.NewString(), Kind: kind}, nil
	default:
		return nil, fmt.Errorf("kind %s is not a marker segment", kind)
	}
}

// NewStageEventSegment creates a stage drop/pickup marker for the given stage
func NewStageEventSegment(stageID string) (*Segment, error) {
	if stageID == "" {
		return nil, fmt.Errorf("stage id cannot be empty")
	}
	return &Segment{
		ID:      uuid.NewString(),
		Kind:    SegmentStageEvent,
		StageID: stageID,
	}, nil
}

func (s *Segment) String() string {
	switch s.Kind {
	case SegmentSwim:
		return fmt.Sprintf("Swim(%.0fm@%.0fm)", s.Distance, s.Depth)
	case SegmentStageEvent:
		return fmt.Sprintf("StageEvent(%s)", s.StageID)
	default:
		return string(s.Kind)
	}
}
