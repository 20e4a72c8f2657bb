package dive

import (
	"fmt"

	"github.com/google/uuid"
)

// Plan aggregate root - an ordered, named list of segments.
//
// Invariants:
// - Segment identities are unique within the plan
// - Segment order is the simulation order (left to right)
//
// The plan is mutated only by editor operations between simulation runs; the
// engine itself consumes the segment list read-only.
type Plan struct {
	id       string
	name     string
	segments []*Segment
}

// NewPlan creates a new empty plan
func NewPlan(name string) (*Plan, error) {
	if name == "" {
		return nil, fmt.Errorf("plan name cannot be empty")
	}
	return &Plan{
		id:   uuid.NewString(),
		name: name,
	}, nil
}

// RestorePlan rebuilds a plan from persisted state
func RestorePlan(id, name string, segments []*Segment) (*Plan, error) {
	if id == "" {
		return nil, fmt.Errorf("plan id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("plan name cannot be empty")
	}
	p := &Plan{id: id, name: name}
	for _, seg := range segments {
		if err := p.AddSegment(seg); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Plan) ID() string {
	return p.id
}

func (p *Plan) Name() string {
	return p.name
}

// Segments returns a copy of the segment list to prevent mutation
func (p *Plan) Segments() []*Segment {
	segments := make([]*Segment, len(p.segments))
	copy(segments, p.segments)
	return segments
}

// Rename changes the plan name
func (p *Plan) Rename(name string) error {
	if name == "" {
		return fmt.Errorf("plan name cannot be empty")
	}
	p.name = name
	return nil
}

// AddSegment appends a segment to the plan
func (p *Plan) AddSegment(segment *Segment) error {
	if segment == nil {
		return fmt.Errorf("segment cannot be nil")
	}
	if p.indexOf(segment.ID) >= 0 {
		return fmt.Errorf("segment %s already in plan", segment.ID)
	}
	p.segments = append(p.segments, segment)
	return nil
}

// InsertSegment inserts a segment at the given position
func (p *Plan) InsertSegment(segment *Segment, position int) error {
	if segment == nil {
		return fmt.Errorf("segment cannot be nil")
	}
	if p.indexOf(segment.ID) >= 0 {
		return fmt.Errorf("segment %s already in plan", segment.ID)
	}
	if position < 0 || position > len(p.segments) {
		return fmt.Errorf("position %d out of range", position)
	}
	p.segments = append(p.segments, nil)
	copy(p.segments[position+1:], p.segments[position:])
	p.segments[position] = segment
	return nil
}

// RemoveSegment removes a segment by id
func (p *Plan) RemoveSegment(segmentID string) error {
	idx := p.indexOf(segmentID)
	if idx < 0 {
		return fmt.Errorf("segment %s not in plan", segmentID)
	}
	p.segments = append(p.segments[:idx], p.segments[idx+1:]...)
	return nil
}

// MoveSegment moves a segment to a new position, preserving relative order
// of the others
func (p *Plan) MoveSegment(segmentID string, position int) error {
	idx := p.indexOf(segmentID)
	if idx < 0 {
		return fmt.Errorf("segment %s not in plan", segmentID)
	}
	if position < 0 || position >= len(p.segments) {
		return fmt.Errorf("position %d out of range", position)
	}
	seg := p.segments[idx]
	p.segments = append(p.segments[:idx], p.segments[idx+1:]...)
	p.segments = append(p.segments, nil)
	copy(p.segments[position+1:], p.segments[position:])
	p.segments[position] = seg
	return nil
}

// UpdateSegmentDistance changes the distance of a swim segment, used when a
// diver accepts a distance fix
func (p *Plan) UpdateSegmentDistance(segmentID string, distance float64) error {
	idx := p.indexOf(segmentID)
	if idx < 0 {
		return fmt.Errorf("segment %s not in plan", segmentID)
	}
	seg := p.segments[idx]
	if seg.Kind != SegmentSwim {
		return fmt.Errorf("segment %s is not a swim segment", segmentID)
	}
	if distance < 0 {
		return fmt.Errorf("distance cannot be negative")
	}
	seg.Distance = distance
	return nil
}

// SegmentByID finds a segment by id, or nil if absent
func (p *Plan) SegmentByID(segmentID string) *Segment {
	idx := p.indexOf(segmentID)
	if idx < 0 {
		return nil
	}
	return p.segments[idx]
}

func (p *Plan) indexOf(segmentID string) int {
	for i, seg := range p.segments {
		if seg.ID == segmentID {
			return i
		}
	}
	return -1
}

func (p *Plan) String() string {
	return fmt.Sprintf("Plan(id=%s, name=%s, segments=%d)", p.id, p.name, len(p.segments))
}
