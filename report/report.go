/*package report collects the per-entity conditions raised while building
the voxel geometry. These are expected, recoverable outcomes (an occluded
throat is data, not an error), so they are recorded rather than returned.*/
package report

import (
	"fmt"
	"sync"
)

// Kind classifies a recorded condition.
type Kind int

const (
	// DegenerateFacet marks a pore hull or throat facet with too few
	// distinct points to form a shape. The entity gets zero-valued geometry.
	DegenerateFacet Kind = iota
	// RotationFailure marks a throat facet whose vertices were not
	// single-valued in the aligned plane. The mean plane is used.
	RotationFailure
	// Occluded marks a throat whose cross-section is consumed entirely by
	// fiber. The zero-area result is valid.
	Occluded
	// MultiRegionThroat marks a throat whose eroded cross-section split
	// into disjoint regions. Unsupported: the throat degrades to zero area.
	MultiRegionThroat
	// UnassignedVoxel marks label-volume cells left unassigned after the
	// gap-filling dilation.
	UnassignedVoxel
	// OutOfBoundsSeed marks fiber seed points that rounded outside the
	// domain and were dropped.
	OutOfBoundsSeed
)

var kindNames = map[Kind]string{
	DegenerateFacet:   "DegenerateFacet",
	RotationFailure:   "RotationFailure",
	Occluded:          "Occluded",
	MultiRegionThroat: "MultiRegionThroat",
	UnassignedVoxel:   "UnassignedVoxel",
	OutOfBoundsSeed:   "OutOfBoundsSeed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Condition is a single recorded event tied to a pore, throat, or the grid
// as a whole (Id = -1).
type Condition struct {
	Kind   Kind
	Entity string
	Id     int
	Detail string
}

func (c Condition) String() string {
	if c.Id < 0 {
		return fmt.Sprintf("%s: %s", c.Kind, c.Detail)
	}
	return fmt.Sprintf("%s: %s %d: %s", c.Kind, c.Entity, c.Id, c.Detail)
}

// Recorder accumulates conditions. It is the one shared mutable structure
// written by concurrent pipeline tasks and is safe for concurrent append.
type Recorder struct {
	mu    sync.Mutex
	conds []Condition
}

// Add records a condition.
func (r *Recorder) Add(k Kind, entity string, id int, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conds = append(r.conds, Condition{
		Kind: k, Entity: entity, Id: id, Detail: fmt.Sprintf(format, args...),
	})
}

// Conditions returns a copy of everything recorded so far.
func (r *Recorder) Conditions() []Condition {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Condition, len(r.conds))
	copy(out, r.conds)
	return out
}

// Count returns the number of recorded conditions of the given kind.
func (r *Recorder) Count(k Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.conds {
		if c.Kind == k {
			n++
		}
	}
	return n
}
