package model

import "fmt"

// BoxNode is one step in the patient flow. Nodes form a tree rooted at the
// start node; each node owns the ordered list of its child node ids.
type BoxNode struct {
	ID            string   `json:"id"`
	Lines         []string `json:"lines"`
	N             *int     `json:"n"`
	CountOverride string   `json:"countOverride,omitempty"`
	Position      Point    `json:"position"`
	Column        int      `json:"column"`
	ChildIDs      []string `json:"childIds"`

	// Layout caches, rebuilt on every recompute. Never serialized.
	Width        float64 `json:"-"`
	Height       float64 `json:"-"`
	SubtreeWidth float64 `json:"-"`
	Side         Side    `json:"-"`
}

// Point is a 2-D canvas position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Clone creates a deep copy of the node
func (b BoxNode) Clone() BoxNode {
	clone := b

	if b.N != nil {
		v := *b.N
		clone.N = &v
	}
	if b.Lines != nil {
		clone.Lines = make([]string, len(b.Lines))
		copy(clone.Lines, b.Lines)
	}
	if b.ChildIDs != nil {
		clone.ChildIDs = make([]string, len(b.ChildIDs))
		copy(clone.ChildIDs, b.ChildIDs)
	}

	return clone
}

// Interval is the directed edge from a parent node to one child node.
// Exactly one interval exists per (parent, child) pair.
type Interval struct {
	ID        string        `json:"id"`
	ParentID  string        `json:"parentId"`
	ChildID   string        `json:"childId"`
	Arrow     *bool         `json:"arrow,omitempty"`
	Delta     int           `json:"delta"`
	Exclusion *ExclusionBox `json:"exclusion,omitempty"`
}

// Clone creates a deep copy of the interval
func (iv Interval) Clone() Interval {
	clone := iv

	if iv.Arrow != nil {
		v := *iv.Arrow
		clone.Arrow = &v
	}
	if iv.Exclusion != nil {
		e := iv.Exclusion.Clone()
		clone.Exclusion = &e
	}

	return clone
}

// ExclusionBox records the participants removed on an interval, with an
// optional breakdown into reasons.
type ExclusionBox struct {
	Label         string            `json:"label"`
	Total         *int              `json:"total"`
	TotalOverride string            `json:"totalOverride,omitempty"`
	Reasons       []ExclusionReason `json:"reasons"`
}

// DefaultExclusionLabel is the label given to a freshly created exclusion box.
const DefaultExclusionLabel = "Excluded"

// NewExclusionBox returns an empty exclusion box with the default label.
func NewExclusionBox() *ExclusionBox {
	return &ExclusionBox{
		Label:   DefaultExclusionLabel,
		Reasons: []ExclusionReason{},
	}
}

// Clone creates a deep copy of the exclusion box
func (e ExclusionBox) Clone() ExclusionBox {
	clone := e

	if e.Total != nil {
		v := *e.Total
		clone.Total = &v
	}
	if e.Reasons != nil {
		clone.Reasons = make([]ExclusionReason, len(e.Reasons))
		for idx, r := range e.Reasons {
			clone.Reasons[idx] = r.Clone()
		}
	}

	return clone
}

// UserSum adds up the counts of all user-kind reasons, treating nil as 0.
func (e ExclusionBox) UserSum() int {
	sum := 0
	for _, r := range e.Reasons {
		if r.Kind == ReasonUser && r.N != nil {
			sum += *r.N
		}
	}
	return sum
}

// AutoReason returns a pointer to the auto-kind reason, or nil if absent.
// At most one auto reason exists per exclusion box.
func (e *ExclusionBox) AutoReason() *ExclusionReason {
	for i := range e.Reasons {
		if e.Reasons[i].Kind == ReasonAuto {
			return &e.Reasons[i]
		}
	}
	return nil
}

// UserReasons returns the user-kind reasons in order.
func (e ExclusionBox) UserReasons() []ExclusionReason {
	out := make([]ExclusionReason, 0, len(e.Reasons))
	for _, r := range e.Reasons {
		if r.Kind == ReasonUser {
			out = append(out, r)
		}
	}
	return out
}

// ExclusionReason is one row within an exclusion box.
type ExclusionReason struct {
	ID            string     `json:"id"`
	Label         string     `json:"label"`
	N             *int       `json:"n"`
	Kind          ReasonKind `json:"kind"`
	CountOverride string     `json:"countOverride,omitempty"`
}

// Clone creates a deep copy of the reason
func (r ExclusionReason) Clone() ExclusionReason {
	clone := r
	if r.N != nil {
		v := *r.N
		clone.N = &v
	}
	return clone
}

// ReasonKind distinguishes user-entered reasons from the synthesized remainder
type ReasonKind string

const (
	ReasonUser ReasonKind = "user"
	ReasonAuto ReasonKind = "auto"
)

// IsValid returns true if the kind is a recognized value
func (k ReasonKind) IsValid() bool {
	switch k {
	case ReasonUser, ReasonAuto:
		return true
	}
	return false
}

// AutoReasonLabel is the default label of the synthesized remainder reason.
const AutoReasonLabel = "Other"

// AutoReasonID is the fixed id of the synthesized remainder reason. The row
// is regenerated on every recompute, so it never needs a unique id.
const AutoReasonID = "auto"

// PhaseBox is a labeled bracket alongside a contiguous run of main-flow nodes.
type PhaseBox struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	StartNodeID string `json:"startNodeId"`
	EndNodeID   string `json:"endNodeId"`

	// Bracket geometry, rebuilt on every recompute. Never serialized.
	X       float64 `json:"-"`
	TopY    float64 `json:"-"`
	BottomY float64 `json:"-"`
}

// Side marks which half of the tree a node landed on after a branch split.
// Exclusion boxes render on the same side as their child node.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// CountFormat selects how a count line is rendered.
type CountFormat string

const (
	FormatUpper         CountFormat = "upper"         // "N = 1 234"
	FormatParenthetical CountFormat = "parenthetical" // "(n = 1 234)"
)

// IsValid returns true if the format is a recognized value
func (f CountFormat) IsValid() bool {
	switch f {
	case FormatUpper, FormatParenthetical:
		return true
	}
	return false
}

// Settings is the process-wide configuration handed into every computation.
// It is passed explicitly; the engine keeps no ambient state.
type Settings struct {
	AutoCalc     bool        `json:"autoCalc"`
	ArrowsGlobal bool        `json:"arrowsGlobal"`
	CountFormat  CountFormat `json:"countFormat"`
	FreeEdit     bool        `json:"freeEdit"`
}

// DefaultSettings returns the settings a fresh document starts with.
func DefaultSettings() Settings {
	return Settings{
		AutoCalc:     true,
		ArrowsGlobal: true,
		CountFormat:  FormatUpper,
		FreeEdit:     false,
	}
}

// Validate checks if the settings are logically valid
func (s Settings) Validate() error {
	if !s.CountFormat.IsValid() {
		return fmt.Errorf("invalid count format: %q", s.CountFormat)
	}
	return nil
}

// Graph is the aggregate root: every node and interval keyed by id, the
// ordered phase list, and the current selection. Treated as an immutable
// value: operations clone it and return a new graph.
type Graph struct {
	Nodes      map[string]*BoxNode  `json:"nodes"`
	Intervals  map[string]*Interval `json:"intervals"`
	Phases     []PhaseBox           `json:"phases"`
	StartID    string               `json:"startId"`
	SelectedID string               `json:"selectedId"`
}

// NewGraph creates a graph holding a single start node with the given id.
// The start node is permanent; it is the only node a graph cannot lose.
func NewGraph(startID string) *Graph {
	start := &BoxNode{
		ID:       startID,
		Lines:    []string{"Start"},
		Column:   0,
		ChildIDs: []string{},
	}
	return &Graph{
		Nodes:      map[string]*BoxNode{startID: start},
		Intervals:  map[string]*Interval{},
		Phases:     []PhaseBox{},
		StartID:    startID,
		SelectedID: startID,
	}
}

// Clone creates a deep copy of the graph. Every mutation operation and the
// recompute engine work on a clone, so previously returned graphs are safe
// to retain indefinitely.
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		Nodes:      make(map[string]*BoxNode, len(g.Nodes)),
		Intervals:  make(map[string]*Interval, len(g.Intervals)),
		StartID:    g.StartID,
		SelectedID: g.SelectedID,
	}

	for id, n := range g.Nodes {
		c := n.Clone()
		clone.Nodes[id] = &c
	}
	for id, iv := range g.Intervals {
		c := iv.Clone()
		clone.Intervals[id] = &c
	}
	if g.Phases != nil {
		clone.Phases = make([]PhaseBox, len(g.Phases))
		copy(clone.Phases, g.Phases)
	}

	return clone
}

// Validate checks the structural invariants: the start node exists, every
// child id and interval endpoint resolves, intervals agree with child lists,
// the node graph is a tree, and phases reference main-flow nodes.
func (g *Graph) Validate() error {
	if g.StartID == "" {
		return fmt.Errorf("start node id cannot be empty")
	}
	if _, ok := g.Nodes[g.StartID]; !ok {
		return fmt.Errorf("start node not found: %s", g.StartID)
	}

	parents := make(map[string]string, len(g.Nodes))
	for id, n := range g.Nodes {
		if n == nil {
			return fmt.Errorf("node %s is nil", id)
		}
		if n.ID != id {
			return fmt.Errorf("node key %s does not match node id %s", id, n.ID)
		}
		for _, childID := range n.ChildIDs {
			if _, ok := g.Nodes[childID]; !ok {
				return fmt.Errorf("node %s references missing child: %s", id, childID)
			}
			if prev, dup := parents[childID]; dup {
				return fmt.Errorf("node %s has two parents: %s and %s", childID, prev, id)
			}
			parents[childID] = id
		}
	}
	if parent, ok := parents[g.StartID]; ok {
		return fmt.Errorf("start node %s cannot have a parent (%s)", g.StartID, parent)
	}

	// Parent chains must terminate at a root; a cycle would loop forever.
	for id := range g.Nodes {
		seen := map[string]bool{id: true}
		cur := id
		for {
			p, ok := parents[cur]
			if !ok {
				break
			}
			if seen[p] {
				return fmt.Errorf("node %s is its own ancestor", p)
			}
			seen[p] = true
			cur = p
		}
	}

	pairs := make(map[string]string, len(g.Intervals))
	for id, iv := range g.Intervals {
		if iv == nil {
			return fmt.Errorf("interval %s is nil", id)
		}
		if iv.ID != id {
			return fmt.Errorf("interval key %s does not match interval id %s", id, iv.ID)
		}
		parent, ok := g.Nodes[iv.ParentID]
		if !ok {
			return fmt.Errorf("interval %s references missing parent: %s", id, iv.ParentID)
		}
		if _, ok := g.Nodes[iv.ChildID]; !ok {
			return fmt.Errorf("interval %s references missing child: %s", id, iv.ChildID)
		}
		if !containsID(parent.ChildIDs, iv.ChildID) {
			return fmt.Errorf("interval %s does not match child list of node %s", id, iv.ParentID)
		}
		pair := iv.ParentID + "\x00" + iv.ChildID
		if prev, dup := pairs[pair]; dup {
			return fmt.Errorf("duplicate interval for %s -> %s: %s and %s", iv.ParentID, iv.ChildID, prev, id)
		}
		pairs[pair] = id
		for _, r := range iv.ExclusionReasons() {
			if !r.Kind.IsValid() {
				return fmt.Errorf("interval %s has reason %s with invalid kind: %q", id, r.ID, r.Kind)
			}
		}
	}

	// Every parent/child edge needs its interval.
	for id, n := range g.Nodes {
		for _, childID := range n.ChildIDs {
			if _, ok := pairs[id+"\x00"+childID]; !ok {
				return fmt.Errorf("edge %s -> %s has no interval", id, childID)
			}
		}
	}

	for _, p := range g.Phases {
		if _, ok := g.Nodes[p.StartNodeID]; !ok {
			return fmt.Errorf("phase %s references missing start node: %s", p.ID, p.StartNodeID)
		}
		if _, ok := g.Nodes[p.EndNodeID]; !ok {
			return fmt.Errorf("phase %s references missing end node: %s", p.ID, p.EndNodeID)
		}
	}

	return nil
}

// ExclusionReasons returns the reasons of the interval's exclusion box, or
// nil when the interval has no exclusion.
func (iv *Interval) ExclusionReasons() []ExclusionReason {
	if iv.Exclusion == nil {
		return nil
	}
	return iv.Exclusion.Reasons
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
