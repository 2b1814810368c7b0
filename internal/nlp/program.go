package nlp

import "github.com/roach88/trajopt/internal/traj"

// Program is the result of one generation pass.
type Program struct {
	// Name is the run function name.
	Name string

	// Text is the complete Matlab source.
	Text string

	// Layout summarizes the decision vector and the accumulated problem.
	Layout Layout
}

// Layout describes the sizes of a generated problem.
type Layout struct {
	Steps          int              `json:"steps"`
	StepSize       int              `json:"step_size"`
	StateSize      int              `json:"state_size"`
	StateCount     int              `json:"state_count"`
	TrajectorySize int              `json:"trajectory_size"`
	InstanceCount  int              `json:"instance_count"`
	Equalities     int              `json:"equalities"`
	Inequalities   int              `json:"inequalities"`
	LinEqualities  int              `json:"lin_equalities"`
	LinInequal     int              `json:"lin_inequalities"`
	CostTerms      int              `json:"cost_terms"`
	Quantities     []QuantityLayout `json:"quantities"`
}

// QuantityLayout describes one quantity of the schema.
type QuantityLayout struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Len    int    `json:"len"`
	Index  int    `json:"index"`
	Offset int    `json:"offset"`

	// Offsets are the global offsets for k = 1..NSteps+1. Values <= 0 and
	// above TrajectorySize address the start and goal states.
	Offsets []int `json:"offsets"`
}

func layoutOf(s *traj.Schema) Layout {
	l := Layout{
		Steps:          s.Steps(),
		StepSize:       s.SingleStepSize(),
		StateSize:      s.StateQuantitySize(),
		StateCount:     s.StateQuantityCount(),
		TrajectorySize: s.TotalTrajectorySize(),
		InstanceCount:  s.TotalQuantityCount(),
	}
	for _, q := range s.Quantities() {
		ql := QuantityLayout{
			Name:   q.Name(),
			Type:   q.Type().String(),
			Len:    q.Len(),
			Index:  q.Index(),
			Offset: q.Offset(),
		}
		for k := 1; k <= s.Steps()+1; k++ {
			ql.Offsets = append(ql.Offsets, s.GlobalOffset(q, k))
		}
		l.Quantities = append(l.Quantities, ql)
	}
	return l
}
