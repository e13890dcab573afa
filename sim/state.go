package sim

// State is the stage a Simulation is in. Observers see Idle between frames.
type State int

const (
	Idle State = iota
	MassAggregation
	ForceComputation
	Integration
	DebugOverlayEmission
)

var stateNames = [...]string{
	Idle:                 "idle",
	MassAggregation:      "mass_aggregation",
	ForceComputation:     "force_computation",
	Integration:          "integration",
	DebugOverlayEmission: "debug_overlay_emission",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
