package optimizer

// Config tunes the momentum/gain descent loop (spec.md §4.6, §6).
type Config struct {
	LearningRate          float64
	NIter                 int
	EarlyExaggerationIter int
	EarlyExaggeration     float64
	InitialMomentum       float64
	FinalMomentum         float64
	Dof                   float64
	NJobs                 int
	CallbacksEveryIters   int

	// Freeze is the number of leading embedding rows Run never moves — the
	// reference embedding's rows during engine.Result.Transform (spec.md
	// §6: "reference embedding treated as fixed ... excluded from the
	// negative gradient via a separate pass"). Transform's simplification
	// of that separate pass is documented on engine.Result.Transform: frozen
	// rows still participate fully in both gradient computations (including
	// summarizing mass in the negative-gradient engine) and simply never
	// receive a position update, which is cheaper than rebuilding the
	// spatial index with a frozen-row bitmask and converges to the same
	// fixed point. Zero means nothing is frozen (an ordinary Fit).
	Freeze int
}

// DefaultConfig returns spec.md §6's optimizer defaults. LearningRate is
// the fixed floor 200 here; engine.Fit replaces a zero engine.Config
// LearningRate with max(200, N/12) once N is known.
func DefaultConfig() Config {
	return Config{
		LearningRate:          200,
		NIter:                 750,
		EarlyExaggerationIter: 250,
		EarlyExaggeration:     12,
		InitialMomentum:       0.5,
		FinalMomentum:         0.8,
		Dof:                   1,
		NJobs:                 0,
		CallbacksEveryIters:   50,
	}
}

// Validate checks Config's fields are usable.
func (c Config) Validate() error {
	switch {
	case c.LearningRate <= 0:
	case c.NIter <= 0:
	case c.EarlyExaggerationIter < 0 || c.EarlyExaggerationIter > c.NIter:
	case c.EarlyExaggeration <= 0:
	case c.InitialMomentum < 0 || c.InitialMomentum > 1:
	case c.FinalMomentum < 0 || c.FinalMomentum > 1:
	case c.Dof <= 0:
	case c.CallbacksEveryIters < 0:
	default:
		return nil
	}
	return ErrBadConfig
}

// State reports the descent loop's position at an Observer dispatch point.
type State struct {
	Iter         int
	Momentum     float64
	Exaggeration float64
	KL           float64
}

// Signal is an Observer's verdict on whether Run should continue.
type Signal int

const (
	Continue Signal = iota
	Stop
)
