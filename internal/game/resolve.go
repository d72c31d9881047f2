package game

// Overrides are per-session tweaks applied on top of the loaded tuning.
type Overrides struct {
	// Goal replaces the completion goal of the game: correct moves for
	// orientation, pattern length for memory, targets for spatial, rounds for the others.
	Goal *int `json:"goal,omitempty" validate:"omitempty,min=1,max=100"`
	// Instant zeroes every delayed transition.
	Instant bool `json:"instant,omitempty"`
}

// Resolve returns cfg with o applied to the section of game k.
// cfg is not modified; slices are shared and must be treated as read-only.
func Resolve(cfg Config, k Kind, o Overrides) Config {
	if o.Goal != nil && *o.Goal > 0 {
		g := *o.Goal
		switch k {
		case Orientation:
			cfg.Orientation.TargetCorrect = g
		case Memory:
			cfg.Memory.MaxPattern = g
		case Arithmetic:
			cfg.Arithmetic.MaxRounds = g
		case Language:
			cfg.Language.MaxRounds = g
		case Puzzle:
			cfg.Puzzle.MaxRounds = g
		case Spatial:
			if g < len(cfg.Spatial.Targets) {
				cfg.Spatial.Targets = cfg.Spatial.Targets[:g]
			}
		}
	}
	if o.Instant {
		cfg.Orientation.AfterCorrect = 0
		cfg.Orientation.AfterError = 0
		cfg.Orientation.Timing = Timing{}
		cfg.Memory.Lit = 0
		cfg.Memory.Gap = 0
		cfg.Memory.Timing = Timing{}
		cfg.Arithmetic.Timing = Timing{}
		cfg.Language.Timing = Timing{}
		cfg.Puzzle.AfterRound = 0
		cfg.Puzzle.Timing = Timing{}
		cfg.Spatial.Timing = Timing{}
	}
	return cfg
}
