package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged percentile checks.
// All checks are logged at debug level with the label, chance, drawn roll,
// and success flag, giving combat resolutions a full audit trail.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that draws from src and logs each check.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Intn delegates to the wrapped Source so a Roller is itself a Source.
func (r *Roller) Intn(n int) int { return r.src.Intn(n) }

// Check draws a percentile, compares it against chance, and logs the result.
//
// Postcondition: Returns true iff the drawn percentile <= chance.
func (r *Roller) Check(label string, chance int) bool {
	roll := Percentile(r.src)
	ok := roll <= chance
	r.logger.Debug("percentile check",
		zap.String("label", label),
		zap.Int("chance", chance),
		zap.Int("roll", roll),
		zap.Bool("success", ok),
	)
	return ok
}
