package control_loop

import (
	"github.com/markusressel/fuzzy2go/internal/util"
)

// DirectControlLoop applies the target value directly. It can also be used to
// gracefully approach the target by limiting the change per cycle.
type DirectControlLoop struct {
	// limits the maximum allowed change per cycle, nil means no limit
	maxChangePerCycle *int
	value             *float64
}

// NewDirectControlLoop creates a DirectControlLoop, the first cycle
// always applies the target as is.
func NewDirectControlLoop(
	// can be used to limit the maximum allowed change per cycle
	maxChangePerCycle *int,
) *DirectControlLoop {
	return &DirectControlLoop{
		maxChangePerCycle: maxChangePerCycle,
	}
}

func (l *DirectControlLoop) Cycle(target float64) float64 {
	if l.value == nil || l.maxChangePerCycle == nil {
		l.value = &target
		return target
	}

	// we can be above or below the target value,
	// so we subtract or add at most the max change,
	// capped to having reached the target
	maxChange := float64(*l.maxChangePerCycle)
	step := util.Coerce(target-*l.value, -maxChange, maxChange)
	next := *l.value + step
	l.value = &next
	return next
}
