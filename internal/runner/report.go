package runner

import (
	"time"

	"rpi_trader/internal/models"
)

// Имена модулей в отчёте, логах и метках метрик.
const (
	ModuleEntry      = "entry"
	ModuleSR         = "sr"
	ModuleDivergence = "divergence"
	ModuleKijun      = "kijun"
)

// ModuleOutcome: что модуль сделал за цикл.
type ModuleOutcome struct {
	Module       string
	Fired        bool
	Forwarded    bool
	Insufficient bool
	Err          error
}

// CycleReport: итог одного цикла диспетчера.
type CycleReport struct {
	ID       string
	Started  time.Time
	Finished time.Time

	RawMode   string
	Mode      models.Mode
	ModeValid bool

	Result   string
	Messages []string
	Outcomes []ModuleOutcome
}

func (r CycleReport) Outcome(module string) (ModuleOutcome, bool) {
	for _, o := range r.Outcomes {
		if o.Module == module {
			return o, true
		}
	}
	return ModuleOutcome{}, false
}

func (r CycleReport) Ran(module string) bool {
	_, ok := r.Outcome(module)
	return ok
}
