package cli

import (
	"github.com/valter-silva-au/taskdeck/internal/core"
	"github.com/valter-silva-au/taskdeck/internal/observability"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath     string
	Store        *core.Store
	Config       *core.AppConfig
	EventLog     observability.EventLog
	ActivityCalc observability.ActivityCalculator
)
