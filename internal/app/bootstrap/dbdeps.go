// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/advocates/internal/app/system/advocateapi"
	"github.com/dalemusser/advocates/internal/app/system/ratelimit"
	"github.com/dalemusser/advocates/internal/app/system/viewstate"
	"github.com/dalemusser/advocates/internal/app/system/workers"
)

// DBDeps holds the back-end dependencies of the app. The directory has no
// database; its back end is the advocates API and the in-memory views.
type DBDeps struct {
	API     *advocateapi.Client
	Views   *viewstate.Registry
	Sweeper *workers.ViewSweeper

	// Activations limits new views per client; nil when unlimited.
	Activations *ratelimit.Limiter
}
