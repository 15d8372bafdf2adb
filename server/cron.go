package server

import (
	"github.com/golang/glog"

	"github.com/microcosm-cc/ensresolver/cache"
)

// Field name   | Mandatory? | Allowed values  | Allowed special characters
// ----------   | ---------- | --------------  | --------------------------
// Seconds      | Yes        | 0-59            | * / , -
// Minutes      | Yes        | 0-59            | * / , -
// Hours        | Yes        | 0-23            | * / , -
// Day of month | Yes        | 1-31            | * / , - ?
// Month        | Yes        | 1-12 or JAN-DEC | * / , -
// Day of week  | Yes        | 0-6 or SUN-SAT  | * / , - ?
//
// Descriptors such as "@every 5m" and "@hourly" are also accepted.

// Jobs returns the cron jobs for store. Without a schedule, or for a store
// that cannot sweep (memcached expires its own items), there are none and
// expiry stays lazy.
func Jobs(store cache.Store, sweepSchedule string) map[string]func() {
	jobs := map[string]func(){}

	if sweepSchedule == "" {
		return jobs
	}

	sweeper, ok := store.(cache.Sweeper)
	if !ok {
		glog.Warningf("sweep_schedule set but %T cannot be swept, ignoring", store)
		return jobs
	}

	jobs[sweepSchedule] = func() {
		removed := sweeper.Sweep()
		if glog.V(2) {
			glog.Infof("Swept %d expired cache entries", removed)
		}
	}

	return jobs
}
