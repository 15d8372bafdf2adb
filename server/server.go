package server

import (
	"fmt"
	"net/http"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/robfig/cron"

	"github.com/microcosm-cc/ensresolver/controller"
	"github.com/microcosm-cc/ensresolver/resolver"
)

// NewRouter registers all handlers against the caching resolver
func NewRouter(cr *resolver.CachingResolver) *mux.Router {
	names := &controller.NameController{Resolver: cr}
	caches := &controller.CacheController{Resolver: cr}

	handlers := map[string]func(http.ResponseWriter, *http.Request){
		"/api/v1/names/{name:[^/]+}":       names.Handler,
		"/api/v1/names/{name:[^/]+}/cache": caches.NameHandler,
		"/api/v1/cache":                    caches.Handler,
	}

	r := mux.NewRouter()
	for url, handler := range handlers {
		r.HandleFunc(url, handler)
	}

	return r
}

// StartCron schedules jobs and starts the scheduler. An invalid schedule is
// an error rather than a silently skipped job.
func StartCron(jobs map[string]func()) (*cron.Cron, error) {
	c := cron.New()
	for schedule, job := range jobs {
		if err := c.AddFunc(schedule, job); err != nil {
			return nil, fmt.Errorf("cron schedule %q: %v", schedule, err)
		}
	}
	c.Start()

	return c, nil
}

// StartServer owns the http process and cron jobs. It only returns when the
// listener fails.
func StartServer(port int64, handler http.Handler, jobs map[string]func()) error {
	c, err := StartCron(jobs)
	if err != nil {
		return err
	}
	defer c.Stop()

	if glog.V(2) {
		glog.Infof("Listening on port %d with %d cron jobs", port, len(jobs))
	}

	return http.ListenAndServe(fmt.Sprintf(":%d", port), handler)
}
