package controller

import (
	"net/http"

	"github.com/microcosm-cc/ensresolver/resolver"
)

// CacheController is a web controller
type CacheController struct {
	Resolver *resolver.CachingResolver
}

// NameHandler is the web handler for /names/{name}/cache
func (ctl *CacheController) NameHandler(w http.ResponseWriter, r *http.Request) {
	c := MakeContext(w, r)

	switch c.GetHTTPMethod() {
	case http.MethodOptions:
		c.RespondWithOptions([]string{"OPTIONS", "DELETE"})
	case http.MethodDelete:
		ctl.Delete(c)
	default:
		c.RespondWithStatus(http.StatusMethodNotAllowed)
	}
}

// Handler is the web handler for /cache
func (ctl *CacheController) Handler(w http.ResponseWriter, r *http.Request) {
	c := MakeContext(w, r)

	switch c.GetHTTPMethod() {
	case http.MethodOptions:
		c.RespondWithOptions([]string{"OPTIONS", "DELETE"})
	case http.MethodDelete:
		ctl.Resolver.Purge()
		c.RespondWithOK()
	default:
		c.RespondWithStatus(http.StatusMethodNotAllowed)
	}
}

// Delete handles DELETE of a single cached name
func (ctl *CacheController) Delete(c *Context) {
	name, exists := c.RouteVars["name"]
	if !exists {
		c.RespondWithErrorMessage("No name specified", http.StatusBadRequest)
		return
	}

	if err := ctl.Resolver.Invalidate(name); err != nil {
		c.RespondWithErrorDetail(err, http.StatusBadRequest)
		return
	}

	c.RespondWithOK()
}
