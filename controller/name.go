package controller

import (
	"net/http"

	"github.com/golang/glog"

	"github.com/microcosm-cc/ensresolver/resolver"
)

// NameType is the body of a successful lookup
type NameType struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// NameController is a web controller
type NameController struct {
	Resolver *resolver.CachingResolver
}

// Handler is the web handler for /names/{name}
func (ctl *NameController) Handler(w http.ResponseWriter, r *http.Request) {
	c := MakeContext(w, r)

	method := c.GetHTTPMethod()
	switch method {
	case http.MethodOptions:
		c.RespondWithOptions([]string{"OPTIONS", "HEAD", "GET"})
		return
	case http.MethodGet, http.MethodHead:
		ctl.Read(c)
	default:
		c.RespondWithStatus(http.StatusMethodNotAllowed)
		return
	}
}

// Read handles GET
func (ctl *NameController) Read(c *Context) {
	name, exists := c.RouteVars["name"]
	if !exists {
		c.RespondWithErrorMessage("No name specified", http.StatusBadRequest)
		return
	}

	normalized, err := resolver.Normalize(name)
	if err != nil {
		c.RespondWithErrorDetail(err, http.StatusBadRequest)
		return
	}

	address, ok, err := ctl.Resolver.Resolve(c.Request.Context(), normalized)
	if err != nil {
		glog.Errorf("ctl.Resolver.Resolve(%s) %+v", normalized, err)
		c.RespondWithErrorDetail(err, http.StatusInternalServerError)
		return
	}

	if !ok || address == "" {
		c.RespondWithErrorMessage("Could not resolve "+normalized, http.StatusNotFound)
		return
	}

	c.RespondWithData(NameType{Name: normalized, Address: address})
}
