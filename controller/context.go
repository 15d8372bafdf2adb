package controller

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
)

// StandardResponse is the envelope for every API response
type StandardResponse struct {
	Context string      `json:"context"`
	Status  int         `json:"status"`
	Data    interface{} `json:"data"`
	Errors  []string    `json:"error"`
}

// Context carries the request being handled
type Context struct {
	Request        *http.Request
	ResponseWriter http.ResponseWriter
	RouteVars      map[string]string
}

// MakeContext wraps a request and its mux route variables
func MakeContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{
		Request:        r,
		ResponseWriter: w,
		RouteVars:      mux.Vars(r),
	}
}

// GetHTTPMethod returns the request method, honouring the method override
// header used by clients that can only send GET and POST
func (c *Context) GetHTTPMethod() string {
	if c.Request.Method == http.MethodPost {
		if override := c.Request.Header.Get("X-HTTP-Method-Override"); override != "" {
			return strings.ToUpper(override)
		}
	}
	return c.Request.Method
}

// Respond writes data in a StandardResponse
func (c *Context) Respond(
	data interface{},
	statusCode int,
	errors []string,
) error {

	obj := StandardResponse{
		Context: c.Request.URL.Query().Get("context"),
		Status:  statusCode,
		Data:    data,
		Errors:  errors,
	}

	// Prevent content type detection, a.k.a. sniffing
	c.ResponseWriter.Header().Set("Content-Type", "application/json")
	c.ResponseWriter.Header().Set("Access-Control-Allow-Origin", "*")

	if statusCode == http.StatusOK && c.GetHTTPMethod() == http.MethodGet {
		c.ResponseWriter.Header().Set(`Cache-Control`, `public, max-age=300`)
	} else {
		c.ResponseWriter.Header().Set(`Cache-Control`, `no-cache, max-age=0`)
	}

	output, err := json.Marshal(obj)
	if err != nil {
		http.Error(c.ResponseWriter, err.Error(), http.StatusInternalServerError)
		return err
	}

	// Prevent chunking
	c.ResponseWriter.Header().Set("Content-Length", strconv.Itoa(len(output)))

	return c.WriteResponse(output, statusCode)
}

// WriteResponse ultimately does the job of writing the response
func (c *Context) WriteResponse(output []byte, statusCode int) error {
	c.ResponseWriter.WriteHeader(statusCode)

	// HEAD requests return no body
	if c.GetHTTPMethod() == http.MethodHead {
		return nil
	}

	_, err := c.ResponseWriter.Write(output)
	if err != nil {
		// A broken pipe is a client disconnecting, which is expected
		opErr, ok := err.(*net.OpError)
		if !ok || opErr.Err != syscall.EPIPE {
			glog.Errorf(
				"Error writing %s response to %s : %+v\n",
				c.GetHTTPMethod(),
				c.Request.URL.String(),
				err,
			)
		} else {
			glog.Warningf(
				"Error writing %s response to %s : %+v\n",
				c.GetHTTPMethod(),
				c.Request.URL.String(),
				err,
			)
		}
		return err
	}

	return nil
}

// RespondWithOptions answers an OPTIONS request
func (c *Context) RespondWithOptions(options []string) error {
	c.ResponseWriter.Header().Set("Allow", strings.Join(options, ","))
	c.ResponseWriter.Header().Set("Content-Length", "0")
	c.ResponseWriter.WriteHeader(http.StatusOK)
	return nil
}

// RespondWithStatus responds with an empty StandardResponse
func (c *Context) RespondWithStatus(statusCode int) error {
	return c.Respond(nil, statusCode, nil)
}

// RespondWithErrorMessage responds with custom code and an error message
func (c *Context) RespondWithErrorMessage(message string, statusCode int) error {
	return c.Respond(nil, statusCode, []string{message})
}

// RespondWithErrorDetail responds with the error itself in the data object
func (c *Context) RespondWithErrorDetail(err error, statusCode int) error {
	return c.Respond(err, statusCode, []string{err.Error()})
}

// RespondWithData responds 200 with the specified data
func (c *Context) RespondWithData(data interface{}) error {
	return c.Respond(data, http.StatusOK, nil)
}

// RespondWithOK responds 200 with no data
func (c *Context) RespondWithOK() error {
	return c.RespondWithData(nil)
}
