package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetHTTPMethod(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/cache", nil)
	r.Header.Set("X-HTTP-Method-Override", "delete")
	c := MakeContext(httptest.NewRecorder(), r)

	if c.GetHTTPMethod() != http.MethodDelete {
		t.Errorf("GetHTTPMethod() = %s should be DELETE", c.GetHTTPMethod())
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/cache", nil)
	r.Header.Set("X-HTTP-Method-Override", "DELETE")
	c = MakeContext(httptest.NewRecorder(), r)
	if c.GetHTTPMethod() != http.MethodGet {
		t.Errorf("override should only apply to POST, got %s", c.GetHTTPMethod())
	}
}

func TestRespondEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/names/x.eth?context=abc", nil)
	c := MakeContext(w, r)

	if err := c.RespondWithErrorMessage("Could not resolve x.eth", http.StatusNotFound); err != nil {
		t.Fatalf("Respond returned %v", err)
	}

	var resp StandardResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Context != "abc" || resp.Status != http.StatusNotFound {
		t.Errorf("envelope = %+v", resp)
	}
	if len(resp.Errors) != 1 || resp.Errors[0] != "Could not resolve x.eth" {
		t.Errorf("errors = %v", resp.Errors)
	}
	if w.Header().Get("Cache-Control") != "no-cache, max-age=0" {
		t.Errorf("Cache-Control = %q", w.Header().Get("Cache-Control"))
	}
}
