package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	e "github.com/microcosm-cc/ensresolver/errors"
)

// DefaultGatewayTimeout bounds a single gateway request when no timeout is
// configured
const DefaultGatewayTimeout time.Duration = 10 * time.Second

// responses larger than this are not addresses
const maxGatewayResponse int64 = 64 * 1024

// GatewayConfig describes an HTTP ENS gateway. When ClientID is set requests
// are authenticated with an OAuth2 client credentials token from TokenURL.
type GatewayConfig struct {
	URL          string
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
	Timeout      time.Duration
}

// GatewayResolver resolves names with GET {URL}/{name}, expecting
//
//	{"address": "0x..."}
type GatewayResolver struct {
	base   string
	client *http.Client
}

type gatewayResponse struct {
	Address string `json:"address"`
}

// NewGatewayResolver validates cfg and builds the HTTP client. ctx is used by
// the OAuth2 token source for token refreshes and should outlive the resolver.
func NewGatewayResolver(ctx context.Context, cfg GatewayConfig) (*GatewayResolver, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, e.New("", "NewGatewayResolver", e.InvalidConfiguration,
			fmt.Sprintf("gateway url %q is not an absolute URL", cfg.URL))
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultGatewayTimeout
	}

	var client *http.Client
	if cfg.ClientID != "" {
		if cfg.TokenURL == "" {
			return nil, e.New("", "NewGatewayResolver", e.InvalidConfiguration,
				"gateway client id given without a token url")
		}
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		}
		client = cc.Client(ctx)
	} else {
		client = &http.Client{}
	}
	client.Timeout = timeout

	return &GatewayResolver{
		base:   strings.TrimRight(cfg.URL, "/"),
		client: client,
	}, nil
}

// ResolveOnce asks the gateway for name
func (r *GatewayResolver) ResolveOnce(ctx context.Context, name string) (string, error) {
	const fn = "GatewayResolver.ResolveOnce"

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		r.base+"/"+url.PathEscape(name),
		nil,
	)
	if err != nil {
		return "", e.Wrap(name, fn, e.ResolutionFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", e.Wrap(name, fn, e.ResolutionFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", e.New(name, fn, e.NameNotFound, "gateway does not know this name")
	default:
		return "", e.New(name, fn, e.ResolutionFailed,
			fmt.Sprintf("gateway responded %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxGatewayResponse))
	if err != nil {
		return "", e.Wrap(name, fn, e.ResolutionFailed, err)
	}

	var gr gatewayResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", e.Wrap(name, fn, e.ResolutionFailed, err)
	}

	return gr.Address, nil
}
