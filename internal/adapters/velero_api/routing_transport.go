package velero_api

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"vdash/internal/core"
)

// RouteResolver resolves where the next request goes.
type RouteResolver interface {
	Resolve() (core.Route, error)
}

// RoutingTransport is the request stage that binds every call to the active
// cluster. Requests carry a path relative to the API root; the transport
// prefixes it with the resolved base endpoint right before dispatch. With no
// active cluster the request is never sent.
type RoutingTransport struct {
	resolver RouteResolver
	next     http.RoundTripper
}

func NewRoutingTransport(resolver RouteResolver, next http.RoundTripper) *RoutingTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &RoutingTransport{resolver: resolver, next: next}
}

func (t *RoutingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	route, err := t.resolver.Resolve()
	if err != nil {
		closeBody(req)
		return nil, err
	}

	base, err := url.Parse(route.BaseEndpoint)
	if err != nil {
		closeBody(req)
		return nil, fmt.Errorf("invalid base endpoint %q for cluster %s: %w", route.BaseEndpoint, route.Cluster.Name, err)
	}

	routed := req.Clone(req.Context())
	routed.URL = resolveAgainst(base, req.URL)
	routed.Host = ""
	if route.Token != "" && routed.Header.Get("Authorization") == "" {
		routed.Header.Set("Authorization", "Bearer "+route.Token)
	}

	resp, err := t.next.RoundTrip(routed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARN: request to %s failed: %v\n", route.Cluster.Name, err)
		return nil, err
	}
	return resp, nil
}

// resolveAgainst joins the request path onto the base endpoint path, keeping
// the request's query.
func resolveAgainst(base *url.URL, ref *url.URL) *url.URL {
	resolved := *base
	resolved.Path = strings.TrimRight(base.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
	resolved.RawPath = ""
	resolved.RawQuery = ref.RawQuery
	resolved.Fragment = ""
	return &resolved
}

func closeBody(req *http.Request) {
	if req.Body != nil {
		req.Body.Close()
	}
}
