package core

import (
	"fmt"
	"os"
	"strings"

	"vdash/internal/core/domain"
	"vdash/internal/ports"
)

const apiPathSuffix = "/api"

// ActiveClusterProvider is the part of the registry the router depends on.
type ActiveClusterProvider interface {
	GetActive() (domain.Cluster, bool)
}

// Route is where a single request is dispatched.
type Route struct {
	Cluster      domain.Cluster
	BaseEndpoint string
	// Token is the bearer token for the cluster, empty if none is stored.
	Token string
}

// RequestRouter resolves the active cluster for every outgoing request. It
// never falls back to a default endpoint.
type RequestRouter struct {
	clusters ActiveClusterProvider
	keyring  ports.Keyring
}

func ProvideRequestRouter(clusters *ClusterRegistry, keyring ports.Keyring) *RequestRouter {
	return NewRequestRouter(clusters, keyring)
}

func NewRequestRouter(clusters ActiveClusterProvider, keyring ports.Keyring) *RequestRouter {
	return &RequestRouter{clusters: clusters, keyring: keyring}
}

// ResolveBaseEndpoint returns the active cluster url followed by "/api".
func (r *RequestRouter) ResolveBaseEndpoint() (string, error) {
	_, endpoint, err := r.resolveActive()
	return endpoint, err
}

func (r *RequestRouter) resolveActive() (domain.Cluster, string, error) {
	cluster, ok := r.clusters.GetActive()
	if !ok {
		return domain.Cluster{}, "", &domain.NoActiveClusterError{}
	}
	return cluster, cluster.URL + apiPathSuffix, nil
}

// Resolve returns the full route for the active cluster, including its stored
// bearer token. A keyring that cannot be reached degrades to no token.
func (r *RequestRouter) Resolve() (Route, error) {
	cluster, endpoint, err := r.resolveActive()
	if err != nil {
		return Route{}, err
	}
	route := Route{Cluster: cluster, BaseEndpoint: endpoint}

	if r.keyring == nil {
		return route, nil
	}
	key := ClusterTokenKey(cluster.ID)
	exists, err := r.keyring.HasKey(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARN: cannot read token for cluster %s from keyring: %v\n", cluster.Name, err)
		return route, nil
	}
	if !exists {
		return route, nil
	}
	token, err := r.keyring.GetKey(key)
	if err != nil {
		return Route{}, fmt.Errorf("failed to read token for cluster %s: %w", cluster.Name, err)
	}
	route.Token = strings.TrimSpace(token)
	return route, nil
}

// ClusterTokenKey is the keyring entry holding a cluster's bearer token.
func ClusterTokenKey(clusterID string) string {
	return fmt.Sprintf("cluster-%s-token", clusterID)
}
