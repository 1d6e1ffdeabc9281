package core

import (
	"fmt"

	"vdash/internal/core/domain"

	"github.com/google/uuid"
)

// ClusterRegistry owns the set of known clusters and the single active
// pointer. Every mutation is persisted before it becomes visible, so a failed
// save leaves the registry unchanged.
//
// The active id is always empty or the id of a registered cluster.
type ClusterRegistry struct {
	store      ClusterStore
	state      domain.ClusterRegistryState
	generateID func() string
}

// ProvideClusterRegistry loads the registry from the store, seeding it with
// the default local cluster when nothing has been persisted.
func ProvideClusterRegistry(store ClusterStore) (*ClusterRegistry, error) {
	loaded, err := store.Load()
	if err != nil {
		return nil, err
	}

	state := domain.CreateDefaultRegistryState()
	if loaded != nil {
		state = loaded.Clone()
		if state.ActiveClusterID != nil && state.IndexOf(*state.ActiveClusterID) < 0 {
			state.ActiveClusterID = firstClusterID(state.Clusters)
		}
	}

	return &ClusterRegistry{
		store:      store,
		state:      state,
		generateID: func() string { return uuid.New().String() },
	}, nil
}

// Add registers a new cluster. The first cluster added to an empty registry
// becomes active.
func (r *ClusterRegistry) Add(name, url string, role domain.ClusterRole) (domain.Cluster, error) {
	if violations := domain.ValidateClusterFields(name, url, role); len(violations) > 0 {
		return domain.Cluster{}, domain.NewValidationError(violations...)
	}

	cluster := domain.Cluster{ID: r.generateID(), Name: name, URL: url, Role: role}
	next := r.state.Clone()
	if len(next.Clusters) == 0 {
		next.ActiveClusterID = &cluster.ID
	}
	next.Clusters = append(next.Clusters, cluster)

	if err := r.commit(next); err != nil {
		return domain.Cluster{}, err
	}
	return cluster, nil
}

// Remove deletes a cluster. Unknown ids are ignored. When the active cluster
// is removed the first remaining cluster becomes active, or none if the
// registry is empty.
func (r *ClusterRegistry) Remove(id string) error {
	index := r.state.IndexOf(id)
	if index < 0 {
		return nil
	}

	next := r.state.Clone()
	next.Clusters = append(next.Clusters[:index], next.Clusters[index+1:]...)
	if next.ActiveClusterID != nil && *next.ActiveClusterID == id {
		next.ActiveClusterID = firstClusterID(next.Clusters)
	}
	return r.commit(next)
}

// Update merges the given fields into an existing cluster. Unknown ids are a
// silent no-op; invalid field values are a ValidationError.
func (r *ClusterRegistry) Update(id string, update domain.ClusterUpdate) error {
	index := r.state.IndexOf(id)
	if index < 0 {
		return nil
	}

	next := r.state.Clone()
	cluster := &next.Clusters[index]
	if update.Name != nil {
		cluster.Name = *update.Name
	}
	if update.URL != nil {
		cluster.URL = *update.URL
	}
	if update.Role != nil {
		cluster.Role = *update.Role
	}
	if violations := domain.ValidateClusterFields(cluster.Name, cluster.URL, cluster.Role); len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}
	return r.commit(next)
}

// SetActive selects the cluster that requests are routed to. An id that is not
// registered is rejected.
func (r *ClusterRegistry) SetActive(id string) error {
	if r.state.IndexOf(id) < 0 {
		return domain.NewValidationError(
			domain.FieldViolation("id", fmt.Sprintf("'%s' does not match a registered cluster", id)),
		)
	}
	next := r.state.Clone()
	next.ActiveClusterID = &id
	return r.commit(next)
}

func (r *ClusterRegistry) GetActive() (domain.Cluster, bool) {
	if r.state.ActiveClusterID == nil {
		return domain.Cluster{}, false
	}
	index := r.state.IndexOf(*r.state.ActiveClusterID)
	if index < 0 {
		return domain.Cluster{}, false
	}
	return r.state.Clusters[index], true
}

// ActiveID returns the active cluster id, or "" if none is active.
func (r *ClusterRegistry) ActiveID() string {
	if r.state.ActiveClusterID == nil {
		return ""
	}
	return *r.state.ActiveClusterID
}

func (r *ClusterRegistry) Get(id string) (domain.Cluster, bool) {
	index := r.state.IndexOf(id)
	if index < 0 {
		return domain.Cluster{}, false
	}
	return r.state.Clusters[index], true
}

// List returns the clusters in registry order.
func (r *ClusterRegistry) List() []domain.Cluster {
	clusters := make([]domain.Cluster, len(r.state.Clusters))
	copy(clusters, r.state.Clusters)
	return clusters
}

func (r *ClusterRegistry) commit(next domain.ClusterRegistryState) error {
	if err := r.store.Save(&next); err != nil {
		return err
	}
	r.state = next
	return nil
}

func firstClusterID(clusters []domain.Cluster) *string {
	if len(clusters) == 0 {
		return nil
	}
	id := clusters[0].ID
	return &id
}
