package core

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"vdash/internal/core/domain"
	"vdash/internal/ports"
)

var clusterStorePath = filepath.Join("~", ".vdash", "clusters.json")

// ClusterStore persists the cluster registry record.
type ClusterStore interface {
	// Load returns nil and no error when nothing has been persisted yet.
	Load() (*domain.ClusterRegistryState, error)
	Save(state *domain.ClusterRegistryState) error
}

type FileSystemClusterStore struct {
	fileSystem ports.FileSystem
}

func ProvideFileSystemClusterStore(fileSystem ports.FileSystem) *FileSystemClusterStore {
	return &FileSystemClusterStore{fileSystem: fileSystem}
}

func (s *FileSystemClusterStore) Load() (*domain.ClusterRegistryState, error) {
	exists, err := s.fileSystem.FileExists(clusterStorePath)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	data, err := s.fileSystem.ReadFile(clusterStorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cluster registry: %w", err)
	}

	var state domain.ClusterRegistryState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse cluster registry: %w", err)
	}
	if state.Clusters == nil {
		state.Clusters = []domain.Cluster{}
	}
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("cluster registry validation failed: %w", err)
	}
	return &state, nil
}

func (s *FileSystemClusterStore) Save(state *domain.ClusterRegistryState) error {
	if state.Clusters == nil {
		state.Clusters = []domain.Cluster{}
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cluster registry: %w", err)
	}
	if err := s.fileSystem.WriteFile(clusterStorePath, data, ports.ReadWrite); err != nil {
		return fmt.Errorf("failed to persist cluster registry: %w", err)
	}
	return nil
}
