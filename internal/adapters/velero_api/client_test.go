package velero_api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"vdash/internal/core"
	"vdash/internal/core/domain"
	"vdash/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixedResolver struct {
	route core.Route
	err   error
	calls int
}

func (r *fixedResolver) Resolve() (core.Route, error) {
	r.calls++
	return r.route, r.err
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *fixedResolver) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	resolver := &fixedResolver{route: core.Route{
		Cluster:      domain.Cluster{ID: "a", Name: "A", URL: server.URL},
		BaseEndpoint: server.URL + "/api",
	}}
	return NewClient(&http.Client{Transport: NewRoutingTransport(resolver, nil)}), resolver
}

func TestClient_CreateRestoreWithModifications(t *testing.T) {
	var received map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/restores/with-modifications", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"name": "restore-1", "phase": "New", "backupName": "backup-1", "startTimestamp": "", "completionTimestamp": null, "warnings": 0, "errors": 0}`)
	})

	restore, err := client.CreateRestoreWithModifications(context.Background(), domain.CreateRestoreWithModificationsRequest{
		Name:       "restore-1",
		BackupName: "backup-1",
		ResourceModifierRules: []domain.ResourceModifierRule{{
			Patches: []domain.JSONPatch{{Operation: domain.PatchOperationReplace, Path: "/spec/replicas", Value: "1"}},
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, "New", restore.Phase)
	assert.Nil(t, restore.CompletionTimestamp)
	assert.Equal(t, "restore-1", received["name"])
	rules := received["resourceModifierRules"].([]interface{})
	require.Len(t, rules, 1)
}

func TestClient_ListBackups(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/backups", r.URL.Path)
		_, _ = io.WriteString(w, `[{"name": "nightly", "phase": "Completed", "startTimestamp": "2026-01-01T00:00:00Z", "warnings": 1, "errors": 0}]`)
	})

	backups, err := client.ListBackups(context.Background())

	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, "nightly", backups[0].Name)
	assert.Equal(t, 1, backups[0].Warnings)
}

func TestClient_APIErrors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		expectDetail string
	}{
		{
			name:         "string detail",
			status:       http.StatusNotFound,
			body:         `{"detail": "Backup nightly not found"}`,
			expectDetail: "Backup nightly not found",
		},
		{
			name:         "structured detail",
			status:       http.StatusUnprocessableEntity,
			body:         `{"detail": [{"loc": ["body", "name"], "msg": "field required"}]}`,
			expectDetail: `[{"loc":["body","name"],"msg":"field required"}]`,
		},
		{
			name:         "plain body",
			status:       http.StatusBadGateway,
			body:         "upstream unavailable\n",
			expectDetail: "upstream unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.CreateRestore(context.Background(), domain.CreateRestoreRequest{Name: "r", BackupName: "b"})

			var apiErr *domain.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.expectDetail, apiErr.Detail)
		})
	}
}

func TestClient_NoActiveClusterIsNotDispatched(t *testing.T) {
	dispatched := false
	client, resolver := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		dispatched = true
	})
	resolver.err = &domain.NoActiveClusterError{}

	_, err := client.ListBackups(context.Background())

	assert.ErrorIs(t, err, domain.ErrNoActiveCluster)
	assert.False(t, dispatched)
	assert.Equal(t, 1, resolver.calls)
}

func TestClient_RoutesToActiveClusterOnEveryCall(t *testing.T) {
	var hitsA, hitsB int
	serverA := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hitsA++
		assert.Equal(t, "/api/backups", r.URL.Path)
		_, _ = io.WriteString(w, "[]")
	}))
	defer serverA.Close()
	serverB := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hitsB++
		_, _ = io.WriteString(w, "[]")
	}))
	defer serverB.Close()

	store := new(testutil.MockClusterStore)
	store.On("Load").Return(&domain.ClusterRegistryState{Clusters: []domain.Cluster{}}, nil)
	store.On("Save", mock.Anything).Return(nil)
	registry, err := core.ProvideClusterRegistry(store)
	require.NoError(t, err)

	keyring := new(testutil.MockKeyring)
	keyring.On("HasKey", mock.Anything).Return(false, nil)
	client := NewClient(&http.Client{Transport: NewRoutingTransport(core.NewRequestRouter(registry, keyring), nil)})

	a, err := registry.Add("A", serverA.URL, domain.ClusterRoleBoth)
	require.NoError(t, err)
	_, err = client.ListBackups(context.Background())
	require.NoError(t, err)

	_, err = registry.Add("B", serverB.URL, domain.ClusterRoleBoth)
	require.NoError(t, err)
	_, err = client.ListBackups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, hitsA)
	assert.Equal(t, 0, hitsB)

	require.NoError(t, registry.Remove(a.ID))
	_, err = client.ListBackups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, hitsB)

	require.NoError(t, registry.Remove(registry.ActiveID()))
	_, err = client.ListBackups(context.Background())
	assert.True(t, errors.Is(err, domain.ErrNoActiveCluster))
	assert.Equal(t, 2, hitsA)
	assert.Equal(t, 1, hitsB)
}
