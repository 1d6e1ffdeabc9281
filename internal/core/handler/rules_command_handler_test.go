package handler

import (
	"context"
	"errors"
	"testing"

	"vdash/internal/adapters/patcher"
	"vdash/internal/core"
	"vdash/internal/core/domain"
	"vdash/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRulesHandler(publisher *testutil.MockConfigMapPublisher) (RulesCommandHandler, *testutil.MockConfigRepository) {
	configRepository := new(testutil.MockConfigRepository)
	config := domain.CreateDefaultConfig()
	configRepository.On("LoadConfig").Return(&config, nil)
	return ProvideRulesCommandHandler(
		configRepository,
		publisher,
		core.ProvideRulePreviewer(patcher.ProvideApplier()),
	), configRepository
}

func TestRulesCommandHandler_HandleValidate(t *testing.T) {
	handler, _ := newRulesHandler(new(testutil.MockConfigMapPublisher))

	assert.NoError(t, handler.HandleValidate(writeTestFile(t, "rules.yaml", testRuleFile)))

	err := handler.HandleValidate(writeTestFile(t, "bad.yaml", "resourceModifierRules:\n  - patches:\n      - operation: copy\n        path: /a\n"))
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.True(t, validationErr.HasField("from"))
}

func TestRulesCommandHandler_HandleExport_Apply(t *testing.T) {
	publisher := new(testutil.MockConfigMapPublisher)
	handler, _ := newRulesHandler(publisher)
	publisher.On(
		"Publish",
		mock.Anything,
		"velero",
		"restore-resource-modifiers-r1",
		map[string]string{
			"velero.io/restore-name":       "r1",
			"app.kubernetes.io/managed-by": "vdash",
		},
		mock.MatchedBy(func(data map[string]string) bool {
			document, ok := data["resource-modifiers.yaml"]
			return ok && len(document) > 0
		}),
	).Return(nil)

	err := handler.HandleExport(context.Background(), writeTestFile(t, "rules.yaml", testRuleFile), "r1", true)

	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestRulesCommandHandler_HandleExport_Print(t *testing.T) {
	publisher := new(testutil.MockConfigMapPublisher)
	handler, _ := newRulesHandler(publisher)

	err := handler.HandleExport(context.Background(), writeTestFile(t, "rules.yaml", testRuleFile), "r1", false)

	require.NoError(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRulesCommandHandler_HandleExport_Errors(t *testing.T) {
	publisher := new(testutil.MockConfigMapPublisher)
	handler, _ := newRulesHandler(publisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("forbidden"))
	path := writeTestFile(t, "rules.yaml", testRuleFile)

	assert.EqualError(t, handler.HandleExport(context.Background(), path, " ", true), "restore name cannot be empty")
	assert.EqualError(t, handler.HandleExport(context.Background(), path, "r1", true), "forbidden")
}

func TestRulesCommandHandler_HandlePreview(t *testing.T) {
	handler, _ := newRulesHandler(new(testutil.MockConfigMapPublisher))
	manifests := writeTestFile(t, "manifests.yaml", `apiVersion: apps/v1
kind: Deployment
metadata:
  name: web
  namespace: shop
spec:
  replicas: 3
`)

	assert.NoError(t, handler.HandlePreview(writeTestFile(t, "rules.yaml", testRuleFile), manifests))
	assert.Error(t, handler.HandlePreview(writeTestFile(t, "rules.yaml", testRuleFile), manifests+".missing"))
}
