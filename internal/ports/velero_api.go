package ports

import (
	"context"

	"vdash/internal/core/domain"
)

// VeleroAPI is the dashboard backend as seen through the request router.
// Every call is dispatched against the active cluster.
type VeleroAPI interface {
	ListBackups(ctx context.Context) ([]domain.Backup, error)
	CreateRestore(ctx context.Context, request domain.CreateRestoreRequest) (*domain.Restore, error)
	CreateRestoreWithModifications(
		ctx context.Context,
		request domain.CreateRestoreWithModificationsRequest,
	) (*domain.Restore, error)
}
