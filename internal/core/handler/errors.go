package handler

import (
	"errors"
	"fmt"

	"vdash/internal/core/domain"
)

// withConnectHint tells the user how to select a cluster when a request was
// refused for lack of one.
func withConnectHint(err error) error {
	if errors.Is(err, domain.ErrNoActiveCluster) {
		return fmt.Errorf("%w; run 'vdash cluster use <id>' to select a cluster", err)
	}
	return err
}
