package ports

import "vdash/internal/core/domain"

// PatchApplier applies JSON patch operations to a JSON document.
type PatchApplier interface {
	// Apply runs the patches in order against document and returns the result.
	Apply(document []byte, patches []domain.JSONPatch) ([]byte, error)
}
