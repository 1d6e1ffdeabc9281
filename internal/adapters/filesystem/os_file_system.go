package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vdash/internal/ports"
)

// ErrAccessDenied is returned for any path outside ~/.vdash/.
var ErrAccessDenied = errors.New("access denied: path is outside ~/.vdash")

const stateDirName = ".vdash"

// OsFileSystem is the ports.FileSystem used at runtime. It only touches files
// below ~/.vdash/, including through symlinks.
type OsFileSystem struct{}

func ProvideOsFileSystem() *OsFileSystem {
	return &OsFileSystem{}
}

func (f *OsFileSystem) ReadFile(path string) ([]byte, error) {
	resolved, err := validatePath(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(resolved)
}

// WriteFile writes to a temporary file and renames it into place so that a
// crash never leaves a half written file behind.
func (f *OsFileSystem) WriteFile(path string, content []byte, accessMode ports.AccessMode) error {
	resolved, err := validatePath(path)
	if err != nil {
		return err
	}
	if err := f.EnsureDirExists(resolved); err != nil {
		return fmt.Errorf("failed to ensure directory exists: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(resolved), "."+filepath.Base(resolved)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Chmod(tmpName, getOsFileModeForAccessMode(accessMode)); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpName, resolved); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (f *OsFileSystem) EnsureDirExists(path string) error {
	resolved, err := validatePath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), getOsFileModeForAccessMode(ports.ReadWriteExecute)); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

func (f *OsFileSystem) FileExists(path string) (bool, error) {
	resolved, err := validatePath(path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(resolved)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if file exists: %w", err)
}

// validatePath expands "~", cleans the path and checks that it, and the real
// location of its deepest existing ancestor, stay inside ~/.vdash/.
func validatePath(path string) (string, error) {
	if path == "" {
		return "", ErrAccessDenied
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
		path = filepath.Join(home, path[1:])
	}
	cleaned := filepath.Clean(path)
	root := filepath.Join(home, stateDirName)
	if !isWithin(root, cleaned) {
		return "", ErrAccessDenied
	}

	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		if os.IsNotExist(err) {
			return cleaned, nil
		}
		return "", fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	existing := cleaned
	for {
		realExisting, err := filepath.EvalSymlinks(existing)
		if err == nil {
			if !isWithin(realRoot, realExisting) {
				return "", ErrAccessDenied
			}
			return cleaned, nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to resolve %s: %w", existing, err)
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return "", ErrAccessDenied
		}
		existing = parent
	}
}

func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func getOsFileModeForAccessMode(accessMode ports.AccessMode) os.FileMode {
	switch accessMode {
	case ports.ReadWrite:
		return 0600
	case ports.ReadWriteExecute:
		return 0700
	case ports.ReadAllWriteOwner:
		return 0644
	default:
		return 0600
	}
}
