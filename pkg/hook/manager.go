package hook

import (
	"os"
	"path/filepath"

	"github.com/obstack/obstack/pkg/errors"
)

// Manager loads hook scripts from a directory and executes them.
type Manager struct {
	executor *TengoExecutor
}

// NewManager creates a Manager with no scripts loaded.
func NewManager() *Manager {
	return &Manager{executor: NewTengoExecutor()}
}

// LoadDir loads <dir>/pre-install.tengo and <dir>/post-install.tengo when
// present. A missing directory or missing scripts are not errors; hooks are
// strictly optional.
func (m *Manager) LoadDir(dir string) error {
	if dir == "" {
		return nil
	}
	for _, hookType := range []Type{PreInstall, PostInstall} {
		path := filepath.Join(dir, string(hookType)+".tengo")
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return errors.Wrapf(errors.ErrHookLoad, "%s: %v", path, err)
		}
		m.executor.AddScript(hookType, string(data))
	}
	return nil
}

// Run executes the hook of the given type, a no-op when no script is loaded.
func (m *Manager) Run(hookType Type, ctx Context) error {
	return m.executor.Execute(hookType, ctx)
}

// Has reports whether a script is loaded for the given type.
func (m *Manager) Has(hookType Type) bool {
	return m.executor.HasScript(hookType)
}
