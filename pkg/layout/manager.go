// Package layout creates and repairs the per-service directory layout:
// config, data and log directories owned by the target user with
// group-collaborative permissions.
package layout

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/obstack/obstack/internal/logger"
	"github.com/obstack/obstack/pkg/errors"
	"github.com/obstack/obstack/pkg/fsutil"
	"github.com/obstack/obstack/pkg/model"
)

// Manager ensures the three-way directory layout of an install target.
type Manager struct{}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// Ensure creates the config, data and log directories of the target with
// group-collaborative setgid permissions and corrects ownership recursively
// when it drifted. It is repeatable: invoked on an already-correct layout it
// changes nothing and succeeds.
func (m *Manager) Ensure(target model.InstallTarget) error {
	for _, dir := range layoutDirs(target) {
		if err := ensureDir(dir, target.User.UID, target.User.GID); err != nil {
			return err
		}
	}
	return nil
}

// Verify checks that the layout already exists and is writable. The
// user-mode install flavor requires the layout to have been created by a
// prior bootstrap run.
func (m *Manager) Verify(target model.InstallTarget) error {
	for _, dir := range layoutDirs(target) {
		info, err := os.Stat(dir)
		if err != nil {
			return errors.Wrapf(errors.ErrLayoutNotReady, "%s: %v (run bootstrap first)", dir, err)
		}
		if !info.IsDir() {
			return errors.Wrapf(errors.ErrLayoutNotReady, "%s is not a directory", dir)
		}
		if err := probeWritable(dir); err != nil {
			return errors.Wrapf(errors.ErrPermissionDenied, "%s is not writable: %v", dir, err)
		}
	}
	return nil
}

// RefreshSecurityContext restores SELinux labels on the layout, best effort.
// On hosts without that subsystem (no restorecon in PATH) it is a no-op.
// Failures are logged as warnings and never propagated.
func (m *Manager) RefreshSecurityContext(target model.InstallTarget) {
	restorecon, err := exec.LookPath("restorecon")
	if err != nil {
		return
	}
	args := append([]string{"-R"}, layoutDirs(target)...)
	if out, err := exec.Command(restorecon, args...).CombinedOutput(); err != nil {
		logger.Warn("security context refresh failed", logger.Fields{
			"error":  err.Error(),
			"output": string(out),
		})
	}
}

func layoutDirs(target model.InstallTarget) []string {
	return []string{target.ConfigDir, target.DataDir, target.LogDir}
}

func ensureDir(dir string, uid, gid int) error {
	if err := os.MkdirAll(dir, fsutil.DirModeShared); err != nil {
		if os.IsPermission(err) {
			return errors.Wrapf(errors.ErrPermissionDenied, "creating %s", dir)
		}
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := os.Chmod(dir, fsutil.DirModeSharedSetgid); err != nil {
		return fmt.Errorf("setting mode on %s: %w", dir, err)
	}
	return fixOwnership(dir, uid, gid)
}

// fixOwnership recursively chowns entries whose owner drifted from the
// target user. Entries already owned correctly are left untouched so the
// pass is cheap and non-destructive on repeat runs.
func fixOwnership(dir string, uid, gid int) error {
	return filepath.WalkDir(dir, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := os.Lstat(path)
		if err != nil {
			return err
		}
		stat, ok := info.Sys().(*syscall.Stat_t)
		if !ok {
			return nil
		}
		if int(stat.Uid) == uid && int(stat.Gid) == gid {
			return nil
		}
		if err := os.Lchown(path, uid, gid); err != nil {
			if os.IsPermission(err) {
				return errors.Wrapf(errors.ErrPermissionDenied, "chown %s", path)
			}
			return err
		}
		return nil
	})
}

func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
