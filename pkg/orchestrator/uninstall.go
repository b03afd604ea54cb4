package orchestrator

import (
	"context"
	"os"
	"strings"

	"github.com/obstack/obstack/internal/logger"
	"github.com/obstack/obstack/pkg/model"
)

// Uninstall reverses an install: stop and disable the unit, remove the unit
// file and binaries, reload the supervisor. Config, data and log directories
// are preserved unless opts.Purge is set. Missing pieces are skipped, so
// uninstalling a half-installed or already-removed package is safe.
func (o *Orchestrator) Uninstall(ctx context.Context, desc model.PackageDescriptor, target model.InstallTarget, opts UninstallOptions) error {
	unitName := target.UnitName(desc.Name)

	if err := o.Supervisor.Stop(ctx, unitName); err != nil {
		logger.Debug("stop failed (unit may not be loaded)", logger.Fields{"unit": unitName, "error": err.Error()})
	}
	if err := o.Supervisor.Disable(ctx, unitName); err != nil {
		logger.Debug("disable failed (unit may not be enabled)", logger.Fields{"unit": unitName, "error": err.Error()})
	}

	if err := removeIfPresent(target.UnitPath(desc.Name)); err != nil {
		return err
	}

	if err := o.Supervisor.DaemonReload(ctx); err != nil {
		logger.Warn("supervisor reload failed after unit removal", logger.Fields{"error": err.Error()})
	}

	for _, name := range desc.Binaries {
		if err := removeIfPresent(target.BinaryPath(name)); err != nil {
			return err
		}
	}
	if err := removeIfPresent(target.VersionMarkerPath(desc.Name)); err != nil {
		return err
	}

	if opts.Purge {
		for _, dir := range []string{target.ConfigDir, target.DataDir, target.LogDir} {
			if err := os.RemoveAll(dir); err != nil {
				return err
			}
		}
	}

	logger.Info("uninstalled", logger.Fields{"package": desc.Name, "purged": opts.Purge})
	return nil
}

// Status derives the install record for a package from filesystem and
// supervisor state.
func (o *Orchestrator) Status(ctx context.Context, desc model.PackageDescriptor, target model.InstallTarget) (*model.InstallRecord, error) {
	rec := &model.InstallRecord{Package: desc.Name}

	if data, err := os.ReadFile(target.VersionMarkerPath(desc.Name)); err == nil {
		rec.InstalledVersion = strings.TrimSpace(string(data))
	}
	if _, err := os.Stat(target.BinaryPath(desc.Binaries[0])); err == nil {
		rec.BinaryPresent = true
	}
	if _, err := os.Stat(target.UnitPath(desc.Name)); err == nil {
		rec.UnitPresent = true
	}

	if o.Supervisor != nil && rec.UnitPresent {
		unitName := target.UnitName(desc.Name)
		if enabled, err := o.Supervisor.IsEnabled(ctx, unitName); err == nil {
			rec.Enabled = enabled
		}
		if active, err := o.Supervisor.IsActive(ctx, unitName); err == nil {
			rec.Active = active
		}
	}
	return rec, nil
}

func removeIfPresent(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
