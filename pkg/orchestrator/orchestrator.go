// Package orchestrator sequences the install state machine for one package:
// fetch, verify, extract, place, render the unit, reload the supervisor,
// enable and start. Re-running an install converges to the same on-disk
// state; every write is an atomic rename-into-place.
package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/obstack/obstack/internal/logger"
	pkgerrors "github.com/obstack/obstack/pkg/errors"
	"github.com/obstack/obstack/pkg/fsutil"
	"github.com/obstack/obstack/pkg/hook"
	"github.com/obstack/obstack/pkg/model"
	"github.com/obstack/obstack/pkg/unit"
)

// Orchestrator ties the fetcher, verifier, extractor, layout and supervisor
// together for installs.
type Orchestrator struct {
	Fetcher    Fetcher
	Verifier   Verifier
	Extractor  Extractor
	Layout     Layout
	Supervisor Supervisor
	HookRunner HookRunner // optional
	Hooks      Hooks      // progress event callbacks
}

// New constructs an Orchestrator from existing managers. Helper for wiring.
func New(f Fetcher, v Verifier, e Extractor, l Layout, s Supervisor, hr HookRunner, hooks Hooks) *Orchestrator {
	return &Orchestrator{
		Fetcher:    f,
		Verifier:   v,
		Extractor:  e,
		Layout:     l,
		Supervisor: s,
		HookRunner: hr,
		Hooks:      hooks,
	}
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Install runs the full state machine for one package on one target.
// A non-nil error means the install failed before completing placement;
// post-placement problems (reload, start) are reported through the Result
// instead, because the files on disk are already correct.
func (o *Orchestrator) Install(ctx context.Context, desc model.PackageDescriptor, target model.InstallTarget, opts InstallOptions) (*Result, error) {
	version := opts.Version
	if version == "" {
		version = desc.DefaultVersion
	}
	requested, err := goversion.NewVersion(version)
	if err != nil {
		return nil, pkgerrors.Wrapf(pkgerrors.ErrInvalidVersion, "%s: %v", version, err)
	}

	res := &Result{Package: desc.Name, Version: version, Outcome: model.OutcomeFailed}
	res.PriorVersion, res.Change = classifyChange(target.VersionMarkerPath(desc.Name), requested)
	if res.Change != ChangeFresh {
		logger.Info("prior install found", logger.Fields{
			"package": desc.Name,
			"prior":   res.PriorVersion,
			"change":  string(res.Change),
		})
	}
	fail := func(state State, err error) (*Result, error) {
		res.FailedState = state
		emit(o.Hooks, Event{State: StateFailed, Package: desc.Name, Msg: err.Error()})
		return res, err
	}

	// The user-mode flavor requires a bootstrapped layout; the system-wide
	// flavor creates it here.
	if target.Scope == model.ScopeSystem {
		if err := o.Layout.Ensure(target); err != nil {
			return fail(StatePreparing, err)
		}
	} else {
		if err := o.Layout.Verify(target); err != nil {
			return fail(StatePreparing, err)
		}
	}

	// Scoped workspace: removed on every exit path.
	tmpDir, err := os.MkdirTemp(opts.TempParent, "obstack-"+desc.Name+"-")
	if err != nil {
		return fail(StatePreparing, pkgerrors.Wrap(err, "creating workspace"))
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	emit(o.Hooks, Event{State: StateFetching, Package: desc.Name, Msg: desc.Name + "@" + version})
	art, err := o.Fetcher.FetchRelease(ctx, desc, version, filepath.Join(tmpDir, "download"))
	if err != nil {
		return fail(StateFetching, err)
	}

	emit(o.Hooks, Event{State: StateVerifying, Package: desc.Name})
	verification, err := o.Verifier.Verify(desc, art, opts.InlineChecksum)
	if err != nil {
		return fail(StateVerifying, err)
	}
	res.Verification = verification

	if err := o.runHook(hook.PreInstall, desc, target, version); err != nil {
		return fail(StateVerifying, err)
	}

	emit(o.Hooks, Event{State: StateExtracting, Package: desc.Name})
	extractDir := filepath.Join(tmpDir, "extract")
	if err := o.Extractor.ExtractAll(ctx, art.ArchivePath, extractDir); err != nil {
		return fail(StateExtracting, err)
	}
	binaries, err := o.Extractor.LocateBinaries(extractDir, desc.Binaries)
	if err != nil {
		return fail(StateExtracting, err)
	}

	emit(o.Hooks, Event{State: StatePlacing, Package: desc.Name})
	if err := o.place(desc, target, version, binaries); err != nil {
		return fail(StatePlacing, err)
	}
	res.Binaries = make([]string, 0, len(desc.Binaries))
	for _, name := range desc.Binaries {
		res.Binaries = append(res.Binaries, target.BinaryPath(name))
	}
	o.Layout.RefreshSecurityContext(target)

	emit(o.Hooks, Event{State: StateUnitRendering, Package: desc.Name})
	unitPath := target.UnitPath(desc.Name)
	text := unit.Render(desc, target, opts.ExtraFlags)
	if err := fsutil.WriteFileAtomic(unitPath, []byte(text), fsutil.FileModeDefault); err != nil {
		return fail(StateUnitRendering, err)
	}
	chownIfRoot(unitPath, target)
	res.UnitPath = unitPath

	// From here on the host already carries a complete install; problems
	// are reported but nothing is rolled back.
	emit(o.Hooks, Event{State: StateSupervisorReload, Package: desc.Name})
	if err := o.Supervisor.DaemonReload(ctx); err != nil {
		logger.Warn("supervisor reload failed; unit file is on disk, a later reload will pick it up", logger.Fields{
			"package": desc.Name,
			"error":   err.Error(),
		})
	}

	emit(o.Hooks, Event{State: StateEnabling, Package: desc.Name})
	unitName := target.UnitName(desc.Name)
	if err := o.Supervisor.Enable(ctx, unitName); err != nil {
		return o.notRunning(ctx, desc, target, version, res, err)
	}
	if err := o.Supervisor.Start(ctx, unitName); err != nil {
		return o.notRunning(ctx, desc, target, version, res, err)
	}

	active, err := o.Supervisor.IsActive(ctx, unitName)
	if err != nil || !active {
		if err == nil {
			err = pkgerrors.Wrapf(pkgerrors.ErrServiceStart, "%s is not active after start", unitName)
		}
		return o.notRunning(ctx, desc, target, version, res, err)
	}

	res.Outcome = model.OutcomeRunning
	emit(o.Hooks, Event{State: StateRunning, Package: desc.Name, Msg: desc.Name + "@" + version})

	o.runPostHook(desc, target, version)
	return res, nil
}

// notRunning finalizes an install whose files are correct but whose service
// did not come up. The post-install hook still runs: the install itself
// succeeded.
func (o *Orchestrator) notRunning(_ context.Context, desc model.PackageDescriptor, target model.InstallTarget, version string, res *Result, cause error) (*Result, error) {
	res.Outcome = model.OutcomeInstalledNotRunning
	res.StartErr = cause
	logger.Warn("installed but service is not running", logger.Fields{
		"package": desc.Name,
		"error":   cause.Error(),
	})
	o.runPostHook(desc, target, version)
	return res, nil
}

// place copies the verified binaries into BinDir via atomic overwrite,
// writes the version marker, and seeds the default config only when no
// config file exists yet. A user-edited config is never clobbered.
func (o *Orchestrator) place(desc model.PackageDescriptor, target model.InstallTarget, version string, binaries map[string]string) error {
	for _, name := range desc.Binaries {
		dst := target.BinaryPath(name)
		if err := fsutil.Move(binaries[name], dst); err != nil {
			if errors.Is(err, os.ErrPermission) {
				return pkgerrors.Wrapf(pkgerrors.ErrPermissionDenied, "placing %s", dst)
			}
			return err
		}
		if err := os.Chmod(dst, fsutil.FileModeExec); err != nil {
			return err
		}
		chownIfRoot(dst, target)
	}

	if seedPath := target.SeedConfigPath(desc); seedPath != "" {
		if _, err := os.Stat(seedPath); os.IsNotExist(err) {
			if err := fsutil.WriteFileAtomic(seedPath, []byte(desc.SeedConfig), fsutil.FileModeSecure); err != nil {
				return err
			}
			chownIfRoot(seedPath, target)
			logger.Info("seeded default config", logger.Fields{"package": desc.Name, "path": seedPath})
		}
	}

	marker := target.VersionMarkerPath(desc.Name)
	if err := fsutil.WriteFileAtomic(marker, []byte(version+"\n"), fsutil.FileModeDefault); err != nil {
		return err
	}
	chownIfRoot(marker, target)
	return nil
}

func (o *Orchestrator) runHook(hookType hook.Type, desc model.PackageDescriptor, target model.InstallTarget, version string) error {
	if o.HookRunner == nil {
		return nil
	}
	return o.HookRunner.Run(hookType, hook.Context{
		PackageName:    desc.Name,
		PackageVersion: version,
		InstallPath:    target.BinDir,
		ConfigDir:      target.ConfigDir,
		Port:           target.Port,
	})
}

func (o *Orchestrator) runPostHook(desc model.PackageDescriptor, target model.InstallTarget, version string) {
	if err := o.runHook(hook.PostInstall, desc, target, version); err != nil {
		logger.Warn("post-install hook failed", logger.Fields{"package": desc.Name, "error": err.Error()})
	}
}

// classifyChange compares the version recorded on the host against the
// requested one. An unreadable or unparsable marker counts as a fresh
// install: the marker is advisory, never a gate.
func classifyChange(markerPath string, requested *goversion.Version) (string, Change) {
	data, err := os.ReadFile(markerPath)
	if err != nil {
		return "", ChangeFresh
	}
	priorStr := strings.TrimSpace(string(data))
	prior, err := goversion.NewVersion(priorStr)
	if err != nil {
		return "", ChangeFresh
	}
	switch {
	case requested.Equal(prior):
		return priorStr, ChangeReinstall
	case requested.GreaterThan(prior):
		return priorStr, ChangeUpgrade
	default:
		return priorStr, ChangeDowngrade
	}
}

// chownIfRoot hands ownership to the target user when running privileged.
// Unprivileged user-mode installs already create files as the right user.
func chownIfRoot(path string, target model.InstallTarget) {
	if os.Geteuid() != 0 {
		return
	}
	if err := os.Chown(path, target.User.UID, target.User.GID); err != nil {
		logger.Warn("failed to chown", logger.Fields{"path": path, "error": err.Error()})
	}
}
