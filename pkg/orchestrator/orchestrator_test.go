package orchestrator_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	downloadmocks "github.com/obstack/obstack/pkg/download/mocks"
	"github.com/obstack/obstack/pkg/errors"
	"github.com/obstack/obstack/pkg/model"
	"github.com/obstack/obstack/pkg/orchestrator"
	"github.com/obstack/obstack/pkg/orchestrator/mocks"
)

type testRig struct {
	fetcher    *mocks.MockFetcher
	verifier   *mocks.MockVerifier
	extractor  *mocks.MockExtractor
	layout     *mocks.MockLayout
	supervisor *mocks.MockSupervisor
	orch       *orchestrator.Orchestrator
	events     []orchestrator.Event
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	ctrl := gomock.NewController(t)
	rig := &testRig{
		fetcher:    mocks.NewMockFetcher(ctrl),
		verifier:   mocks.NewMockVerifier(ctrl),
		extractor:  mocks.NewMockExtractor(ctrl),
		layout:     mocks.NewMockLayout(ctrl),
		supervisor: mocks.NewMockSupervisor(ctrl),
	}
	rig.orch = orchestrator.New(rig.fetcher, rig.verifier, rig.extractor, rig.layout, rig.supervisor, nil, orchestrator.Hooks{
		OnEvent: func(e orchestrator.Event) { rig.events = append(rig.events, e) },
	})
	return rig
}

func (r *testRig) states() []orchestrator.State {
	out := make([]orchestrator.State, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.State)
	}
	return out
}

// expectStartSuccess wires the post-placement stages for a service that
// comes up cleanly.
func (r *testRig) expectStartSuccess() {
	r.layout.EXPECT().RefreshSecurityContext(gomock.Any())
	r.supervisor.EXPECT().DaemonReload(gomock.Any()).Return(nil)
	r.supervisor.EXPECT().Enable(gomock.Any(), gomock.Any()).Return(nil)
	r.supervisor.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
	r.supervisor.EXPECT().IsActive(gomock.Any(), gomock.Any()).Return(true, nil)
}

func userTarget(t *testing.T, desc model.PackageDescriptor) model.InstallTarget {
	t.Helper()
	home := t.TempDir()
	u := model.User{Name: "monitor", UID: os.Getuid(), GID: os.Getgid(), Home: home}
	target := model.NewInstallTarget(desc, u, model.ScopeUser, 0)
	for _, dir := range []string{target.ConfigDir, target.DataDir, target.LogDir, target.BinDir, target.UnitDir} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}
	return target
}

// expectFetchAndVerify wires the fetch, verify and extract stages so the
// extractor hands back a real binary written under the scoped temp dir.
func (r *testRig) expectFetchAndVerify(t *testing.T, desc model.PackageDescriptor, version string) {
	t.Helper()
	r.fetcher.EXPECT().FetchRelease(gomock.Any(), gomock.Any(), version, gomock.Any()).
		DoAndReturn(func(_ context.Context, d model.PackageDescriptor, v, dir string) (*model.DownloadedArtifact, error) {
			require.NoError(t, os.MkdirAll(dir, 0o755))
			archive := filepath.Join(dir, d.ArchiveName(v))
			require.NoError(t, os.WriteFile(archive, []byte("archive"), 0o644))
			return &model.DownloadedArtifact{Package: d.Name, Version: v, ArchivePath: archive}, nil
		})
	r.verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), "").
		Return(model.Verification{State: model.VerificationVerified, Source: model.SourceManifest}, nil)
	r.extractor.EXPECT().ExtractAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, destDir string) error {
			return os.MkdirAll(destDir, 0o755)
		})
	r.extractor.EXPECT().LocateBinaries(gomock.Any(), desc.Binaries).
		DoAndReturn(func(extractDir string, names []string) (map[string]string, error) {
			out := make(map[string]string, len(names))
			for _, name := range names {
				p := filepath.Join(extractDir, name)
				require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"), 0o644))
				out[name] = p
			}
			return out, nil
		})
}

func TestInstall_HappyPath(t *testing.T) {
	desc, err := model.Lookup("node_exporter")
	require.NoError(t, err)
	rig := newTestRig(t)
	target := userTarget(t, desc)

	rig.layout.EXPECT().Verify(target).Return(nil)
	rig.expectFetchAndVerify(t, desc, desc.DefaultVersion)
	rig.layout.EXPECT().RefreshSecurityContext(target)
	rig.supervisor.EXPECT().DaemonReload(gomock.Any()).Return(nil)
	rig.supervisor.EXPECT().Enable(gomock.Any(), "node_exporter.service").Return(nil)
	rig.supervisor.EXPECT().Start(gomock.Any(), "node_exporter.service").Return(nil)
	rig.supervisor.EXPECT().IsActive(gomock.Any(), "node_exporter.service").Return(true, nil)

	res, err := rig.orch.Install(context.Background(), desc, target, orchestrator.InstallOptions{TempParent: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeRunning, res.Outcome)
	assert.Equal(t, desc.DefaultVersion, res.Version)
	assert.Equal(t, model.VerificationVerified, res.Verification.State)
	assert.Equal(t, orchestrator.ChangeFresh, res.Change)
	assert.Empty(t, res.PriorVersion)

	// Binary executable, unit on disk, version marker written.
	info, err := os.Stat(target.BinaryPath("node_exporter"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	assert.FileExists(t, target.UnitPath("node_exporter"))
	data, err := os.ReadFile(target.VersionMarkerPath("node_exporter"))
	require.NoError(t, err)
	assert.Equal(t, desc.DefaultVersion+"\n", string(data))

	assert.Equal(t, []orchestrator.State{
		orchestrator.StateFetching,
		orchestrator.StateVerifying,
		orchestrator.StateExtracting,
		orchestrator.StatePlacing,
		orchestrator.StateUnitRendering,
		orchestrator.StateSupervisorReload,
		orchestrator.StateEnabling,
		orchestrator.StateRunning,
	}, rig.states())
}

func TestInstall_InvalidVersion(t *testing.T) {
	desc, err := model.Lookup("prometheus")
	require.NoError(t, err)
	rig := newTestRig(t)

	_, err = rig.orch.Install(context.Background(), desc, model.InstallTarget{Scope: model.ScopeUser}, orchestrator.InstallOptions{Version: "not-a-version"})
	require.ErrorIs(t, err, errors.ErrInvalidVersion)
	assert.Empty(t, rig.events)
}

func TestInstall_VerificationFailureLeavesNothingBehind(t *testing.T) {
	desc, err := model.Lookup("node_exporter")
	require.NoError(t, err)
	rig := newTestRig(t)
	target := userTarget(t, desc)

	rig.layout.EXPECT().Verify(target).Return(nil)
	rig.fetcher.EXPECT().FetchRelease(gomock.Any(), gomock.Any(), desc.DefaultVersion, gomock.Any()).
		Return(&model.DownloadedArtifact{Package: desc.Name, Version: desc.DefaultVersion}, nil)
	rig.verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), "").
		Return(model.Verification{}, errors.Wrap(errors.ErrVerificationUnavailable, desc.Name))

	res, err := rig.orch.Install(context.Background(), desc, target, orchestrator.InstallOptions{TempParent: t.TempDir()})
	require.ErrorIs(t, err, errors.ErrVerificationUnavailable)
	assert.Equal(t, model.OutcomeFailed, res.Outcome)
	assert.Equal(t, orchestrator.StateVerifying, res.FailedState)

	assert.NoFileExists(t, target.BinaryPath("node_exporter"))
	assert.NoFileExists(t, target.UnitPath("node_exporter"))
}

func TestInstall_SecondRunPreservesEditedConfig(t *testing.T) {
	desc, err := model.Lookup("alertmanager")
	require.NoError(t, err)
	rig := newTestRig(t)
	target := userTarget(t, desc)

	edited := "route:\n  receiver: pagers\n"
	require.NoError(t, os.WriteFile(target.SeedConfigPath(desc), []byte(edited), 0o640))

	rig.layout.EXPECT().Verify(target).Return(nil)
	rig.expectFetchAndVerify(t, desc, desc.DefaultVersion)
	rig.layout.EXPECT().RefreshSecurityContext(target)
	rig.supervisor.EXPECT().DaemonReload(gomock.Any()).Return(nil)
	rig.supervisor.EXPECT().Enable(gomock.Any(), gomock.Any()).Return(nil)
	rig.supervisor.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
	rig.supervisor.EXPECT().IsActive(gomock.Any(), gomock.Any()).Return(true, nil)

	_, err = rig.orch.Install(context.Background(), desc, target, orchestrator.InstallOptions{TempParent: t.TempDir()})
	require.NoError(t, err)

	data, err := os.ReadFile(target.SeedConfigPath(desc))
	require.NoError(t, err)
	assert.Equal(t, edited, string(data), "operator-edited config must survive reinstall")
}

func TestInstall_ReloadFailureStillSucceeds(t *testing.T) {
	desc, err := model.Lookup("node_exporter")
	require.NoError(t, err)
	rig := newTestRig(t)
	target := userTarget(t, desc)

	rig.layout.EXPECT().Verify(target).Return(nil)
	rig.expectFetchAndVerify(t, desc, desc.DefaultVersion)
	rig.layout.EXPECT().RefreshSecurityContext(target)
	rig.supervisor.EXPECT().DaemonReload(gomock.Any()).Return(errors.Wrap(errors.ErrSupervisorReload, "bus gone"))
	rig.supervisor.EXPECT().Enable(gomock.Any(), gomock.Any()).Return(nil)
	rig.supervisor.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
	rig.supervisor.EXPECT().IsActive(gomock.Any(), gomock.Any()).Return(true, nil)

	res, err := rig.orch.Install(context.Background(), desc, target, orchestrator.InstallOptions{TempParent: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeRunning, res.Outcome)
}

func TestInstall_StartFailureReportsInstalledNotRunning(t *testing.T) {
	desc, err := model.Lookup("node_exporter")
	require.NoError(t, err)
	rig := newTestRig(t)
	target := userTarget(t, desc)

	rig.layout.EXPECT().Verify(target).Return(nil)
	rig.expectFetchAndVerify(t, desc, desc.DefaultVersion)
	rig.layout.EXPECT().RefreshSecurityContext(target)
	rig.supervisor.EXPECT().DaemonReload(gomock.Any()).Return(nil)
	rig.supervisor.EXPECT().Enable(gomock.Any(), gomock.Any()).Return(nil)
	rig.supervisor.EXPECT().Start(gomock.Any(), gomock.Any()).
		Return(errors.Wrap(errors.ErrServiceStart, "bad config"))

	res, err := rig.orch.Install(context.Background(), desc, target, orchestrator.InstallOptions{TempParent: t.TempDir()})
	require.NoError(t, err, "post-placement start failure is not a fatal install error")
	assert.Equal(t, model.OutcomeInstalledNotRunning, res.Outcome)
	require.ErrorIs(t, res.StartErr, errors.ErrServiceStart)

	// Files are on disk even though the service never came up.
	assert.FileExists(t, target.BinaryPath("node_exporter"))
	assert.FileExists(t, target.UnitPath("node_exporter"))
}

func TestInstall_UserScopeRequiresBootstrap(t *testing.T) {
	desc, err := model.Lookup("pushgateway")
	require.NoError(t, err)
	rig := newTestRig(t)
	target := userTarget(t, desc)

	rig.layout.EXPECT().Verify(target).Return(errors.Wrap(errors.ErrLayoutNotReady, target.BinDir))

	res, err := rig.orch.Install(context.Background(), desc, target, orchestrator.InstallOptions{})
	require.ErrorIs(t, err, errors.ErrLayoutNotReady)
	assert.Equal(t, model.OutcomeFailed, res.Outcome)
	assert.Equal(t, orchestrator.StatePreparing, res.FailedState,
		"layout failures happen before the fetch stage and must not be attributed to placement")
}

func TestInstall_FetchFailureAborts(t *testing.T) {
	desc, err := model.Lookup("node_exporter")
	require.NoError(t, err)
	rig := newTestRig(t)
	target := userTarget(t, desc)

	ctrl := gomock.NewController(t)
	fetcher := downloadmocks.NewMockManager(ctrl)
	rig.orch.Fetcher = fetcher

	rig.layout.EXPECT().Verify(target).Return(nil)
	fetcher.EXPECT().FetchRelease(gomock.Any(), gomock.Any(), desc.DefaultVersion, gomock.Any()).
		Return(nil, errors.Wrap(errors.ErrNetworkFailure, "connection refused"))

	res, err := rig.orch.Install(context.Background(), desc, target, orchestrator.InstallOptions{TempParent: t.TempDir()})
	require.ErrorIs(t, err, errors.ErrNetworkFailure)
	assert.Equal(t, model.OutcomeFailed, res.Outcome)
	assert.Equal(t, orchestrator.StateFetching, res.FailedState)
	assert.NoFileExists(t, target.BinaryPath("node_exporter"))
}

func TestInstall_ClassifiesUpgradeAndDowngrade(t *testing.T) {
	desc, err := model.Lookup("node_exporter")
	require.NoError(t, err)

	tests := []struct {
		name      string
		prior     string
		requested string
		change    orchestrator.Change
	}{
		{name: "upgrade", prior: "1.8.0", requested: desc.DefaultVersion, change: orchestrator.ChangeUpgrade},
		{name: "downgrade", prior: "99.0.0", requested: desc.DefaultVersion, change: orchestrator.ChangeDowngrade},
		{name: "reinstall", prior: desc.DefaultVersion, requested: desc.DefaultVersion, change: orchestrator.ChangeReinstall},
		{name: "garbage marker is fresh", prior: "not-a-version", requested: desc.DefaultVersion, change: orchestrator.ChangeFresh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := newTestRig(t)
			target := userTarget(t, desc)
			require.NoError(t, os.WriteFile(target.VersionMarkerPath(desc.Name), []byte(tt.prior+"\n"), 0o644))

			rig.layout.EXPECT().Verify(target).Return(nil)
			rig.expectFetchAndVerify(t, desc, tt.requested)
			rig.expectStartSuccess()

			res, err := rig.orch.Install(context.Background(), desc, target, orchestrator.InstallOptions{
				Version:    tt.requested,
				TempParent: t.TempDir(),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.change, res.Change)
			if tt.change == orchestrator.ChangeFresh {
				assert.Empty(t, res.PriorVersion)
			} else {
				assert.Equal(t, tt.prior, res.PriorVersion)
			}
		})
	}
}

func TestInstall_RunTwiceConverges(t *testing.T) {
	desc, err := model.Lookup("node_exporter")
	require.NoError(t, err)
	rig := newTestRig(t)
	target := userTarget(t, desc)

	for range 2 {
		rig.layout.EXPECT().Verify(target).Return(nil)
		rig.expectFetchAndVerify(t, desc, desc.DefaultVersion)
		rig.expectStartSuccess()
	}

	res1, err := rig.orch.Install(context.Background(), desc, target, orchestrator.InstallOptions{TempParent: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, orchestrator.ChangeFresh, res1.Change)

	binary1, err := os.ReadFile(target.BinaryPath("node_exporter"))
	require.NoError(t, err)
	unit1, err := os.ReadFile(target.UnitPath("node_exporter"))
	require.NoError(t, err)
	marker1, err := os.ReadFile(target.VersionMarkerPath("node_exporter"))
	require.NoError(t, err)

	res2, err := rig.orch.Install(context.Background(), desc, target, orchestrator.InstallOptions{TempParent: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeRunning, res2.Outcome)
	assert.Equal(t, orchestrator.ChangeReinstall, res2.Change)
	assert.Equal(t, desc.DefaultVersion, res2.PriorVersion)

	binary2, err := os.ReadFile(target.BinaryPath("node_exporter"))
	require.NoError(t, err)
	unit2, err := os.ReadFile(target.UnitPath("node_exporter"))
	require.NoError(t, err)
	marker2, err := os.ReadFile(target.VersionMarkerPath("node_exporter"))
	require.NoError(t, err)

	assert.Equal(t, binary1, binary2, "re-running an install must leave the binary byte-identical")
	assert.Equal(t, unit1, unit2, "re-running an install must leave the unit file byte-identical")
	assert.Equal(t, marker1, marker2)

	entries, err := os.ReadDir(target.UnitDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "a second run must not create a duplicate unit")
}

func TestUninstall_RemovesUnitAndBinaries(t *testing.T) {
	desc, err := model.Lookup("node_exporter")
	require.NoError(t, err)
	rig := newTestRig(t)
	target := userTarget(t, desc)

	require.NoError(t, os.WriteFile(target.BinaryPath("node_exporter"), []byte("bin"), 0o755))
	require.NoError(t, os.WriteFile(target.UnitPath("node_exporter"), []byte("[Unit]"), 0o644))
	require.NoError(t, os.WriteFile(target.VersionMarkerPath("node_exporter"), []byte("1.9.1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(target.ConfigDir, "extra.yml"), []byte("x"), 0o640))

	rig.supervisor.EXPECT().Stop(gomock.Any(), "node_exporter.service").Return(nil)
	rig.supervisor.EXPECT().Disable(gomock.Any(), "node_exporter.service").Return(nil)
	rig.supervisor.EXPECT().DaemonReload(gomock.Any()).Return(nil)

	require.NoError(t, rig.orch.Uninstall(context.Background(), desc, target, orchestrator.UninstallOptions{}))

	assert.NoFileExists(t, target.BinaryPath("node_exporter"))
	assert.NoFileExists(t, target.UnitPath("node_exporter"))
	assert.NoFileExists(t, target.VersionMarkerPath("node_exporter"))
	assert.FileExists(t, filepath.Join(target.ConfigDir, "extra.yml"), "config preserved without purge")
}

func TestUninstall_PurgeRemovesDirectories(t *testing.T) {
	desc, err := model.Lookup("node_exporter")
	require.NoError(t, err)
	rig := newTestRig(t)
	target := userTarget(t, desc)

	rig.supervisor.EXPECT().Stop(gomock.Any(), gomock.Any()).Return(nil)
	rig.supervisor.EXPECT().Disable(gomock.Any(), gomock.Any()).Return(nil)
	rig.supervisor.EXPECT().DaemonReload(gomock.Any()).Return(nil)

	require.NoError(t, rig.orch.Uninstall(context.Background(), desc, target, orchestrator.UninstallOptions{Purge: true}))

	assert.NoDirExists(t, target.ConfigDir)
	assert.NoDirExists(t, target.DataDir)
	assert.NoDirExists(t, target.LogDir)
}

func TestUninstall_ToleratesMissingPieces(t *testing.T) {
	desc, err := model.Lookup("node_exporter")
	require.NoError(t, err)
	rig := newTestRig(t)
	target := userTarget(t, desc)

	rig.supervisor.EXPECT().Stop(gomock.Any(), gomock.Any()).Return(errors.Wrap(errors.ErrServiceStart, "not loaded"))
	rig.supervisor.EXPECT().Disable(gomock.Any(), gomock.Any()).Return(errors.Wrap(errors.ErrServiceStart, "not enabled"))
	rig.supervisor.EXPECT().DaemonReload(gomock.Any()).Return(nil)

	require.NoError(t, rig.orch.Uninstall(context.Background(), desc, target, orchestrator.UninstallOptions{}))
}

func TestStatus_DerivedFromHostState(t *testing.T) {
	desc, err := model.Lookup("node_exporter")
	require.NoError(t, err)
	rig := newTestRig(t)
	target := userTarget(t, desc)

	require.NoError(t, os.WriteFile(target.BinaryPath("node_exporter"), []byte("bin"), 0o755))
	require.NoError(t, os.WriteFile(target.UnitPath("node_exporter"), []byte("[Unit]"), 0o644))
	require.NoError(t, os.WriteFile(target.VersionMarkerPath("node_exporter"), []byte("1.9.1\n"), 0o644))

	rig.supervisor.EXPECT().IsEnabled(gomock.Any(), "node_exporter.service").Return(true, nil)
	rig.supervisor.EXPECT().IsActive(gomock.Any(), "node_exporter.service").Return(false, nil)

	rec, err := rig.orch.Status(context.Background(), desc, target)
	require.NoError(t, err)
	assert.Equal(t, "1.9.1", rec.InstalledVersion)
	assert.True(t, rec.BinaryPresent)
	assert.True(t, rec.UnitPresent)
	assert.True(t, rec.Enabled)
	assert.False(t, rec.Active)
}

func TestStatus_NotInstalled(t *testing.T) {
	desc, err := model.Lookup("node_exporter")
	require.NoError(t, err)
	rig := newTestRig(t)
	target := userTarget(t, desc)

	rec, err := rig.orch.Status(context.Background(), desc, target)
	require.NoError(t, err)
	assert.Empty(t, rec.InstalledVersion)
	assert.False(t, rec.BinaryPresent)
	assert.False(t, rec.UnitPresent)
}
