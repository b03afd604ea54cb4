//go:generate mockgen -destination=./mocks/orchestrator.go -package=mocks . Fetcher,Verifier,Extractor,Layout,Supervisor,HookRunner

package orchestrator

import (
	"context"

	"github.com/obstack/obstack/pkg/hook"
	"github.com/obstack/obstack/pkg/model"
)

// Fetcher is the subset of the download manager used by the orchestrator.
type Fetcher interface {
	FetchRelease(ctx context.Context, desc model.PackageDescriptor, version, dir string) (*model.DownloadedArtifact, error)
}

// Verifier checks a downloaded artifact against a digest source of truth.
type Verifier interface {
	Verify(desc model.PackageDescriptor, art *model.DownloadedArtifact, inlineDigest string) (model.Verification, error)
}

// Extractor unpacks release archives and locates the expected binaries.
type Extractor interface {
	ExtractAll(ctx context.Context, archivePath, destDir string) error
	LocateBinaries(extractDir string, names []string) (map[string]string, error)
}

// Layout manages the config/data/log directory layout of a target.
type Layout interface {
	Ensure(target model.InstallTarget) error
	Verify(target model.InstallTarget) error
	RefreshSecurityContext(target model.InstallTarget)
}

// Supervisor is the process-supervisor control surface used by the orchestrator.
type Supervisor interface {
	DaemonReload(ctx context.Context) error
	Enable(ctx context.Context, unit string) error
	Disable(ctx context.Context, unit string) error
	Start(ctx context.Context, unit string) error
	Stop(ctx context.Context, unit string) error
	IsActive(ctx context.Context, unit string) (bool, error)
	IsEnabled(ctx context.Context, unit string) (bool, error)
}

// HookRunner executes operator hook scripts.
type HookRunner interface {
	Run(hookType hook.Type, hctx hook.Context) error
}

// State names one stage of the install state machine. Transitions are
// strictly forward; any failure moves directly to StateFailed.
type State string

const (
	StatePreparing        State = "preparing"
	StateFetching         State = "fetching"
	StateVerifying        State = "verifying"
	StateExtracting       State = "extracting"
	StatePlacing          State = "placing"
	StateUnitRendering    State = "unit-rendering"
	StateSupervisorReload State = "supervisor-reload"
	StateEnabling         State = "enabling"
	StateRunning          State = "running"
	StateFailed           State = "failed"
)

// Event represents a simple progress notification.
type Event struct {
	State   State
	Package string
	Msg     string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// InstallOptions control orchestrator install execution.
type InstallOptions struct {
	// Version overrides the descriptor's default version.
	Version string
	// InlineChecksum is an operator-supplied archive digest, consulted
	// when no manifest entry matches.
	InlineChecksum string
	// ExtraFlags are appended to the rendered ExecStart line.
	ExtraFlags []string
	// TempParent overrides the parent of the scoped temporary directory;
	// empty means the system default.
	TempParent string
}

// UninstallOptions control orchestrator uninstall execution.
type UninstallOptions struct {
	// Purge also removes the config, data and log directories.
	Purge bool
}

// Change classifies an install run against what the host already carries,
// based on the recorded version marker.
type Change string

const (
	// ChangeFresh: no prior install was found on the host.
	ChangeFresh Change = "fresh-install"
	// ChangeReinstall: the requested version is already recorded.
	ChangeReinstall Change = "reinstall"
	// ChangeUpgrade: the requested version is newer than the recorded one.
	ChangeUpgrade Change = "upgrade"
	// ChangeDowngrade: the requested version is older than the recorded one.
	ChangeDowngrade Change = "downgrade"
)

// Result is the outcome of one install run.
type Result struct {
	Package      string
	Version      string
	Outcome      model.Outcome
	FailedState  State
	Verification model.Verification
	UnitPath     string
	Binaries     []string
	// PriorVersion is the version recorded on the host before this run,
	// empty on a fresh install.
	PriorVersion string
	Change       Change
	// StartErr records why the service did not reach the active state
	// when Outcome is OutcomeInstalledNotRunning.
	StartErr error
}
