package model

// VerificationState is the integrity state of a downloaded artifact.
type VerificationState string

const (
	VerificationUnverified VerificationState = "unverified"
	VerificationVerified   VerificationState = "verified"
	VerificationMismatched VerificationState = "mismatched"
)

// VerificationSource records where the expected digest came from. A fallback
// digest is explicitly lower trust than a fetched manifest and is surfaced
// to the caller as such.
type VerificationSource string

const (
	SourceManifest VerificationSource = "manifest"
	SourceInline   VerificationSource = "inline"
	SourceFallback VerificationSource = "fallback"
)

// Verification is the outcome of checking an artifact's digest.
type Verification struct {
	State    VerificationState
	Source   VerificationSource
	Expected string
	Actual   string
}

// DownloadedArtifact is a release archive sitting in a scoped temporary
// directory. It never outlives the install run that fetched it.
type DownloadedArtifact struct {
	Package     string
	Version     string
	ArchivePath string
	// ManifestPath is the local path of the fetched checksum manifest,
	// or "" when the vendor publishes none or the fetch failed.
	ManifestPath string
	Verification Verification
}

// InstallRecord is the observable result of past installs, derived entirely
// from filesystem and supervisor state. There is no persisted store; the
// host is the source of truth.
type InstallRecord struct {
	Package          string
	InstalledVersion string
	BinaryPresent    bool
	UnitPresent      bool
	Enabled          bool
	Active           bool
}

// Outcome classifies how far an install got.
type Outcome string

const (
	// OutcomeRunning: everything placed, unit enabled and active.
	OutcomeRunning Outcome = "running"
	// OutcomeInstalledNotRunning: files and unit are correctly on disk but
	// the service did not reach the active state; the operator likely needs
	// to fix a config issue and restart.
	OutcomeInstalledNotRunning Outcome = "installed-not-running"
	// OutcomeFailed: the install aborted before completing placement.
	OutcomeFailed Outcome = "failed"
)
