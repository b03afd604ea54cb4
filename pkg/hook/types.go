// Package hook runs operator-supplied Tengo scripts around installs, for
// site-local glue such as opening firewall ports or registering the new
// service with an inventory system.
package hook

// Type identifies when a hook script runs.
type Type string

const (
	// PreInstall runs after verification but before any file is placed.
	// A failure aborts the install.
	PreInstall Type = "pre-install"
	// PostInstall runs after the service has been enabled. A failure is
	// logged as a warning and does not affect the install result.
	PostInstall Type = "post-install"
)

// Context carries the variables exposed to a hook script.
type Context struct {
	PackageName    string
	PackageVersion string
	InstallPath    string
	ConfigDir      string
	Port           int

	// Vars are additional script variables.
	Vars map[string]interface{}
}
