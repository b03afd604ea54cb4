package model

import (
	"path/filepath"
)

// Scope selects between a user-mode install (units under the target user's
// own systemd instance) and a system-wide one.
type Scope string

const (
	ScopeUser   Scope = "user"
	ScopeSystem Scope = "system"
)

// User identifies the unprivileged account services run as.
type User struct {
	Name string
	UID  int
	GID  int
	Home string
}

// InstallTarget is the resolved runtime context for one install attempt.
// It is constructed once at entry and passed through all components;
// components never re-query the environment mid-workflow.
type InstallTarget struct {
	User  User
	Scope Scope

	ConfigDir string
	DataDir   string
	LogDir    string
	BinDir    string
	UnitDir   string

	Port int
}

// NewInstallTarget computes the path layout for the given package under the
// given user and scope. Port 0 means "use the descriptor default".
func NewInstallTarget(desc PackageDescriptor, u User, scope Scope, port int) InstallTarget {
	if port == 0 {
		port = desc.DefaultPort
	}

	t := InstallTarget{User: u, Scope: scope, Port: port}
	switch scope {
	case ScopeSystem:
		t.ConfigDir = filepath.Join("/etc", desc.Name)
		t.DataDir = filepath.Join("/var/lib", desc.Name)
		t.LogDir = filepath.Join("/var/log", desc.Name)
		t.BinDir = "/usr/local/bin"
		t.UnitDir = "/etc/systemd/system"
	default:
		t.ConfigDir = filepath.Join(u.Home, ".config", desc.Name)
		t.DataDir = filepath.Join(u.Home, ".local", "share", desc.Name)
		t.LogDir = filepath.Join(u.Home, ".local", "state", desc.Name, "log")
		t.BinDir = filepath.Join(u.Home, ".local", "bin")
		t.UnitDir = filepath.Join(u.Home, ".config", "systemd", "user")
	}
	return t
}

// UnitName returns the systemd unit name for the package.
func (t InstallTarget) UnitName(pkg string) string {
	return pkg + ".service"
}

// UnitPath returns the absolute unit file path for the package.
func (t InstallTarget) UnitPath(pkg string) string {
	return filepath.Join(t.UnitDir, t.UnitName(pkg))
}

// BinaryPath returns the install path of a named binary.
func (t InstallTarget) BinaryPath(name string) string {
	return filepath.Join(t.BinDir, name)
}

// VersionMarkerPath returns the path of the version marker recording which
// release of the package is currently placed in BinDir.
func (t InstallTarget) VersionMarkerPath(pkg string) string {
	return filepath.Join(t.BinDir, "."+pkg+".version")
}

// SeedConfigPath returns the target path of the package's default config
// file, or "" when the descriptor carries none.
func (t InstallTarget) SeedConfigPath(desc PackageDescriptor) string {
	if desc.SeedConfigName == "" {
		return ""
	}
	return filepath.Join(t.ConfigDir, desc.SeedConfigName)
}
