// Package preflight inspects a host before any install is attempted and
// reports what would get in the way: an unwritable layout, a taken port, a
// user-mode systemd instance that will die at logout.
package preflight

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/obstack/obstack/pkg/model"
)

// Status classifies one check result.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Check is one named preflight result.
type Check struct {
	Name   string
	Status Status
	Detail string
}

// Checker runs host readiness checks for an install target.
type Checker struct {
	// LingerDir is where systemd records lingering users. Overridable for
	// tests; empty means the system default.
	LingerDir string
	// ConnectSupervisor attempts a supervisor connection for the target's
	// scope. Nil skips the supervisor check.
	ConnectSupervisor func(ctx context.Context) error
}

const defaultLingerDir = "/var/lib/systemd/linger"

// Run executes all checks for the packages on the target. It never returns
// an error; problems are reported as failing checks.
func (c *Checker) Run(ctx context.Context, target model.InstallTarget, descs []model.PackageDescriptor) []Check {
	checks := []Check{
		c.checkUser(target),
		c.checkLayout(target),
	}
	if target.Scope == model.ScopeUser {
		checks = append(checks, c.checkLingering(target))
	}
	for _, desc := range descs {
		port := target.Port
		if port == 0 || len(descs) > 1 {
			port = desc.DefaultPort
		}
		checks = append(checks, c.checkPort(desc.Name, port))
	}
	checks = append(checks, c.checkSupervisor(ctx))
	return checks
}

// Failed reports whether any check has the given status.
func Failed(checks []Check, status Status) bool {
	for _, ch := range checks {
		if ch.Status == status {
			return true
		}
	}
	return false
}

func (c *Checker) checkUser(target model.InstallTarget) Check {
	ch := Check{Name: "target user"}
	if target.User.Name == "" || target.User.Home == "" {
		ch.Status = StatusFail
		ch.Detail = "target user is not resolved"
		return ch
	}
	if _, err := os.Stat(target.User.Home); err != nil {
		ch.Status = StatusFail
		ch.Detail = fmt.Sprintf("home directory %s: %v", target.User.Home, err)
		return ch
	}
	ch.Status = StatusPass
	ch.Detail = fmt.Sprintf("%s (uid %d)", target.User.Name, target.User.UID)
	return ch
}

func (c *Checker) checkLayout(target model.InstallTarget) Check {
	ch := Check{Name: "layout writable"}
	for _, dir := range []string{target.ConfigDir, target.DataDir, target.LogDir, target.BinDir, target.UnitDir} {
		probe := probeDir(dir)
		if probe == "" {
			continue
		}
		f, err := os.CreateTemp(probe, ".preflight-*")
		if err != nil {
			ch.Status = StatusFail
			ch.Detail = fmt.Sprintf("cannot write under %s: %v", probe, err)
			return ch
		}
		name := f.Name()
		_ = f.Close()
		_ = os.Remove(name)
	}
	ch.Status = StatusPass
	ch.Detail = "all layout directories writable or creatable"
	return ch
}

// probeDir walks up from dir to the nearest existing ancestor; that is the
// directory a MkdirAll would need write access to.
func probeDir(dir string) string {
	for dir != "/" && dir != "." {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
		dir = filepath.Dir(dir)
	}
	return ""
}

func (c *Checker) checkLingering(target model.InstallTarget) Check {
	ch := Check{Name: "lingering"}
	lingerDir := c.LingerDir
	if lingerDir == "" {
		lingerDir = defaultLingerDir
	}
	if _, err := os.Stat(filepath.Join(lingerDir, target.User.Name)); err != nil {
		ch.Status = StatusWarn
		ch.Detail = fmt.Sprintf("lingering not enabled for %s; services stop at logout (loginctl enable-linger %s)", target.User.Name, target.User.Name)
		return ch
	}
	ch.Status = StatusPass
	ch.Detail = "lingering enabled"
	return ch
}

func (c *Checker) checkPort(pkg string, port int) Check {
	ch := Check{Name: fmt.Sprintf("port %d (%s)", port, pkg)}
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		ch.Status = StatusWarn
		ch.Detail = fmt.Sprintf("port %d is already in use: %v", port, err)
		return ch
	}
	_ = ln.Close()
	ch.Status = StatusPass
	ch.Detail = "free"
	return ch
}

func (c *Checker) checkSupervisor(ctx context.Context) Check {
	ch := Check{Name: "supervisor"}
	if c.ConnectSupervisor == nil {
		ch.Status = StatusWarn
		ch.Detail = "supervisor check skipped"
		return ch
	}
	if err := c.ConnectSupervisor(ctx); err != nil {
		ch.Status = StatusFail
		ch.Detail = fmt.Sprintf("cannot reach supervisor: %v", err)
		return ch
	}
	ch.Status = StatusPass
	ch.Detail = "reachable"
	return ch
}
