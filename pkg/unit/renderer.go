// Package unit renders systemd unit files from package descriptors and
// install targets. Rendering is pure: same inputs always produce
// byte-identical text, and the caller is responsible for writing the file.
package unit

import (
	"fmt"
	"strings"

	"github.com/obstack/obstack/pkg/model"
)

// restartDelaySeconds is the fixed backoff between restart attempts.
const restartDelaySeconds = 5

// defaultLimitNOFILE applies when a descriptor does not set its own ceiling.
const defaultLimitNOFILE = 8192

// Render produces the unit file text for the descriptor on the target.
func Render(desc model.PackageDescriptor, target model.InstallTarget, extraFlags []string) string {
	var b strings.Builder

	b.WriteString("[Unit]\n")
	fmt.Fprintf(&b, "Description=%s\n", desc.Unit.Description)
	b.WriteString("Wants=network-online.target\n")
	b.WriteString("After=network-online.target\n")
	b.WriteString("\n")

	b.WriteString("[Service]\n")
	b.WriteString("Type=simple\n")
	if target.Scope == model.ScopeSystem {
		fmt.Fprintf(&b, "User=%s\n", target.User.Name)
		fmt.Fprintf(&b, "Group=%s\n", target.User.Name)
	}
	fmt.Fprintf(&b, "WorkingDirectory=%s\n", target.DataDir)
	if validate := desc.ValidateCommand(target); validate != "" {
		fmt.Fprintf(&b, "ExecStartPre=%s\n", validate)
	}
	fmt.Fprintf(&b, "ExecStart=%s\n", execStart(desc, target, extraFlags))
	b.WriteString("Restart=on-failure\n")
	fmt.Fprintf(&b, "RestartSec=%ds\n", restartDelaySeconds)
	limit := desc.Unit.LimitNOFILE
	if limit == 0 {
		limit = defaultLimitNOFILE
	}
	fmt.Fprintf(&b, "LimitNOFILE=%d\n", limit)
	b.WriteString("\n")

	b.WriteString("[Install]\n")
	if target.Scope == model.ScopeSystem {
		b.WriteString("WantedBy=multi-user.target\n")
	} else {
		b.WriteString("WantedBy=default.target\n")
	}

	return b.String()
}

// execStart builds the start command: absolute binary path followed by the
// descriptor's rendered flags and any operator extras, in declaration order.
func execStart(desc model.PackageDescriptor, target model.InstallTarget, extraFlags []string) string {
	parts := []string{target.BinaryPath(desc.Binaries[0])}
	parts = append(parts, desc.Flags(target)...)
	parts = append(parts, extraFlags...)
	return strings.Join(parts, " ")
}
