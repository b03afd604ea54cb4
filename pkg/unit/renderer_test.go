package unit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obstack/obstack/pkg/model"
)

func targetFor(t *testing.T, pkg string, scope model.Scope) (model.PackageDescriptor, model.InstallTarget) {
	t.Helper()
	desc, err := model.Lookup(pkg)
	require.NoError(t, err)
	u := model.User{Name: "monitor", UID: 1001, GID: 1001, Home: "/home/monitor"}
	return desc, model.NewInstallTarget(desc, u, scope, 0)
}

func TestRender_Deterministic(t *testing.T) {
	desc, target := targetFor(t, "prometheus", model.ScopeSystem)

	first := Render(desc, target, []string{"--log.level=debug"})
	second := Render(desc, target, []string{"--log.level=debug"})
	assert.Equal(t, first, second, "unit text must be byte-identical across calls")
}

func TestRender_SystemScope(t *testing.T) {
	desc, target := targetFor(t, "prometheus", model.ScopeSystem)

	text := Render(desc, target, nil)

	assert.Contains(t, text, "Description=Prometheus time series database\n")
	assert.Contains(t, text, "User=monitor\n")
	assert.Contains(t, text, "Group=monitor\n")
	assert.Contains(t, text, "WorkingDirectory=/var/lib/prometheus\n")
	assert.Contains(t, text, "ExecStartPre=/usr/local/bin/promtool check config /etc/prometheus/prometheus.yml\n")
	assert.Contains(t, text,
		"ExecStart=/usr/local/bin/prometheus --config.file=/etc/prometheus/prometheus.yml --storage.tsdb.path=/var/lib/prometheus --web.listen-address=:9090\n")
	assert.Contains(t, text, "Restart=on-failure\n")
	assert.Contains(t, text, "RestartSec=5s\n")
	assert.Contains(t, text, "LimitNOFILE=65536\n")
	assert.Contains(t, text, "WantedBy=multi-user.target\n")
}

func TestRender_UserScope(t *testing.T) {
	desc, target := targetFor(t, "node_exporter", model.ScopeUser)

	text := Render(desc, target, nil)

	// User units run as the owning user; systemd rejects User= there.
	assert.NotContains(t, text, "User=")
	assert.NotContains(t, text, "Group=")
	assert.Contains(t, text, "ExecStart=/home/monitor/.local/bin/node_exporter --web.listen-address=:9100\n")
	assert.Contains(t, text, "WantedBy=default.target\n")
	// No validation command defined for node_exporter.
	assert.NotContains(t, text, "ExecStartPre=")
}

func TestRender_ExtraFlagsAppended(t *testing.T) {
	desc, target := targetFor(t, "pushgateway", model.ScopeUser)

	text := Render(desc, target, []string{"--log.level=warn"})

	execLine := ""
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "ExecStart=") {
			execLine = line
		}
	}
	require.NotEmpty(t, execLine)
	assert.True(t, strings.HasSuffix(execLine, "--log.level=warn"))
}

func TestRender_DefaultLimitNOFILE(t *testing.T) {
	desc := model.PackageDescriptor{
		Name:     "bare",
		Binaries: []string{"bare"},
		Unit:     model.UnitParams{Description: "bare service"},
	}
	target := model.NewInstallTarget(desc, model.User{Home: "/home/x"}, model.ScopeUser, 1234)

	text := Render(desc, target, nil)
	assert.Contains(t, text, "LimitNOFILE=8192\n")
}
