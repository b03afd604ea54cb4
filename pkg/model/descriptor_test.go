package model

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obstack/obstack/pkg/errors"
)

func TestCatalog(t *testing.T) {
	descs := Catalog()
	require.Len(t, descs, 5)

	names := make([]string, 0, len(descs))
	for _, d := range descs {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"alertmanager", "grafana", "node_exporter", "prometheus", "pushgateway"}, names)

	for _, d := range descs {
		assert.NotEmpty(t, d.DefaultVersion, d.Name)
		assert.NotEmpty(t, d.Binaries, d.Name)
		assert.NotZero(t, d.DefaultPort, d.Name)
		assert.NotEmpty(t, d.Unit.Description, d.Name)
	}
}

func TestLookup(t *testing.T) {
	d, err := Lookup("prometheus")
	require.NoError(t, err)
	assert.Equal(t, "prometheus", d.Name)

	_, err = Lookup("statsd")
	require.ErrorIs(t, err, errors.ErrUnknownPackage)
}

func TestDownloadURL(t *testing.T) {
	d, err := Lookup("node_exporter")
	require.NoError(t, err)

	want := fmt.Sprintf(
		"https://github.com/prometheus/node_exporter/releases/download/v1.9.1/node_exporter-1.9.1.%s-%s.tar.gz",
		runtime.GOOS, runtime.GOARCH)
	assert.Equal(t, want, d.DownloadURL("1.9.1"))
}

func TestManifestURL(t *testing.T) {
	prom, err := Lookup("prometheus")
	require.NoError(t, err)
	assert.Contains(t, prom.ManifestURL("3.5.0"), "v3.5.0/sha256sums.txt")

	// Grafana publishes no manifest.
	grafana, err := Lookup("grafana")
	require.NoError(t, err)
	assert.Empty(t, grafana.ManifestURL("12.1.0"))
}

func TestFlags_Deterministic(t *testing.T) {
	d, err := Lookup("prometheus")
	require.NoError(t, err)

	target := NewInstallTarget(d, User{Name: "monitor", UID: 1001, GID: 1001, Home: "/home/monitor"}, ScopeUser, 0)

	first := d.Flags(target)
	second := d.Flags(target)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{
		"--config.file=/home/monitor/.config/prometheus/prometheus.yml",
		"--storage.tsdb.path=/home/monitor/.local/share/prometheus",
		"--web.listen-address=:9090",
	}, first)
}

func TestValidateCommand(t *testing.T) {
	prom, err := Lookup("prometheus")
	require.NoError(t, err)
	target := NewInstallTarget(prom, User{Home: "/home/monitor"}, ScopeSystem, 0)
	assert.Equal(t, "/usr/local/bin/promtool check config /etc/prometheus/prometheus.yml", prom.ValidateCommand(target))

	ne, err := Lookup("node_exporter")
	require.NoError(t, err)
	assert.Empty(t, ne.ValidateCommand(target))
}

func TestNewInstallTarget_Paths(t *testing.T) {
	d, err := Lookup("alertmanager")
	require.NoError(t, err)
	u := User{Name: "monitor", UID: 1001, GID: 1001, Home: "/home/monitor"}

	tests := []struct {
		name  string
		scope Scope
		port  int
		check func(t *testing.T, target InstallTarget)
	}{
		{
			name:  "user scope",
			scope: ScopeUser,
			check: func(t *testing.T, target InstallTarget) {
				assert.Equal(t, "/home/monitor/.config/alertmanager", target.ConfigDir)
				assert.Equal(t, "/home/monitor/.local/share/alertmanager", target.DataDir)
				assert.Equal(t, "/home/monitor/.local/bin", target.BinDir)
				assert.Equal(t, "/home/monitor/.config/systemd/user/alertmanager.service", target.UnitPath("alertmanager"))
				assert.Equal(t, 9093, target.Port)
			},
		},
		{
			name:  "system scope with port override",
			scope: ScopeSystem,
			port:  19093,
			check: func(t *testing.T, target InstallTarget) {
				assert.Equal(t, "/etc/alertmanager", target.ConfigDir)
				assert.Equal(t, "/var/lib/alertmanager", target.DataDir)
				assert.Equal(t, "/usr/local/bin", target.BinDir)
				assert.Equal(t, "/etc/systemd/system/alertmanager.service", target.UnitPath("alertmanager"))
				assert.Equal(t, 19093, target.Port)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewInstallTarget(d, u, tt.scope, tt.port))
		})
	}
}

func TestSeedConfigPath(t *testing.T) {
	prom, err := Lookup("prometheus")
	require.NoError(t, err)
	target := NewInstallTarget(prom, User{Home: "/home/monitor"}, ScopeSystem, 0)
	assert.Equal(t, "/etc/prometheus/prometheus.yml", target.SeedConfigPath(prom))

	ne, err := Lookup("node_exporter")
	require.NoError(t, err)
	assert.Empty(t, target.SeedConfigPath(ne))
}
