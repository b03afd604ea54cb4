// Package model defines the core data types shared between the obstack
// packages: package descriptors, install targets and downloaded artifacts.
package model

import (
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/obstack/obstack/pkg/errors"
)

// UnitParams hold the supervisor-unit parameters of a package descriptor.
type UnitParams struct {
	// Description is the human-readable unit description.
	Description string
	// Flags are the ExecStart flag templates, expanded against the install
	// target. Recognized tokens: {bin}, {config}, {data}, {logs}, {port}.
	Flags []string
	// ValidateCommand, when non-empty, is rendered as an ExecStartPre
	// config check that aborts the start on non-zero exit.
	ValidateCommand string
	// LimitNOFILE is the open file descriptor ceiling for the service.
	LimitNOFILE int
}

// PackageDescriptor describes one supported service. Descriptors are defined
// statically in Catalog and never mutated at runtime.
type PackageDescriptor struct {
	Name           string
	DefaultVersion string
	// URLTemplate expands {version}, {os}, {arch} and {archive} into the
	// release download URL.
	URLTemplate string
	// ArchiveTemplate expands {version}, {os}, {arch} into the release
	// archive file name.
	ArchiveTemplate string
	// ManifestName is the checksum manifest file published next to the
	// archive (e.g. sha256sums.txt). Empty when the vendor publishes none.
	ManifestName string
	// Binaries are the executables expected inside the release archive.
	Binaries []string
	// DefaultPort is the listen port used when no override is given.
	DefaultPort int
	// SeedConfigName and SeedConfig describe the default configuration file
	// written into the config dir when (and only when) none exists yet.
	SeedConfigName string
	SeedConfig     string
	// FallbackSHA256 maps exact version strings to last-known-good archive
	// digests, used when no manifest is retrievable. Lower trust than a
	// fetched manifest; surfaced as such by the verifier.
	FallbackSHA256 map[string]string

	Unit UnitParams
}

// ArchiveName returns the release archive file name for the given version on
// the current platform.
func (d PackageDescriptor) ArchiveName(version string) string {
	return expand(d.ArchiveTemplate, map[string]string{
		"version": version,
		"os":      runtime.GOOS,
		"arch":    runtime.GOARCH,
	})
}

// DownloadURL returns the release archive URL for the given version.
func (d PackageDescriptor) DownloadURL(version string) string {
	return expand(d.URLTemplate, map[string]string{
		"version": version,
		"os":      runtime.GOOS,
		"arch":    runtime.GOARCH,
		"archive": d.ArchiveName(version),
	})
}

// ManifestURL returns the checksum manifest URL for the given version, or ""
// when the vendor publishes no manifest.
func (d PackageDescriptor) ManifestURL(version string) string {
	if d.ManifestName == "" {
		return ""
	}
	return expand(d.URLTemplate, map[string]string{
		"version": version,
		"os":      runtime.GOOS,
		"arch":    runtime.GOARCH,
		"archive": d.ManifestName,
	})
}

// Flags renders the unit flag templates against the target. The result is
// deterministic: same descriptor and target always produce the same flag list
// in the same order.
func (d PackageDescriptor) Flags(target InstallTarget) []string {
	repl := target.tokens()
	out := make([]string, len(d.Unit.Flags))
	for i, f := range d.Unit.Flags {
		out[i] = expand(f, repl)
	}
	return out
}

// ValidateCommand renders the pre-start validation command against the
// target, or returns "" when the descriptor defines none.
func (d PackageDescriptor) ValidateCommand(target InstallTarget) string {
	if d.Unit.ValidateCommand == "" {
		return ""
	}
	return expand(d.Unit.ValidateCommand, target.tokens())
}

func (t InstallTarget) tokens() map[string]string {
	return map[string]string{
		"bin":    t.BinDir,
		"config": t.ConfigDir,
		"data":   t.DataDir,
		"logs":   t.LogDir,
		"port":   strconv.Itoa(t.Port),
	}
}

func expand(template string, tokens map[string]string) string {
	pairs := make([]string, 0, len(tokens)*2)
	for k, v := range tokens {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Catalog returns the descriptors of all supported packages, sorted by name.
func Catalog() []PackageDescriptor {
	out := make([]PackageDescriptor, 0, len(catalog))
	for _, d := range catalog {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the descriptor for the named package.
func Lookup(name string) (PackageDescriptor, error) {
	d, ok := catalog[name]
	if !ok {
		return PackageDescriptor{}, errors.Wrapf(errors.ErrUnknownPackage, "%s", name)
	}
	return d, nil
}

var catalog = map[string]PackageDescriptor{
	"prometheus": {
		Name:            "prometheus",
		DefaultVersion:  "3.5.0",
		URLTemplate:     "https://github.com/prometheus/prometheus/releases/download/v{version}/{archive}",
		ArchiveTemplate: "prometheus-{version}.{os}-{arch}.tar.gz",
		ManifestName:    "sha256sums.txt",
		Binaries:        []string{"prometheus", "promtool"},
		DefaultPort:     9090,
		SeedConfigName:  "prometheus.yml",
		SeedConfig: `global:
  scrape_interval: 15s
  evaluation_interval: 15s

scrape_configs:
  - job_name: prometheus
    static_configs:
      - targets: ["localhost:9090"]
  - job_name: node
    static_configs:
      - targets: ["localhost:9100"]
`,
		FallbackSHA256: map[string]string{
			"3.5.0": "d8d70b4b7c53b1f8ff5b05a5a410e5e8d06e3937b4f15db82c9b0e28cba9ba34",
		},
		Unit: UnitParams{
			Description: "Prometheus time series database",
			Flags: []string{
				"--config.file={config}/prometheus.yml",
				"--storage.tsdb.path={data}",
				"--web.listen-address=:{port}",
			},
			ValidateCommand: "{bin}/promtool check config {config}/prometheus.yml",
			LimitNOFILE:     65536,
		},
	},
	"node_exporter": {
		Name:            "node_exporter",
		DefaultVersion:  "1.9.1",
		URLTemplate:     "https://github.com/prometheus/node_exporter/releases/download/v{version}/{archive}",
		ArchiveTemplate: "node_exporter-{version}.{os}-{arch}.tar.gz",
		ManifestName:    "sha256sums.txt",
		Binaries:        []string{"node_exporter"},
		DefaultPort:     9100,
		FallbackSHA256: map[string]string{
			"1.9.1": "becb950ee80daa8ae7331d77966d94a611af79ad0d3307380907e0ec08f5b4e8",
		},
		Unit: UnitParams{
			Description: "Prometheus node exporter",
			Flags: []string{
				"--web.listen-address=:{port}",
			},
			LimitNOFILE: 8192,
		},
	},
	"alertmanager": {
		Name:            "alertmanager",
		DefaultVersion:  "0.28.1",
		URLTemplate:     "https://github.com/prometheus/alertmanager/releases/download/v{version}/{archive}",
		ArchiveTemplate: "alertmanager-{version}.{os}-{arch}.tar.gz",
		ManifestName:    "sha256sums.txt",
		Binaries:        []string{"alertmanager", "amtool"},
		DefaultPort:     9093,
		SeedConfigName:  "alertmanager.yml",
		SeedConfig: `route:
  receiver: default

receivers:
  - name: default
`,
		FallbackSHA256: map[string]string{
			"0.28.1": "5ac7ab5e4b8ee5ce4d8fb0988f9e0c1e026b57889a3f4a74a0d7e9b6ae5004e4",
		},
		Unit: UnitParams{
			Description: "Prometheus alertmanager",
			Flags: []string{
				"--config.file={config}/alertmanager.yml",
				"--storage.path={data}",
				"--web.listen-address=:{port}",
			},
			ValidateCommand: "{bin}/amtool check-config {config}/alertmanager.yml",
			LimitNOFILE:     8192,
		},
	},
	"pushgateway": {
		Name:            "pushgateway",
		DefaultVersion:  "1.11.1",
		URLTemplate:     "https://github.com/prometheus/pushgateway/releases/download/v{version}/{archive}",
		ArchiveTemplate: "pushgateway-{version}.{os}-{arch}.tar.gz",
		ManifestName:    "sha256sums.txt",
		Binaries:        []string{"pushgateway"},
		DefaultPort:     9091,
		FallbackSHA256: map[string]string{
			"1.11.1": "bd5a1b6b3bbd5b06079b6eab9af65c3e2e3d2a7a0a8e38a3ab4082c7918b108a",
		},
		Unit: UnitParams{
			Description: "Prometheus pushgateway",
			Flags: []string{
				"--web.listen-address=:{port}",
				"--persistence.file={data}/pushgateway.data",
			},
			LimitNOFILE: 8192,
		},
	},
	"grafana": {
		Name:            "grafana",
		DefaultVersion:  "12.1.0",
		URLTemplate:     "https://dl.grafana.com/oss/release/{archive}",
		ArchiveTemplate: "grafana-{version}.{os}-{arch}.tar.gz",
		// Grafana publishes no checksum manifest next to its archives;
		// verification relies on an inline or fallback digest.
		ManifestName:   "",
		Binaries:       []string{"grafana", "grafana-server", "grafana-cli"},
		DefaultPort:    3000,
		SeedConfigName: "grafana.ini",
		SeedConfig: `[server]
http_port = 3000

[paths]
logs = /var/log/grafana
`,
		FallbackSHA256: map[string]string{
			"12.1.0": "f4e45296b6f2b5f2a22a01b04d4b43a4f8b02f800a1a4d9d2c6b0f09e3a317d0",
		},
		Unit: UnitParams{
			Description: "Grafana dashboards",
			Flags: []string{
				"server",
				"--homepath={data}",
				"--config={config}/grafana.ini",
			},
			LimitNOFILE: 10000,
		},
	},
}

// String implements fmt.Stringer.
func (d PackageDescriptor) String() string {
	return fmt.Sprintf("%s@%s", d.Name, d.DefaultVersion)
}
