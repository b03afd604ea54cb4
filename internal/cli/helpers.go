package cli

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"strconv"

	"github.com/obstack/obstack/internal/logger"
	"github.com/obstack/obstack/pkg/archive"
	"github.com/obstack/obstack/pkg/config"
	"github.com/obstack/obstack/pkg/download"
	"github.com/obstack/obstack/pkg/errors"
	"github.com/obstack/obstack/pkg/hook"
	"github.com/obstack/obstack/pkg/layout"
	"github.com/obstack/obstack/pkg/model"
	"github.com/obstack/obstack/pkg/orchestrator"
	"github.com/obstack/obstack/pkg/systemd"
	"github.com/obstack/obstack/pkg/verify"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
	ScopeFlag  *string
)

// loadConfig loads the configuration, overlays environment overrides and
// applies the global CLI flags.
func loadConfig() (*config.Config, error) {
	configPath := ""
	if ConfigPath != nil {
		configPath = *ConfigPath
	}
	if configPath == "" {
		defaultPath, err := config.GetDefaultConfigPath()
		if err != nil {
			return nil, &ExitError{Code: ExitUsage, Err: err}
		}
		configPath = defaultPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Err: err}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, &ExitError{Code: ExitUsage, Err: err}
	}

	if ScopeFlag != nil && *ScopeFlag != "" {
		cfg.Settings.Scope = *ScopeFlag
		if err := cfg.Validate(); err != nil {
			return nil, &ExitError{Code: ExitUsage, Err: err}
		}
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}
	logger.InitLogger(cfg.Settings.LogLevel)

	return cfg, nil
}

// resolveUser determines the account services should run as. Under sudo the
// invoking user is used, not root; services never run privileged.
func resolveUser() (model.User, error) {
	var u *user.User
	var err error

	if os.Geteuid() == 0 {
		if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" && sudoUser != "root" {
			u, err = user.Lookup(sudoUser)
		} else {
			u, err = user.Current()
		}
	} else {
		u, err = user.Current()
	}
	if err != nil {
		return model.User{}, errors.Wrap(err, "resolving target user")
	}

	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return model.User{}, errors.Wrapf(err, "parsing uid %q", u.Uid)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return model.User{}, errors.Wrapf(err, "parsing gid %q", u.Gid)
	}

	return model.User{Name: u.Username, UID: uid, GID: gid, Home: u.HomeDir}, nil
}

// resolveTarget builds the install target for one package from config plus
// the resolved user.
func resolveTarget(cfg *config.Config, desc model.PackageDescriptor, portFlag int) (model.InstallTarget, error) {
	u, err := resolveUser()
	if err != nil {
		return model.InstallTarget{}, err
	}
	port := portFlag
	if port == 0 {
		port = cfg.Override(desc.Name).Port
	}
	return model.NewInstallTarget(desc, u, model.Scope(cfg.Settings.Scope), port), nil
}

// buildOrchestrator wires the managers together. The returned systemd client
// must be closed by the caller.
func buildOrchestrator(ctx context.Context, cfg *config.Config, hooks orchestrator.Hooks) (*orchestrator.Orchestrator, *systemd.Client, error) {
	sd, err := systemd.New(ctx, model.Scope(cfg.Settings.Scope))
	if err != nil {
		return nil, nil, err
	}

	hookManager := hook.NewManager()
	if err := hookManager.LoadDir(cfg.Settings.HooksDir); err != nil {
		sd.Close()
		return nil, nil, err
	}
	for _, hookType := range []hook.Type{hook.PreInstall, hook.PostInstall} {
		if hookManager.Has(hookType) {
			logger.Debug("hook script loaded", logger.Fields{"hook": string(hookType)})
		}
	}

	orch := orchestrator.New(
		download.NewManager(cfg.Settings.HTTPTimeout, cfg.Settings.UserAgent),
		verify.NewVerifier(),
		archive.NewManager(),
		layout.NewManager(),
		sd,
		hookManager,
		hooks,
	)
	return orch, sd, nil
}

// lookupAll resolves package names against the catalog, or returns the whole
// catalog when no names are given.
func lookupAll(args []string) ([]model.PackageDescriptor, error) {
	if len(args) == 0 {
		return model.Catalog(), nil
	}
	descs := make([]model.PackageDescriptor, 0, len(args))
	for _, name := range args {
		desc, err := model.Lookup(name)
		if err != nil {
			return nil, &ExitError{Code: ExitUsage, Err: err}
		}
		descs = append(descs, desc)
	}
	return descs, nil
}

// progressHooks prints human-friendly progress lines.
func progressHooks() orchestrator.Hooks {
	return orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
		if e.Msg != "" {
			fmt.Printf("%s: %s\n", e.State, e.Msg)
		} else {
			fmt.Printf("%s: %s\n", e.State, e.Package)
		}
	}}
}
