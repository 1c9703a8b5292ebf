// Package doctor provides diagnostic checks for ocremote health.
//
// This package implements a check framework that validates:
//   - Server connectivity and response time
//   - Authentication status and credential source
//   - Server version compatibility
//   - State directory writability
//   - CLI version against latest release
package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/gervaso-assistant/ocremote/internal/auth"
	"github.com/gervaso-assistant/ocremote/internal/buildinfo"
	"github.com/gervaso-assistant/ocremote/internal/client"
	"github.com/gervaso-assistant/ocremote/internal/config"
	"github.com/gervaso-assistant/ocremote/internal/paths"
	"github.com/gervaso-assistant/ocremote/internal/update"
)

// MinServerVersion is the oldest opencode server version the client is
// known to work against.
const MinServerVersion = "0.3.0"

// Status represents the result of a diagnostic check.
type Status int

const (
	// StatusPass indicates the check passed.
	StatusPass Status = iota
	// StatusWarn indicates a non-critical issue.
	StatusWarn
	// StatusFail indicates a critical failure.
	StatusFail
)

// Result holds the outcome of a single check.
type Result struct {
	Name    string
	Status  Status
	Message string
	Detail  string // Optional additional detail
}

// Check is a diagnostic check function.
type Check func(ctx context.Context) Result

// Runner executes diagnostic checks.
type Runner struct {
	checks []namedCheck
}

type namedCheck struct {
	name  string
	check Check
}

// New creates a new diagnostic runner.
func New() *Runner {
	r := &Runner{}

	// Register default checks
	r.AddCheck("Configuration", checkConfiguration)
	r.AddCheck("Credentials", checkCredentials)
	r.AddCheck("Server", checkServer)
	r.AddCheck("State Directory", checkStateDir)
	r.AddCheck("CLI Version", checkCLIVersion)

	return r
}

// AddCheck registers a diagnostic check.
func (r *Runner) AddCheck(name string, check Check) {
	r.checks = append(r.checks, namedCheck{name: name, check: check})
}

// Run executes all registered checks and returns the results.
func (r *Runner) Run(ctx context.Context) []Result {
	results := make([]Result, 0, len(r.checks))

	for _, nc := range r.checks {
		result := nc.check(ctx)
		result.Name = nc.name
		results = append(results, result)
	}

	return results
}

// Summary returns counts of passed, failed, and warning checks.
func Summary(results []Result) (passed, failed, warnings int) {
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			passed++
		case StatusFail:
			failed++
		case StatusWarn:
			warnings++
		}
	}

	return passed, failed, warnings
}

// checkConfiguration verifies a server identity is configured.
func checkConfiguration(_ context.Context) Result {
	cfg := config.Load()
	server := cfg.Server()

	if strings.TrimSpace(server.Host) == "" {
		return Result{
			Status:  StatusFail,
			Message: "No server configured",
			Detail:  "Run 'ocremote init' to configure a server",
		}
	}

	return Result{
		Status:  StatusPass,
		Message: server.Key(),
	}
}

// checkCredentials verifies a password is stored for the configured server.
func checkCredentials(_ context.Context) Result {
	cfg := config.Load()
	server := cfg.Server()

	source, password := auth.GetPassword(server.Key())
	if password == "" {
		return Result{
			Status:  StatusFail,
			Message: "No password found",
			Detail:  "Run 'ocremote login' to store the server password",
		}
	}

	return Result{
		Status:  StatusPass,
		Message: fmt.Sprintf("Found (via %s)", source),
	}
}

// checkServer tests connectivity, authentication, and version compatibility
// in one round trip.
func checkServer(ctx context.Context) Result {
	cfg := config.Load()
	server := cfg.Server()
	_, server.Password = auth.GetPassword(server.Key())

	start := time.Now()

	c := client.New(server)

	health, err := c.Health(ctx)
	elapsed := time.Since(start)

	if err != nil {
		if strings.Contains(err.Error(), "rejected credentials") {
			return Result{
				Status:  StatusFail,
				Message: "Reachable but authentication failed",
				Detail:  "Run 'ocremote login' to update the stored password",
			}
		}

		return Result{
			Status:  StatusFail,
			Message: server.BaseURL(),
			Detail:  err.Error(),
		}
	}

	message := fmt.Sprintf("%s (%dms)", server.BaseURL(), elapsed.Milliseconds())

	if health.Version != "" {
		if compat, detail := serverVersionOK(health.Version); !compat {
			return Result{
				Status:  StatusWarn,
				Message: message,
				Detail:  detail,
			}
		}

		message = fmt.Sprintf("%s, v%s (%dms)", server.BaseURL(), health.Version, elapsed.Milliseconds())
	}

	return Result{
		Status:  StatusPass,
		Message: message,
	}
}

// serverVersionOK compares the reported server version against
// MinServerVersion. An unparseable version is reported, not failed.
func serverVersionOK(version string) (ok bool, detail string) {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return false, fmt.Sprintf("Unrecognized server version %q", version)
	}

	minimum := semver.MustParse(MinServerVersion)
	if v.LessThan(minimum) {
		return false, fmt.Sprintf("Server v%s is older than the supported minimum v%s", v, MinServerVersion)
	}

	return true, ""
}

// checkStateDir verifies the state directory is writable.
func checkStateDir(_ context.Context) Result {
	dir, err := paths.StateRoot()
	if err != nil {
		return Result{
			Status:  StatusFail,
			Message: "Cannot resolve state directory",
			Detail:  err.Error(),
		}
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Result{
			Status:  StatusFail,
			Message: dir,
			Detail:  err.Error(),
		}
	}

	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		return Result{
			Status:  StatusFail,
			Message: dir,
			Detail:  err.Error(),
		}
	}

	_ = os.Remove(probe)

	return Result{
		Status:  StatusPass,
		Message: dir,
	}
}

// checkCLIVersion checks the CLI version against the latest release.
func checkCLIVersion(ctx context.Context) Result {
	current := buildinfo.Version

	if current == "dev" {
		return Result{
			Status:  StatusWarn,
			Message: "Development build (version check skipped)",
		}
	}

	if update.IsDisabled() {
		return Result{
			Status:  StatusPass,
			Message: fmt.Sprintf("v%s (update checks disabled)", current),
		}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	updater, err := update.NewUpdater()
	if err != nil {
		return Result{
			Status:  StatusWarn,
			Message: fmt.Sprintf("v%s (could not check for updates)", current),
			Detail:  err.Error(),
		}
	}

	info, err := updater.CheckLatest(checkCtx, current)
	if err != nil {
		return Result{
			Status:  StatusWarn,
			Message: fmt.Sprintf("v%s (could not check for updates)", current),
			Detail:  err.Error(),
		}
	}

	if info.UpdateAvailable {
		return Result{
			Status:  StatusWarn,
			Message: fmt.Sprintf("v%s (v%s available)", current, info.LatestVersion),
			Detail:  "Run 'ocremote update' to update",
		}
	}

	return Result{
		Status:  StatusPass,
		Message: fmt.Sprintf("v%s (latest)", current),
	}
}

// RenderResults formats diagnostic results to the given output writer.
func RenderResults(results []Result, printFn, successFn, warningFn, failureFn, mutedFn func(format string, args ...any)) {
	maxNameLen := 0
	for _, r := range results {
		if len(r.Name) > maxNameLen {
			maxNameLen = len(r.Name)
		}
	}

	for _, r := range results {
		symbol := r.Status.Symbol()
		padding := maxNameLen - len(r.Name) + 4

		switch r.Status {
		case StatusPass:
			successFn("%-*s%s", len(r.Name)+padding, r.Name, r.Message)
		case StatusWarn:
			warningFn("%-*s%s", len(r.Name)+padding, r.Name, r.Message)
		case StatusFail:
			failureFn("%-*s%s", len(r.Name)+padding, r.Name, r.Message)
		default:
			printFn("%s %-*s%s\n", symbol, len(r.Name)+padding, r.Name, r.Message)
		}

		if r.Detail != "" {
			mutedFn("    %s", r.Detail)
		}
	}
}

// Symbol returns the status symbol for display.
func (s Status) Symbol() string {
	switch s {
	case StatusPass:
		return checkMark
	case StatusWarn:
		return warningMark
	case StatusFail:
		return xMark
	default:
		return "?"
	}
}

const (
	checkMark   = "\u2713" // ✓
	xMark       = "\u2717" // ✗
	warningMark = "\u26A0" // ⚠
)
