package main

import (
	"bytes"
	"testing"

	"github.com/gervaso-assistant/ocremote/internal/doctor"
	"github.com/gervaso-assistant/ocremote/internal/output"
	"github.com/gervaso-assistant/ocremote/internal/terminal"
	"github.com/gervaso-assistant/ocremote/internal/testutil"
)

// renderDoctorOutput reproduces the doctor command's output formatting logic
// with the given results, so golden tests can run without real checks.
func renderDoctorOutput(results []doctor.Result) string {
	var buf bytes.Buffer

	term := &terminal.Info{IsTTY: false, NoColor: true, Width: 80, Height: 24}
	out := output.NewWriter(&buf, &buf, term)

	out.Println("ocremote Doctor")
	out.Println("===============")
	out.Println()

	doctor.RenderResults(results, out.Print, out.Success, out.Warning, out.Failure, out.Muted)

	passed, failed, warnings := doctor.Summary(results)

	out.Println()
	out.Print("%d passed", passed)

	if failed > 0 {
		out.Print(", %d failed", failed)
	}

	if warnings > 0 {
		out.Print(", %d warning(s)", warnings)
	}

	out.Println()

	return buf.String()
}

func TestDoctorOutput_AllPass_Golden(t *testing.T) {
	results := []doctor.Result{
		{Name: "Configuration", Status: doctor.StatusPass, Message: "127.0.0.1:4096"},
		{Name: "Credentials", Status: doctor.StatusPass, Message: "Found (via keyring)"},
		{Name: "Server", Status: doctor.StatusPass, Message: "http://127.0.0.1:4096, v0.5.2 (42ms)"},
		{Name: "State Directory", Status: doctor.StatusPass, Message: "Writable"},
		{Name: "CLI Version", Status: doctor.StatusPass, Message: "v1.2.0 (latest)"},
	}

	got := renderDoctorOutput(results)
	testutil.AssertGolden(t, got, "doctor_all_pass.golden")
}

func TestDoctorOutput_Mixed_Golden(t *testing.T) {
	results := []doctor.Result{
		{Name: "Configuration", Status: doctor.StatusPass, Message: "127.0.0.1:4096"},
		{Name: "Credentials", Status: doctor.StatusFail, Message: "No stored credentials", Detail: "Run 'ocremote login' to authenticate"},
		{Name: "Server", Status: doctor.StatusWarn, Message: "Reachable, v0.2.0 (below minimum 0.3.0)", Detail: "Update the server to 0.3.0 or newer"},
		{Name: "CLI Version", Status: doctor.StatusWarn, Message: "v1.0.0 (v1.2.0 available)", Detail: "Run 'ocremote update' to update"},
	}

	got := renderDoctorOutput(results)
	testutil.AssertGolden(t, got, "doctor_mixed.golden")
}

func TestDoctorOutput_AllFail_Golden(t *testing.T) {
	results := []doctor.Result{
		{Name: "Configuration", Status: doctor.StatusFail, Message: "No server configured", Detail: "Run 'ocremote init' to configure a server"},
		{Name: "Credentials", Status: doctor.StatusFail, Message: "No stored credentials", Detail: "Run 'ocremote login' to authenticate"},
		{Name: "Server", Status: doctor.StatusFail, Message: "http://127.0.0.1:4096", Detail: "connection refused"},
		{Name: "CLI Version", Status: doctor.StatusWarn, Message: "Development build (version check skipped)"},
	}

	got := renderDoctorOutput(results)
	testutil.AssertGolden(t, got, "doctor_all_fail.golden")
}
