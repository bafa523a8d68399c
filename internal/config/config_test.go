package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mayara-radar/mayara/radar"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mayarad.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFillsDefaultPollInterval(t *testing.T) {
	path := writeConfig(t, `
radars:
  - brand: Navico
    serial: "12345"
    nic: eth0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PollIntervalMs != 100 {
		t.Fatalf("PollIntervalMs = %d, want 100", cfg.PollIntervalMs)
	}
}

func TestLoadRejectsMissingRadarFields(t *testing.T) {
	path := writeConfig(t, `
radars:
  - brand: Navico
    nic: eth0
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing serial")
	}
}

func TestLoadRejectsMQTTEnabledWithoutBroker(t *testing.T) {
	path := writeConfig(t, `
mqtt:
  enabled: true
radars:
  - brand: Furuno
    serial: "1"
    nic: eth0
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for mqtt.enabled without broker")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadParsesLoginPortsAndInstallSettings(t *testing.T) {
	path := writeConfig(t, `
radars:
  - brand: Furuno
    serial: "77"
    nic: eth1
    login_ports: [10000, 10010]
    install_settings:
      gain: 50
      range: 1500
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	r := cfg.Radars[0]
	if len(r.LoginPorts) != 2 || r.LoginPorts[0] != 10000 {
		t.Fatalf("LoginPorts = %v", r.LoginPorts)
	}
	if r.InstallSettings["gain"] != 50 || r.InstallSettings["range"] != 1500 {
		t.Fatalf("InstallSettings = %v", r.InstallSettings)
	}
}

// fakeController is a minimal radar.Controller for exercising ReplaySettings
// without depending on any brand package.
type fakeController struct {
	rejectID string
	applied  map[string]float64
}

func (f *fakeController) Identity() radar.RadarIdentity        { return radar.RadarIdentity{} }
func (f *fakeController) Poll(radar.IOProvider) []radar.Event   { return nil }
func (f *fakeController) State() radar.ControllerState          { return radar.Connected }
func (f *fakeController) IsConnected() bool                     { return true }
func (f *fakeController) Snapshot() radar.StateSnapshot          { return radar.StateSnapshot{} }
func (f *fakeController) Capabilities() radar.CapabilityManifest { return radar.CapabilityManifest{} }
func (f *fakeController) Shutdown(radar.IOProvider)              {}

func (f *fakeController) Set(_ radar.IOProvider, controlID string, value radar.ControlValue) error {
	if controlID == f.rejectID {
		return radar.NewUnknownControl(controlID)
	}
	if f.applied == nil {
		f.applied = make(map[string]float64)
	}
	f.applied[controlID] = value.Value
	return nil
}

func TestReplaySettingsAppliesEveryValue(t *testing.T) {
	ctrl := &fakeController{}
	r := RadarConfig{InstallSettings: map[string]float64{"gain": 50, "range": 1500}}

	if errs := ReplaySettings(nil, ctrl, r); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if ctrl.applied["gain"] != 50 || ctrl.applied["range"] != 1500 {
		t.Fatalf("applied = %v", ctrl.applied)
	}
}

func TestReplaySettingsCollectsSetErrors(t *testing.T) {
	ctrl := &fakeController{rejectID: "gain"}
	r := RadarConfig{InstallSettings: map[string]float64{"gain": 50}}

	errs := ReplaySettings(nil, ctrl, r)
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want 1 entry", errs)
	}
}
