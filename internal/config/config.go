// Package config loads the host's YAML configuration document, following
// the teacher's own config.go convention (a single nested struct with
// yaml.v3 tags, loaded once at startup and validated before use).
//
// Mayara's core never persists installation settings itself;
// HostConfig.Radars[].InstallSettings is the host-owned record
// of the last-known values, replayed through ordinary Controller.Set calls
// by ReplaySettings once a radar reaches ControllerState Connected.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mayara-radar/mayara/radar"
)

// HostConfig is the top-level document cmd/mayarad loads.
type HostConfig struct {
	// PollIntervalMs is how often the host calls Poll on every controller
	// and the locator. An idle rate of at least 100 Hz (<=10ms) keeps the
	// Furuno keep-alive timer accurate.
	PollIntervalMs int              `yaml:"poll_interval_ms"`
	Prometheus     PrometheusConfig `yaml:"prometheus"`
	MQTT           MQTTConfig       `yaml:"mqtt"`
	Radars         []RadarConfig    `yaml:"radars"`
}

// PrometheusConfig controls whether cmd/mayarad exposes radar/metrics over
// HTTP via promhttp.Handler.
type PrometheusConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"` // e.g. ":9101"
}

// MQTTConfig controls whether cmd/mayarad wires a radar/metrics.MQTTEventSink.
type MQTTConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
}

// RadarConfig binds one physical radar to a NIC. LoginPorts is parsed but
// not applied: cmd/mayarad does not pass it on, and the Furuno controller
// always cycles radar/furuno/login.go's loginPortOrder. InstallSettings is
// the host's persisted snapshot of the
// last-known control values for this radar, replayed via ReplaySettings.
type RadarConfig struct {
	Brand           string             `yaml:"brand"`
	Serial          string             `yaml:"serial"`
	NIC             string             `yaml:"nic"`
	LoginPorts      []int              `yaml:"login_ports,omitempty"`
	InstallSettings map[string]float64 `yaml:"install_settings,omitempty"`
}

// Load reads and parses the YAML document at path, then validates it.
func Load(path string) (*HostConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg HostConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.PollIntervalMs == 0 {
		cfg.PollIntervalMs = 100
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the document for the minimum shape cmd/mayarad needs to
// construct a Locator and the configured controllers.
func (c *HostConfig) Validate() error {
	if c.PollIntervalMs < 10 {
		return fmt.Errorf("poll_interval_ms must be at least 10 (<=100Hz poll rate)")
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return fmt.Errorf("mqtt.broker is required when mqtt.enabled is true")
	}
	if c.Prometheus.Enabled && c.Prometheus.Listen == "" {
		return fmt.Errorf("prometheus.listen is required when prometheus.enabled is true")
	}
	for i, r := range c.Radars {
		if r.Brand == "" {
			return fmt.Errorf("radars[%d].brand is required", i)
		}
		if r.Serial == "" {
			return fmt.Errorf("radars[%d].serial is required", i)
		}
		if r.NIC == "" {
			return fmt.Errorf("radars[%d].nic is required", i)
		}
	}
	return nil
}

// ReplaySettings applies r's persisted InstallSettings to ctrl via ordinary
// Set calls — the host-side mechanism used in place of any persistence
// inside the core. Set errors (e.g. a control the
// connected model doesn't support) are collected and returned rather than
// aborting the remaining replay.
func ReplaySettings(io radar.IOProvider, ctrl radar.Controller, r RadarConfig) []error {
	var errs []error
	for id, value := range r.InstallSettings {
		if err := ctrl.Set(io, id, radar.ControlValue{ID: id, Value: value}); err != nil {
			errs = append(errs, fmt.Errorf("replay %s: %w", id, err))
		}
	}
	return errs
}
