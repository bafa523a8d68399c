// Command mayarad is the reference host: it binds the locator, and a
// controller for every discovered radar listed in its config, to real
// sockets, replays each radar's saved installation settings whenever its
// controller reaches Connected, and fans out the resulting event stream to
// Prometheus and/or MQTT. It is deliberately thin — the core/host boundary
// is drawn so that a different host (e.g. a browser/WASM runtime driving
// radar.ioprovider.Mock instead) can reuse every package below main
// without change.
package main

import (
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mayara-radar/mayara/internal/config"
	"github.com/mayara-radar/mayara/radar"
	"github.com/mayara-radar/mayara/radar/ioprovider"
	"github.com/mayara-radar/mayara/radar/locator"
	"github.com/mayara-radar/mayara/radar/metrics"
	"github.com/mayara-radar/mayara/radar/modeldb"

	_ "github.com/mayara-radar/mayara/radar/furuno"
	_ "github.com/mayara-radar/mayara/radar/garmin"
	_ "github.com/mayara-radar/mayara/radar/navico"
	_ "github.com/mayara-radar/mayara/radar/raymarine"
)

func main() {
	configPath := flag.String("config", "mayarad.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("mayarad: %v", err)
	}

	io := ioprovider.NewReal()

	var sink *metrics.MQTTEventSink
	if cfg.MQTT.Enabled {
		sink, err = metrics.NewMQTTEventSink(cfg.MQTT.Broker, cfg.MQTT.ClientID)
		if err != nil {
			log.Fatalf("mayarad: mqtt: %v", err)
		}
		defer sink.Close()
	}

	var collector *metrics.Metrics
	if cfg.Prometheus.Enabled {
		reg := prometheus.NewRegistry()
		collector = metrics.New(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: cfg.Prometheus.Listen, Handler: mux}
		go func() {
			log.Printf("mayarad: prometheus listening on %s", cfg.Prometheus.Listen)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("mayarad: prometheus server error: %v", err)
			}
		}()
	}

	loc := locator.New(nicsFor(cfg))
	if err := loc.Start(io); err != nil {
		log.Fatalf("mayarad: locator start: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	h := &host{
		cfg:        cfg,
		io:         io,
		loc:        loc,
		collector:  collector,
		sink:       sink,
		byIdentity: make(map[string]radar.Controller),
	}

	ticker := time.NewTicker(time.Duration(cfg.PollIntervalMs) * time.Millisecond)
	defer ticker.Stop()

	log.Println("mayarad: started")
	for {
		select {
		case <-sigChan:
			log.Println("mayarad: shutting down")
			h.shutdown()
			return
		case <-ticker.C:
			h.pollOnce()
		}
	}
}

// host owns every controller mayarad has constructed, keyed by
// radar.RadarIdentity.Key(), and drains the locator plus each controller
// once per tick.
type host struct {
	cfg        *config.HostConfig
	io         radar.IOProvider
	loc        *locator.Locator
	collector  *metrics.Metrics
	sink       *metrics.MQTTEventSink
	byIdentity map[string]radar.Controller
}

func (h *host) pollOnce() {
	locatorEvents := h.loc.Poll(h.io)
	h.observe(locatorEvents)
	for _, ev := range locatorEvents {
		if found, ok := ev.(radar.RadarFoundEvent); ok {
			h.onRadarFound(found)
		}
	}

	for _, ctrl := range h.byIdentity {
		events := ctrl.Poll(h.io)
		h.observe(events)
		for _, ev := range events {
			sc, ok := ev.(radar.StateChangedEvent)
			if !ok || sc.State != radar.Connected {
				continue
			}
			if rc, ok := radarConfigFor(h.cfg, ctrl.Identity()); ok {
				for _, err := range config.ReplaySettings(h.io, ctrl, rc) {
					log.Printf("mayarad: %s: replay: %v", ctrl.Identity().Key(), err)
				}
			}
		}
	}
}

// onRadarFound constructs and registers a controller the first time a
// configured radar is discovered. Its persisted installation settings are
// replayed by pollOnce each time the controller reports Connected — the
// core never persists settings itself, only the host does.
func (h *host) onRadarFound(found radar.RadarFoundEvent) {
	key := found.Identity.Key()
	if _, exists := h.byIdentity[key]; exists {
		return
	}
	if _, ok := radarConfigFor(h.cfg, found.Identity); !ok {
		return
	}

	manifest := modeldb.BuildManifest(found.Identity)
	ctrl, err := radar.New(found.Identity, found.Endpoints, manifest)
	if err != nil {
		log.Printf("mayarad: %s: %v", key, err)
		return
	}
	h.byIdentity[key] = ctrl
	log.Printf("mayarad: %s: controller started (model=%s)", key, found.Identity.ModelKey)
}

func (h *host) observe(events []radar.Event) {
	if len(events) == 0 {
		return
	}
	if h.collector != nil {
		h.collector.ObserveAll(events)
	}
	if h.sink != nil {
		if err := h.sink.PublishAll(events); err != nil {
			log.Printf("mayarad: mqtt publish: %v", err)
		}
	}
}

func (h *host) shutdown() {
	for key, ctrl := range h.byIdentity {
		log.Printf("mayarad: %s: shutting down", key)
		ctrl.Shutdown(h.io)
	}
	h.loc.Shutdown(h.io)
}

func radarConfigFor(cfg *config.HostConfig, identity radar.RadarIdentity) (config.RadarConfig, bool) {
	for _, rc := range cfg.Radars {
		if radar.Brand(rc.Brand) == identity.Brand && rc.Serial == identity.Serial {
			return rc, true
		}
	}
	return config.RadarConfig{}, false
}

// nicsFor resolves every distinct interface name in cfg.Radars to the
// radar.Addr the locator binds its beacon listeners to.
func nicsFor(cfg *config.HostConfig) []radar.Addr {
	seen := make(map[string]bool)
	var out []radar.Addr
	for _, rc := range cfg.Radars {
		if seen[rc.NIC] {
			continue
		}
		seen[rc.NIC] = true
		addr, err := resolveNIC(rc.NIC)
		if err != nil {
			log.Printf("mayarad: nic %s: %v", rc.NIC, err)
			continue
		}
		out = append(out, addr)
	}
	return out
}

// resolveNIC looks up the first IPv4 address assigned to a named network
// interface, the address the locator needs to scope its multicast joins
// (radar/ioprovider.Real.UDPJoinMulticast does the matching lookup in
// reverse, from address back to interface).
func resolveNIC(name string) (radar.Addr, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return radar.Addr{}, err
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return radar.Addr{}, err
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		ip4 := ipNet.IP.To4()
		if ip4 == nil {
			continue
		}
		return radar.Addr{IP: ip4.String()}, nil
	}
	return radar.Addr{}, &net.AddrError{Err: "no IPv4 address", Addr: name}
}
