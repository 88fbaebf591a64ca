package cli

import (
	"testing"
	"time"

	"github.com/atomicstack/widget-remote/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		Server: config.Server{
			Listen:         "127.0.0.1:9000",
			RedrawInterval: 50 * time.Millisecond,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		File: "config.yaml",
		Flags: map[string]string{
			"server.listen": "127.0.0.1:9000",
			"logging.trace": "true",
		},
		Args: []string{"widget-remote serve", "--listen", "127.0.0.1:9000"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["server.listen"] != "127.0.0.1:9000" {
		t.Fatalf("expected listen flag, got %v", flagsValue["server.listen"])
	}
	if flagsValue["logging.trace"] != "true" {
		t.Fatalf("expected trace flag, got %v", flagsValue["logging.trace"])
	}
	if payload["configFile"] != "config.yaml" {
		t.Fatalf("expected config file in payload, got %v", payload["configFile"])
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.Server != cfg.Server {
		t.Fatalf("expected server config %#v, got %#v", cfg.Server, cfgValue.Server)
	}
}
