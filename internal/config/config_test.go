package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS != "windows" && runtime.GOOS != "darwin" {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	}

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.Contains(configDir, "wot-discover") {
		t.Errorf("GetConfigDir() = %v, should contain 'wot-discover'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("macOS config dir should contain '.config', got: %v", configDir)
		}
	default:
		if configDir != filepath.Join("/tmp/xdg-test", "wot-discover") {
			t.Errorf("GetConfigDir() = %v, want XDG_CONFIG_HOME based path", configDir)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %v, want %v", cfg.Version, CurrentVersion)
	}
	if cfg.Discovery.Timeout != 10 {
		t.Errorf("Discovery.Timeout = %v, want 10", cfg.Discovery.Timeout)
	}
	if cfg.Discovery.IPTraffic != IPTrafficBoth {
		t.Errorf("Discovery.IPTraffic = %v, want both", cfg.Discovery.IPTraffic)
	}
	if cfg.Output.Format != FormatText {
		t.Errorf("Output.Format = %v, want text", cfg.Output.Format)
	}
	if cfg.Log.Level != "" {
		t.Errorf("Log.Level = %q, want empty (silent)", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Discovery.Timeout != 10 {
		t.Errorf("Discovery.Timeout = %v, want default 10", cfg.Discovery.Timeout)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := NewConfig()
	cfg.Discovery.Timeout = 30
	cfg.Discovery.HTTPTimeout = 5
	cfg.Discovery.IPTraffic = IPTrafficV4
	cfg.Discovery.Interfaces = []string{"eth0"}
	cfg.Output.Format = FormatJSON
	cfg.Output.Pretty = true
	cfg.Log.Level = "debug"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}
	if !strings.HasPrefix(string(data), "# wot-discover configuration file") {
		t.Error("saved config should start with the header comment")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should not remain after Save()")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Discovery.Timeout != 30 || loaded.Discovery.HTTPTimeout != 5 {
		t.Errorf("timeouts = %d/%d, want 30/5", loaded.Discovery.Timeout, loaded.Discovery.HTTPTimeout)
	}
	if loaded.Discovery.IPTraffic != IPTrafficV4 {
		t.Errorf("IPTraffic = %v, want v4", loaded.Discovery.IPTraffic)
	}
	if len(loaded.Discovery.Interfaces) != 1 || loaded.Discovery.Interfaces[0] != "eth0" {
		t.Errorf("Interfaces = %v, want [eth0]", loaded.Discovery.Interfaces)
	}
	if loaded.Output.Format != FormatJSON || !loaded.Output.Pretty {
		t.Errorf("Output = %+v, want json/pretty", loaded.Output)
	}
	if loaded.Log.Level != "debug" {
		t.Errorf("Log.Level = %v, want debug", loaded.Log.Level)
	}
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: 1\noutput:\n  pretty: true\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Discovery == nil || cfg.Discovery.Timeout != 10 {
		t.Errorf("Discovery = %+v, want defaults", cfg.Discovery)
	}
	if cfg.Output.Format != FormatText || !cfg.Output.Pretty {
		t.Errorf("Output = %+v, want text format with pretty kept", cfg.Output)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "version: [", "failed to parse"},
		{"wrong version", "version: 2\n", "unsupported config version"},
		{"negative timeout", "version: 1\ndiscovery:\n  timeout: -1\n", "discovery.timeout"},
		{"bad ip traffic", "version: 1\ndiscovery:\n  ip_traffic: v5\n", "ip_traffic"},
		{"bad format", "version: 1\noutput:\n  format: xml\n", "output.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want to contain %q", err, tt.wantErr)
			}
		})
	}
}
