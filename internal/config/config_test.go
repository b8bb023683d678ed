package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"

	"joeRoute/internal/dex"
	"joeRoute/internal/model"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	d, err := cfg.Deployment()
	if err != nil {
		t.Fatalf("deployment: %v", err)
	}
	if d != dex.TraderJoeAvalanche {
		t.Fatalf("default deployment mismatch: %+v", d)
	}
	if cfg.ReserveTTL != 15*time.Second || cfg.LogLevel != "info" {
		t.Fatalf("defaults mismatch: %+v", cfg)
	}
}

func TestLoadFlagsAndEnv(t *testing.T) {
	t.Setenv("JOE_CHAIN_ID", "43113")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringSlice("path", nil, "")
	flags.String("rpc", "", "")
	if err := flags.Parse([]string{"--path", "0x6e84a6216ea6dacc71ee8e6b0a5b7322eebc0fdd, 0xb31f66aa3c1e785363f0875a1b74e27b85fd66c7", "--rpc", "ws://localhost:8546"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ChainID != 43113 {
		t.Fatalf("env chain id not applied: %d", cfg.ChainID)
	}
	if cfg.RPCURL != "ws://localhost:8546" {
		t.Fatalf("rpc flag not applied: %s", cfg.RPCURL)
	}
	if len(cfg.Path) != 2 || cfg.Path[1] != "0xb31f66aa3c1e785363f0875a1b74e27b85fd66c7" {
		t.Fatalf("path mismatch: %v", cfg.Path)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "joe.yaml")
	content := "chain-id: 43113\nfactory: \"0x7eeccb3028870540eec3d88c2259506f2d34fee0\"\nreserve-ttl: 1m\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	d, err := cfg.Deployment()
	if err != nil {
		t.Fatalf("deployment: %v", err)
	}
	if d.ChainID != 43113 || d.Factory != common.HexToAddress("0x7eeccb3028870540eec3d88c2259506f2d34fee0") {
		t.Fatalf("deployment mismatch: %+v", d)
	}
	if cfg.ReserveTTL != time.Minute {
		t.Fatalf("reserve ttl mismatch: %s", cfg.ReserveTTL)
	}
}

func TestDeploymentRejectsBadConstants(t *testing.T) {
	cfg := Config{ChainID: DefaultChainID, Factory: "0x1234", InitCodeHash: DefaultInitCodeHash}
	if _, err := cfg.Deployment(); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("expected invalid input for factory, got %v", err)
	}
	cfg = Config{ChainID: DefaultChainID, Factory: DefaultFactory, InitCodeHash: "0xabcd"}
	if _, err := cfg.Deployment(); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("expected invalid input for init code hash, got %v", err)
	}
	cfg = Config{Factory: DefaultFactory, InitCodeHash: DefaultInitCodeHash}
	if _, err := cfg.Deployment(); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("expected invalid input for zero chain id, got %v", err)
	}
}

func TestParseAddresses(t *testing.T) {
	got, err := ParseAddresses([]string{" 0x6e84a6216ea6dacc71ee8e6b0a5b7322eebc0fdd ", "", "0xb31f66aa3c1e785363f0875a1b74e27b85fd66c7"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two addresses, got %d", len(got))
	}
	if _, err := ParseAddresses([]string{"not-an-address"}); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
