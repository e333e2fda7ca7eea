package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"

	"lifeboard/src/config"
)

func TestOverlayKeepsOptionsNotGiven(t *testing.T) {
	file := config.Default()
	file.Width, file.Height, file.Chance, file.Template = 50, 40, 3, "glider"

	cli := config.Default()
	cli.Width, cli.Chance, cli.Interval = 0, 0, time.Second

	cfg := overlay(file, cli, map[string]bool{"width": true, "interval": true})
	if cfg.Width != 0 {
		t.Fatalf("width %d, expected the given 0", cfg.Width)
	}
	if cfg.Interval != time.Second {
		t.Fatalf("interval %v, expected the given 1s", cfg.Interval)
	}
	if cfg.Height != 40 || cfg.Chance != 3 || cfg.Template != "glider" {
		t.Fatalf("options not given on the command line changed: %+v", cfg)
	}
}

func TestInitOptionsRejectsInvalidValues(t *testing.T) {
	cases := map[string][]string{
		"zero width":      {"-x", "0"},
		"zero height":     {"--height", "0"},
		"zero width pair": {"--width=0"},
		"zero chance":     {"--chance", "0"},
	}
	for name, args := range cases {
		if _, _, err := initOptions(args); errors.Cause(err) != config.ErrInvalid {
			t.Fatalf("%s: initOptions(%v) = %v, expected ErrInvalid", name, args, err)
		}
	}
}

func TestInitOptionsDefaults(t *testing.T) {
	eo, cfg, err := initOptions(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != config.Default() {
		t.Fatalf("config %+v, expected defaults", cfg)
	}
	if eo.view != viewConsole || eo.scale != defScale || eo.random {
		t.Fatalf("env options %+v", eo)
	}
}

func TestInitOptionsFlagsOverConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.toml")
	doc := "width = 50\nheight = 30\ntemplate = \"glider\"\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	eo, cfg, err := initOptions([]string{"-c", path, "-y", "20", "--seed", "7", "-v", "headless", "-r"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 50 || cfg.Height != 20 || cfg.Template != "glider" || cfg.Seed != 7 {
		t.Fatalf("config %+v, expected width and template from the file, height and seed from the flags", cfg)
	}
	if eo.view != viewHeadless || !eo.random {
		t.Fatalf("env options %+v", eo)
	}
}

func TestInitOptionsUnknownView(t *testing.T) {
	if _, _, err := initOptions([]string{"-v", "hologram"}); err == nil {
		t.Fatal("unknown view must be rejected")
	}
}
