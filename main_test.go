package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sun-wendy/6.4400-graphics/pkg/geometry"
	"github.com/sun-wendy/6.4400-graphics/pkg/integrator"
	"github.com/sun-wendy/6.4400-graphics/pkg/simulation"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"point light plane", "point-light-plane", false},
		{"mirror scene", "mirror", false},
		{"triangle scene", "triangle", false},

		// JSON scenes (by id)
		{"shadows by id", "json:shadows", false},
		{"triangle fan by id", "json:triangle-fan", false},

		// JSON scenes (by path)
		{"direct JSON path", "scenes/shadows.json", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid JSON path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.Settings.Width <= 0 || s.Settings.Height <= 0 {
				t.Errorf("Scene size should be positive, got %dx%d", s.Settings.Width, s.Settings.Height)
			}
			if len(s.TracingComponents()) == 0 {
				t.Error("Scene should contain geometry")
			}
			if len(s.LightComponents()) == 0 {
				t.Error("Scene should contain lights")
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("GRAPHICS_TEST_VALUE", "set")
	if got := getEnv("GRAPHICS_TEST_VALUE", "fallback"); got != "set" {
		t.Errorf("Expected 'set', got %q", got)
	}
	if got := getEnv("GRAPHICS_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("Expected 'fallback', got %q", got)
	}
}

func TestRunRender(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OUTPUT_DIR", dir)

	err := runRender(context.Background(), []string{"-scene", "json:triangle-fan", "-out", "fan.png", "-workers", "2"})
	if err != nil {
		t.Fatalf("runRender: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "fan.png")); err != nil {
		t.Errorf("Expected rendered file: %v", err)
	}
}

func TestRunRender_UnknownScene(t *testing.T) {
	t.Setenv("OUTPUT_DIR", t.TempDir())
	if err := runRender(context.Background(), []string{"-scene", "cornell"}); err == nil {
		t.Error("Expected error for an unknown scene")
	}
}

func TestRunSimulate_Frames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames", "pendulum.json")

	err := runSimulate(context.Background(), []string{
		"-system", "pendulum", "-integrator", "trapezoidal",
		"-duration", "0.5", "-fps", "10", "-frames", path,
	})
	if err != nil {
		t.Fatalf("runSimulate: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var frames []simulation.Frame
	if err := json.Unmarshal(data, &frames); err != nil {
		t.Fatalf("Invalid frames file: %v", err)
	}
	// Initial state plus one frame per 0.1s
	if len(frames) != 6 {
		t.Fatalf("Expected 6 frames, got %d", len(frames))
	}
	if frames[5].Positions[0] != frames[0].Positions[0] {
		t.Error("Pendulum anchor should not move")
	}
}

func TestRunSimulate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unsupported integrator", []string{"-integrator", "verlet"}},
		{"unknown system", []string{"-system", "fluid"}},
		{"zero fps", []string{"-fps", "0"}},
		{"bad flag", []string{"-bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runSimulate(context.Background(), tt.args); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestSimulationGeometry(t *testing.T) {
	cloth, err := simulation.New(simulation.Config{System: simulation.SystemCloth, Integrator: integrator.TypeEuler, StepSize: 0.001, ClothSize: 4}, nil)
	if err != nil {
		t.Fatal(err)
	}
	h, err := simulationGeometry(cloth)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := h.(*geometry.Mesh); !ok {
		t.Errorf("Expected a mesh for cloth, got %T", h)
	}

	pendulum, err := simulation.New(simulation.Config{System: simulation.SystemPendulum, Integrator: integrator.TypeRK4, StepSize: 0.001}, nil)
	if err != nil {
		t.Fatal(err)
	}
	h, err = simulationGeometry(pendulum)
	if err != nil {
		t.Fatal(err)
	}
	group, ok := h.(*geometry.Group)
	if !ok || len(group.Members) != 4 {
		t.Errorf("Expected a group of 4 spheres, got %T", h)
	}
}
