package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STOCKMAP_RENDERER", "")
	t.Setenv("PORT", "")
	c := Load()
	if c.Renderer != RendererEbiten {
		t.Errorf("Renderer = %q, want %q", c.Renderer, RendererEbiten)
	}
	if c.Port != "3000" {
		t.Errorf("Port = %q, want 3000", c.Port)
	}
	if c.PulseInterval != 16*time.Millisecond {
		t.Errorf("PulseInterval = %v, want 16ms", c.PulseInterval)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STOCKMAP_RENDERER", RendererTUI)
	t.Setenv("STOCKMAP_WIDTH", "640")
	t.Setenv("STOCKMAP_HEIGHT", "not-a-number")
	t.Setenv("STOCKMAP_SMOOTH_CAMERA", "false")

	c := Load()
	if c.Renderer != RendererTUI || c.WindowWidth != 640 {
		t.Errorf("Load() = %+v", c)
	}
	if c.WindowHeight != 800 {
		t.Errorf("WindowHeight = %d, want default 800 for bad value", c.WindowHeight)
	}
	if c.SmoothCamera {
		t.Error("SmoothCamera = true, want false")
	}
}

func TestCurrentAndSet(t *testing.T) {
	t.Cleanup(func() { Set(nil) })
	Set(&Config{Port: "9999"})
	if Current().Port != "9999" {
		t.Errorf("Current().Port = %q, want 9999", Current().Port)
	}
	Set(nil)
	if Current() == nil {
		t.Error("Current() = nil after reset, want freshly loaded config")
	}
}
