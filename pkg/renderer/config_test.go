package renderer

import "testing"

func TestParseLightingMode(t *testing.T) {
	tests := []struct {
		input    string
		expected LightingMode
		wantErr  bool
	}{
		{"observed-area", ObservedArea, false},
		{"ObservedArea", ObservedArea, false},
		{"area", ObservedArea, false},
		{"radiance", Radiance, false},
		{"BRDF", BRDF, false},
		{"combined", Combined, false},
		{"", Combined, false},
		{"phong", Combined, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseLightingMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLightingMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if mode != tt.expected {
				t.Errorf("ParseLightingMode(%q) = %v, want %v", tt.input, mode, tt.expected)
			}
		})
	}
}

func TestLightingMode_StringRoundTrip(t *testing.T) {
	for mode := ObservedArea; mode <= Combined; mode++ {
		parsed, err := ParseLightingMode(mode.String())
		if err != nil || parsed != mode {
			t.Errorf("Mode %d: String %q parsed to %v (err %v)", int(mode), mode.String(), parsed, err)
		}
	}
	if s := LightingMode(9).String(); s != "LightingMode(9)" {
		t.Errorf("Unexpected name for an unknown mode: %q", s)
	}
}

func TestRenderConfig_Toggles(t *testing.T) {
	config := DefaultRenderConfig()
	if config.LightingMode != Combined || !config.ShadowsEnabled {
		t.Fatalf("Unexpected defaults %+v", config)
	}
	if config.NumWorkers < 1 {
		t.Errorf("Expected at least one default worker, got %d", config.NumWorkers)
	}

	config.ToggleShadows()
	if config.ShadowsEnabled {
		t.Error("Expected shadows disabled after toggle")
	}
	config.ToggleShadows()
	if !config.ShadowsEnabled {
		t.Error("Expected shadows enabled after second toggle")
	}

	expected := []LightingMode{ObservedArea, Radiance, BRDF, Combined, ObservedArea}
	for i, want := range expected {
		config.CycleLightingMode()
		if config.LightingMode != want {
			t.Errorf("Cycle %d: expected %v, got %v", i, want, config.LightingMode)
		}
	}
}
