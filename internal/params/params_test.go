package params

import "testing"

func TestEffectiveUserAgent(t *testing.T) {
	tests := []struct {
		name  string
		agent string
		want  string
	}{
		{"configured value wins", "custom/1.0", "custom/1.0"},
		{"blank falls back", "", FallbackUserAgent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := AlertSettings{UserAgent: tt.agent}
			if got := s.EffectiveUserAgent(); got != tt.want {
				t.Errorf("EffectiveUserAgent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClampZoom(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 1},
		{1, 1},
		{7, 7},
		{12, 12},
		{13, 12},
		{-5, 1},
	}

	for _, tt := range tests {
		if got := ClampZoom(tt.in); got != tt.want {
			t.Errorf("ClampZoom(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClampInterval(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 30},
		{30, 30},
		{120, 120},
		{900, 900},
		{5000, 900},
	}

	for _, tt := range tests {
		if got := ClampInterval(tt.in); got != tt.want {
			t.Errorf("ClampInterval(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDefaults(t *testing.T) {
	snap := DefaultSnapshot()
	if snap.Lat != 49.7847 || snap.Lon != -94.9921 {
		t.Errorf("default location = %.4f,%.4f, want 49.7847,-94.9921", snap.Lat, snap.Lon)
	}
	if snap.Layer != LayerRadar {
		t.Errorf("default layer = %s, want %s", snap.Layer, LayerRadar)
	}

	alerts := DefaultAlertSettings()
	if alerts.Mode != ModePoint {
		t.Errorf("default mode = %s, want %s", alerts.Mode, ModePoint)
	}
	if alerts.IntervalSeconds != 120 {
		t.Errorf("default interval = %d, want 120", alerts.IntervalSeconds)
	}
	if alerts.UserAgent == "" {
		t.Error("default user agent must be non-empty")
	}
}
