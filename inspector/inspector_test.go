package inspector

import (
	"testing"

	"github.com/pthm-cable/quadsoup/components"
	"github.com/pthm-cable/quadsoup/telemetry"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag    string
		widget Widget
		opts   map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar", WidgetBar, map[string]string{}},
		{"bar,max:200", WidgetBar, map[string]string{"max": "200"}},
		{"label,fmt:%.1fs", WidgetLabel, map[string]string{"fmt": "%.1fs"}},
		{"skip", WidgetSkip, map[string]string{}},
		{"bogus", WidgetAuto, map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			w, opts := ParseTag(tt.tag)
			if w != tt.widget {
				t.Errorf("widget = %v, want %v", w, tt.widget)
			}
			if len(opts) != len(tt.opts) {
				t.Fatalf("options = %v, want %v", opts, tt.opts)
			}
			for k, v := range tt.opts {
				if opts[k] != v {
					t.Errorf("options[%q] = %q, want %q", k, opts[k], v)
				}
			}
		})
	}
}

func TestExtractFields(t *testing.T) {
	en := &components.Energy{Value: 12.5, Max: 100, Age: 3, Alive: true}
	fields := ExtractFields(en)

	names := []string{"Value", "Max", "Age", "Alive"}
	if len(fields) != len(names) {
		t.Fatalf("got %d fields, want %d", len(fields), len(names))
	}
	for i, name := range names {
		if fields[i].Name != name {
			t.Errorf("fields[%d] = %s, want %s", i, fields[i].Name, name)
		}
	}
	if fields[3].Widget != WidgetBool {
		t.Errorf("Alive widget = %v, want bool", fields[3].Widget)
	}
	if got := FormatValue(fields[2].Value, fields[2].Options["fmt"]); got != "3.0s" {
		t.Errorf("Age formatted as %q", got)
	}

	if f := ExtractFields(&components.Species{Kind: components.KindGrazer}); len(f) != 0 {
		t.Errorf("skipped field extracted: %v", f)
	}
	if f := ExtractFields(42); f != nil {
		t.Errorf("non-struct extracted: %v", f)
	}
	var nilBody *components.Body
	if f := ExtractFields(nilBody); f != nil {
		t.Errorf("nil pointer extracted: %v", f)
	}
}

func TestGetMax(t *testing.T) {
	if got := GetMax(nil); got != 1 {
		t.Errorf("GetMax(nil) = %v", got)
	}
	if got := GetMax(map[string]string{"max": "250"}); got != 250 {
		t.Errorf("GetMax(250) = %v", got)
	}
	if got := GetMax(map[string]string{"max": "-3"}); got != 1 {
		t.Errorf("GetMax(-3) = %v", got)
	}
}

func TestHistoryRingBuffer(t *testing.T) {
	p := NewHistoryPanel(1280, 800)
	for i := range historySize + 5 {
		p.Update(telemetry.WindowStats{Grazers: i, IndexNodes: 2 * i})
	}

	if p.Len() != historySize {
		t.Fatalf("Len() = %d, want %d", p.Len(), historySize)
	}
	grazers := p.Series(seriesGrazers)
	if grazers[0] != 5 || grazers[len(grazers)-1] != historySize+4 {
		t.Errorf("grazers series spans %v..%v", grazers[0], grazers[len(grazers)-1])
	}
	nodes := p.Series(seriesNodes)
	for i := 1; i < len(nodes); i++ {
		if nodes[i] != nodes[i-1]+2 {
			t.Fatalf("nodes series out of order at %d: %v", i, nodes[i-1:i+1])
		}
	}
}
