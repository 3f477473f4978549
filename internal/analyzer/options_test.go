package analyzer

import "testing"

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"", StrategyScoped, false},
		{"scoped", StrategyScoped, false},
		{" Legacy ", StrategyLegacy, false},
		{"flat", StrategyScoped, true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseStrategy(%q) = %v, %v", tt.in, got, err)
		}
	}
	if StrategyLegacy.String() != "legacy" || Strategy(7).String() != "Strategy(7)" {
		t.Errorf("unexpected strategy names")
	}
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.Strategy != StrategyScoped || !o.Warnings || o.MaxDiagnostics != 0 {
		t.Fatalf("unexpected defaults %+v", o)
	}
	o.Strategy = StrategyLegacy
	if o.warningsEnabled() {
		t.Fatal("legacy never warns")
	}
}
