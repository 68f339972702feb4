package models

import "testing"

func TestParseRiskLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    RiskLevel
		wantErr bool
	}{
		{"Low", RiskLow, false},
		{"medium", RiskMedium, false},
		{" HIGH ", RiskHigh, false},
		{"extreme", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRiskLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRiskLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseRiskLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRiskLevelRank(t *testing.T) {
	if !(RiskLow.Rank() < RiskMedium.Rank() && RiskMedium.Rank() < RiskHigh.Rank()) {
		t.Error("ranks should order Low < Medium < High")
	}
	if RiskLevel("Unknown").Valid() {
		t.Error("unknown level should not be valid")
	}
}

func TestUserQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*UserQuery)
		wantErr bool
	}{
		{"default", func(q *UserQuery) {}, false},
		{"lower bounds", func(q *UserQuery) { q.Temperature, q.Rainfall, q.Area = 10, 100, 1 }, false},
		{"upper bounds", func(q *UserQuery) { q.Temperature, q.Rainfall, q.Area = 45, 3000, 20 }, false},
		{"cold", func(q *UserQuery) { q.Temperature = 9.9 }, true},
		{"wet", func(q *UserQuery) { q.Rainfall = 3001 }, true},
		{"tiny farm", func(q *UserQuery) { q.Area = 0.5 }, true},
		{"no risk", func(q *UserQuery) { q.RiskPreference = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := DefaultQuery()
			tt.mutate(&q)
			err := q.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
