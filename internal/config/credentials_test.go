package config

import "testing"

func TestSettings_Credentials(t *testing.T) {
	s := &Settings{
		StandardUser:     "standard_user",
		StandardPassword: "secret_sauce",
		LockedUser:       "locked_out_user",
		ProblemUser:      "problem_user",
		PerformanceUser:  "performance_glitch_user",
	}

	tests := []struct {
		name     string
		category Category
		want     Credentials
	}{
		{name: "standard", category: CategoryStandard, want: Credentials{"standard_user", "secret_sauce"}},
		{name: "locked", category: CategoryLocked, want: Credentials{"locked_out_user", "secret_sauce"}},
		{name: "problem", category: CategoryProblem, want: Credentials{"problem_user", "secret_sauce"}},
		{name: "performance", category: CategoryPerformance, want: Credentials{"performance_glitch_user", "secret_sauce"}},
		{name: "unknown falls back to standard", category: Category("admin"), want: Credentials{"standard_user", "secret_sauce"}},
		{name: "empty falls back to standard", category: Category(""), want: Credentials{"standard_user", "secret_sauce"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Credentials(tt.category); got != tt.want {
				t.Errorf("Credentials(%q) = %+v, want %+v", tt.category, got, tt.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"standard", CategoryStandard},
		{"LOCKED", CategoryLocked},
		{" problem ", CategoryProblem},
		{"performance", CategoryPerformance},
		{"visual", CategoryStandard},
		{"", CategoryStandard},
	}

	for _, tt := range tests {
		if got := ParseCategory(tt.in); got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
