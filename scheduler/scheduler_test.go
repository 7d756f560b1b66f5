package scheduler

import "testing"

func TestParseRunAt(t *testing.T) {
	s := NewSweeper(nil, "")

	cases := []struct {
		in   string
		want string
	}{
		{"03:00", "0 3 * * *"},
		{"00:00", "0 0 * * *"},
		{"23:59", "59 23 * * *"},
		{"7:30", "30 7 * * *"},
		{"", "0 3 * * *"},
		{"25:00", "0 3 * * *"},
		{"12:60", "0 3 * * *"},
		{"noon", "0 3 * * *"},
		{"12-30", "0 3 * * *"},
	}
	for _, tc := range cases {
		if got := s.parseRunAt(tc.in); got != tc.want {
			t.Errorf("parseRunAt(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSweeper_StartStop(t *testing.T) {
	s := NewSweeper(nil, "03:00")

	if err := s.Start(); err != nil {
		t.Fatalf("Expected start to succeed, got %v", err)
	}
	if !s.isRunning {
		t.Error("Expected sweeper running after Start")
	}

	s.Stop()
	if s.isRunning {
		t.Error("Expected sweeper stopped after Stop")
	}

	// Stop again is a no-op
	s.Stop()
}
