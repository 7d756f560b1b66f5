package models

import "testing"

func TestPeriodFromDuration_KnownDurations(t *testing.T) {
	cases := map[int]Period{
		7:   PeriodWeek,
		15:  PeriodBiweek,
		30:  PeriodMonth,
		180: PeriodSemester,
		365: PeriodYear,
	}
	for days, want := range cases {
		got, ok := PeriodFromDuration(days)
		if !ok {
			t.Errorf("Expected %d days to resolve, got no match", days)
			continue
		}
		if got != want {
			t.Errorf("Expected %d days to map to %s, got %s", days, want, got)
		}
	}
}

func TestPeriodFromDuration_UnknownDurations(t *testing.T) {
	for _, days := range []int{0, -7, 1, 14, 16, 31, 90, 364, 366} {
		if p, ok := PeriodFromDuration(days); ok {
			t.Errorf("Expected %d days to be rejected, got %s", days, p)
		}
	}
}

func TestPeriod_Days(t *testing.T) {
	if got := PeriodBiweek.Days(); got != 15 {
		t.Errorf("Expected 15 days for Biweek, got %d", got)
	}
	if got := PeriodYear.Days(); got != 365 {
		t.Errorf("Expected 365 days for Year, got %d", got)
	}
}

func TestPeriod_Label(t *testing.T) {
	if got := PeriodSemester.Label(); got != "Per semester" {
		t.Errorf("Expected 'Per semester', got %q", got)
	}
	if got := Period("Decade").Label(); got != "Decade" {
		t.Errorf("Expected unknown period label to fall back to raw value, got %q", got)
	}
}

func TestPeriod_Valid(t *testing.T) {
	if !PeriodWeek.Valid() {
		t.Error("Expected Week to be valid")
	}
	if Period("Fortnight").Valid() {
		t.Error("Expected Fortnight to be invalid")
	}
}

func TestParseGender(t *testing.T) {
	cases := []struct {
		in   string
		want Gender
		ok   bool
	}{
		{"", "", true},
		{"male", GenderMale, true},
		{"MALE", GenderMale, true},
		{"female", GenderFemale, true},
		{"FEMALE", GenderFemale, true},
		{"other", "", false},
		{"Male", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseGender(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseGender(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseRole(t *testing.T) {
	if _, ok := ParseRole("CLIENT"); !ok {
		t.Error("Expected CLIENT to parse")
	}
	if _, ok := ParseRole("MANAGER"); !ok {
		t.Error("Expected MANAGER to parse")
	}
	if _, ok := ParseRole("ADMIN"); ok {
		t.Error("Expected ADMIN to be rejected")
	}
	if _, ok := ParseRole(""); ok {
		t.Error("Expected empty role to be rejected")
	}
}
