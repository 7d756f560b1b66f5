package models

// Period is a fixed rental-duration bucket used to key pricing.
type Period string

const (
	PeriodWeek     Period = "Week"
	PeriodBiweek   Period = "Biweek"
	PeriodMonth    Period = "Month"
	PeriodSemester Period = "Semester"
	PeriodYear     Period = "Year"
)

var periodDays = map[Period]int{
	PeriodWeek:     7,
	PeriodBiweek:   15,
	PeriodMonth:    30,
	PeriodSemester: 180,
	PeriodYear:     365,
}

var periodByDuration = map[int]Period{
	7:   PeriodWeek,
	15:  PeriodBiweek,
	30:  PeriodMonth,
	180: PeriodSemester,
	365: PeriodYear,
}

var periodLabels = map[Period]string{
	PeriodWeek:     "Weekly",
	PeriodBiweek:   "Biweekly",
	PeriodMonth:    "Monthly",
	PeriodSemester: "Per semester",
	PeriodYear:     "Yearly",
}

// PeriodFromDuration maps a stay duration in days onto its pricing
// period. Only the exact values 7, 15, 30, 180 and 365 are recognized.
func PeriodFromDuration(days int) (Period, bool) {
	p, ok := periodByDuration[days]
	return p, ok
}

// Days returns the stay length the period stands for.
func (p Period) Days() int {
	return periodDays[p]
}

// Label returns the human-readable form used in API responses. Unknown
// periods fall back to the raw value.
func (p Period) Label() string {
	if l, ok := periodLabels[p]; ok {
		return l
	}
	return string(p)
}

// Valid reports whether p is one of the closed set of periods.
func (p Period) Valid() bool {
	_, ok := periodDays[p]
	return ok
}
