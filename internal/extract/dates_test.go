package extract

import (
	"testing"
	"time"
)

// Фиксированное "сегодня" для детерминированных проверок подстановки года
var fixedNow = time.Date(2023, time.May, 15, 12, 0, 0, 0, time.UTC)

func TestResolveDateAt(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   time.Time
		wantOk bool
	}{
		{
			name:   "day and month name",
			text:   "22 мая",
			want:   time.Date(2023, time.May, 22, 0, 0, 0, 0, time.UTC),
			wantOk: true,
		},
		{
			name:   "day month year",
			text:   "22 мая 2023",
			want:   time.Date(2023, time.May, 22, 0, 0, 0, 0, time.UTC),
			wantOk: true,
		},
		{
			name:   "hyphen separated",
			text:   "22-мая-2023",
			want:   time.Date(2023, time.May, 22, 0, 0, 0, 0, time.UTC),
			wantOk: true,
		},
		{
			name:   "genitive month form",
			text:   "1 сентября",
			want:   time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC),
			wantOk: true,
		},
		{
			name:   "abbreviated month",
			text:   "3 сен 2024",
			want:   time.Date(2024, time.September, 3, 0, 0, 0, 0, time.UTC),
			wantOk: true,
		},
		{
			name:   "two digit year expands",
			text:   "22 мая 23",
			want:   time.Date(2023, time.May, 22, 0, 0, 0, 0, time.UTC),
			wantOk: true,
		},
		{
			name:   "past month rolls to next year",
			text:   "10 января",
			want:   time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
			wantOk: true,
		},
		{
			name:   "current month stays in current year",
			text:   "30 мая",
			want:   time.Date(2023, time.May, 30, 0, 0, 0, 0, time.UTC),
			wantOk: true,
		},
		{
			name:   "weekday prefix",
			text:   "пятница, 22 мая",
			want:   time.Date(2023, time.May, 22, 0, 0, 0, 0, time.UTC),
			wantOk: true,
		},
		{
			name:   "weekday prefix uppercase",
			text:   "Понедельник 22 мая 2023",
			want:   time.Date(2023, time.May, 22, 0, 0, 0, 0, time.UTC),
			wantOk: true,
		},
		{
			name:   "numeric dotted",
			text:   "22.05.2023",
			want:   time.Date(2023, time.May, 22, 0, 0, 0, 0, time.UTC),
			wantOk: true,
		},
		{
			name:   "iso format",
			text:   "2023-05-22",
			want:   time.Date(2023, time.May, 22, 0, 0, 0, 0, time.UTC),
			wantOk: true,
		},
		{
			name:   "slash format",
			text:   "22/05/2023",
			want:   time.Date(2023, time.May, 22, 0, 0, 0, 0, time.UTC),
			wantOk: true,
		},
		{
			name:   "surrounding punctuation stripped",
			text:   "«22 мая 2023»",
			want:   time.Date(2023, time.May, 22, 0, 0, 0, 0, time.UTC),
			wantOk: true,
		},
		{
			name:   "heading with schedule text is not a date",
			text:   "Расписание занятий",
			wantOk: false,
		},
		{
			name:   "day out of range",
			text:   "32 мая",
			wantOk: false,
		},
		{
			name:   "february 30 rejected",
			text:   "30 февраля 2023",
			wantOk: false,
		},
		{
			name:   "empty string",
			text:   "",
			wantOk: false,
		},
		{
			name:   "whitespace only",
			text:   "   ",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolveDateAt(tt.text, fixedNow)
			if ok != tt.wantOk {
				t.Fatalf("resolveDateAt(%q) ok = %v, want %v", tt.text, ok, tt.wantOk)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("resolveDateAt(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// TestResolveDateAt_ExplicitYearNoRollover проверяет, что явный год не
// переносится вперед даже для прошедшего месяца
func TestResolveDateAt_ExplicitYearNoRollover(t *testing.T) {
	got, ok := resolveDateAt("10 января 2023", fixedNow)
	if !ok {
		t.Fatal("expected date to resolve")
	}
	if got.Year() != 2023 {
		t.Errorf("year = %d, want 2023", got.Year())
	}
}

func TestMatchMonthStem(t *testing.T) {
	tests := []struct {
		token string
		want  time.Month
	}{
		{"января", time.January},
		{"март", time.March},
		{"марта", time.March},
		{"мая", time.May},
		{"май", time.May},
		{"сентября", time.September},
		{"сент.", time.September},
		{"ноября", time.November},
		{"декабря", time.December},
		{"лорем", 0},
	}

	for _, tt := range tests {
		if got := matchMonthStem(tt.token); got != tt.want {
			t.Errorf("matchMonthStem(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}
