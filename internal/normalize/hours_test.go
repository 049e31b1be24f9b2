package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOperatingHours(t *testing.T) {
	tests := []struct {
		name  string
		input string
		open  string
		close string
	}{
		{"plain range", "10:00-18:00", "10:00", "18:00"},
		{"tilde range", "10:00 ~ 18:00", "10:00", "18:00"},
		{"labelled with footnote", "AM 10:30 ~ PM 18:30(연중무휴)", "10:30", "18:30"},
		{"labelled 24h digits kept verbatim", "AM 10:00 ~ PM 19:00", "10:00", "19:00"},
		{"en-dash with footnote", "10:00 – 18:00(월요일 휴관)", "10:00", "18:00"},
		{"single time", "10:00 입장", "10:00", ""},
		{"one-digit hour padded", "9:30 ~ 18:00", "09:30", "18:00"},
		{"entry cutoff footnote", "10:00 ~ 18:00 (입장마감 19:00)", "10:00", "18:00"},
		{"empty", "", "", ""},
		{"whitespace", "   ", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ParseOperatingHours(tt.input)
			assert.Equal(t, tt.open, r.Open)
			assert.Equal(t, tt.close, r.Close)
		})
	}
}

func TestParseOperatingHours_RawFallback(t *testing.T) {
	// No clock token at all: pass the split halves through untouched so
	// an exotic format is preserved rather than discarded.
	r := ParseOperatingHours("오전 열시 ~ 오후 여섯시")
	assert.Equal(t, "오전 열시", r.Open)
	assert.Equal(t, "오후 여섯시", r.Close)

	single := ParseOperatingHours("연중무휴 상시 개방")
	assert.Equal(t, "연중무휴 상시 개방", single.Open)
	assert.Empty(t, single.Close)
}
