package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOrNil(t *testing.T) {
	v := dateOrNil("2025-12-03")
	parsed, ok := v.(time.Time)
	assert.True(t, ok)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.December, parsed.Month())
	assert.Equal(t, 3, parsed.Day())

	assert.Nil(t, dateOrNil(""))
	assert.Nil(t, dateOrNil("2025.12.03"))
	// Raw text passed through by the normalizer on a failed parse must
	// land as NULL, never as an error.
	assert.Nil(t, dateOrNil("상설 전시"))
}

func TestTimeOrNil(t *testing.T) {
	assert.Equal(t, "10:30", timeOrNil("10:30"))
	assert.Nil(t, timeOrNil(""))
	// The normalizer passes "25:00" through untouched; the sink is the
	// layer that refuses it, same as any other unparseable time.
	assert.Nil(t, timeOrNil("25:00"))
	assert.Nil(t, timeOrNil("오전 열시"))
}

func TestTextOrNil(t *testing.T) {
	assert.Equal(t, "서울 종로구", textOrNil("서울 종로구"))
	assert.Nil(t, textOrNil(""))
	assert.Nil(t, textOrNil("   "))
}
