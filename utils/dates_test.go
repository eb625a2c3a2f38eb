package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-07-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01/07/2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestNightsBetween(t *testing.T) {
	in, _ := ParseDate("2024-06-30")
	out, _ := ParseDate("2024-07-04")
	assert.Equal(t, 4, NightsBetween(in, out))
	assert.Equal(t, 0, NightsBetween(in, in))
}

func TestNextDay(t *testing.T) {
	d, _ := ParseDate("2024-02-28")
	assert.Equal(t, "2024-02-29", DateString(NextDay(d)))
	d, _ = ParseDate("2024-12-31")
	assert.Equal(t, "2025-01-01", DateString(NextDay(d)))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 135.00, Round2(135.004))
	assert.Equal(t, 12.35, Round2(12.346))
	assert.Equal(t, 0.30, Round2(0.1+0.2))
	assert.Equal(t, -10.00, Round2(-9.999))
	assert.Equal(t, 50.00, Round2(12.5*4))
}
