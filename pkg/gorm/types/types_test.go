package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRoundTrip(t *testing.T) {
	d := NewDate(2026, 9, 16)

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-09-16", v)

	var scanned Date
	require.NoError(t, scanned.Scan("2026-09-16"))
	assert.Equal(t, time.Time(d), time.Time(scanned))

	require.NoError(t, scanned.Scan([]byte("2027-01-02")))
	assert.Equal(t, "2027-01-02", time.Time(scanned).Format(DateFormat))
}

func TestDateScanTime(t *testing.T) {
	src := time.Date(2026, time.September, 16, 13, 45, 0, 0, time.UTC)

	var d Date
	require.NoError(t, d.Scan(src))

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-09-16", v)
}

func TestDateScanRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, d.Scan(12345))
	assert.Error(t, d.Scan("16.09.2026"))
}

func TestTimeRoundTrip(t *testing.T) {
	c := NewClockTime(8, 0, 0)

	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, "08:00:00", v)

	var scanned Time
	require.NoError(t, scanned.Scan("17:30:00"))
	assert.Equal(t, "17:30", time.Time(scanned).Format("15:04"))
}
