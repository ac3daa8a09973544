package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr error
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "09:30", want: 570},
		{name: "last minute", input: "23:59", want: 1439},
		{name: "single digit hour", input: "9:30", wantErr: ErrInvalidTimeFormat},
		{name: "seconds", input: "09:30:00", wantErr: ErrInvalidTimeFormat},
		{name: "letters", input: "ab:cd", wantErr: ErrInvalidTimeFormat},
		{name: "wrong separator", input: "09.30", wantErr: ErrInvalidTimeFormat},
		{name: "hour out of range", input: "24:00", wantErr: ErrTimeOutOfRange},
		{name: "minute out of range", input: "10:60", wantErr: ErrTimeOutOfRange},
		{name: "empty", input: "", wantErr: ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestTimeOfDay_AddMinutes(t *testing.T) {
	assert.Equal(t, "10:30", MustParseTimeOfDay("10:00").AddMinutes(30).String())
	assert.Equal(t, "00:15", MustParseTimeOfDay("23:45").AddMinutes(30).String())
	assert.Equal(t, "23:50", MustParseTimeOfDay("00:10").AddMinutes(-20).String())
	assert.Equal(t, "10:00", MustParseTimeOfDay("10:00").AddMinutes(MinutesPerDay).String())
}

func TestTimeOfDay_JSON(t *testing.T) {
	payload := struct {
		Start TimeOfDay `json:"startTime"`
	}{Start: MustParseTimeOfDay("14:05")}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"startTime":"14:05"}`, string(data))

	var decoded struct {
		Start TimeOfDay `json:"startTime"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, payload.Start, decoded.Start)

	err = json.Unmarshal([]byte(`{"startTime":"2pm"}`), &decoded)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeOfDay_Scan(t *testing.T) {
	var tod TimeOfDay

	require.NoError(t, tod.Scan("10:00"))
	assert.Equal(t, "10:00", tod.String())

	require.NoError(t, tod.Scan([]byte("11:30:00")))
	assert.Equal(t, "11:30", tod.String())

	require.NoError(t, tod.Scan(time.Date(0, 1, 1, 7, 45, 0, 0, time.UTC)))
	assert.Equal(t, "07:45", tod.String())

	assert.Error(t, tod.Scan(nil))
	assert.Error(t, tod.Scan(42))

	v, err := MustParseTimeOfDay("08:05").Value()
	require.NoError(t, err)
	assert.Equal(t, "08:05", v)

	_, err = TimeOfDay(MinutesPerDay).Value()
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestParseTimeRange(t *testing.T) {
	r, err := ParseTimeRange("09:00-17:00")
	require.NoError(t, err)
	assert.Equal(t, MustParseTimeOfDay("09:00"), r.Start)
	assert.Equal(t, MustParseTimeOfDay("17:00"), r.End)
	assert.False(t, r.IsEmpty())
	assert.Equal(t, "09:00-17:00", r.String())

	r, err = ParseTimeRange(" 09:00 - 12:00 ")
	require.NoError(t, err)
	assert.Equal(t, "09:00-12:00", r.String())

	r, err = ParseTimeRange("17:00-09:00")
	require.NoError(t, err)
	assert.True(t, r.IsEmpty())

	for _, bad := range []string{"", "09:00", "09:00-12:00-15:00", "9-17", "09:00-25:00", "-"} {
		_, err := ParseTimeRange(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeRange, bad)
	}
}
