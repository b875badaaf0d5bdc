package transaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "ISO format",
			input: "2024-01-05",
			want:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "US slash format",
			input: "01/05/2024",
			want:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "EU slash format when US parse fails",
			// day 25 cannot be a month, so the EU layout matches
			input: "25/01/2024",
			want:  time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "ISO with time keeps only the date",
			input: "2024-03-15 13:45:00",
			want:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "dash MDY format",
			input: "05-01-2024",
			want:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  2024-01-05  ",
			want:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{name: "empty", input: "", wantErr: true},
		{name: "sentinel invalid_date", input: "invalid_date", wantErr: true},
		{name: "sentinel null", input: "null", wantErr: true},
		{name: "sentinel none uppercase", input: "NONE", wantErr: true},
		{name: "garbage", input: "not-a-date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "plain integer", input: "42", want: 42},
		{name: "plain decimal", input: "19.99", want: 19.99},
		{name: "currency symbol and thousands separator", input: "$1,200.50", want: 1200.50},
		{name: "embedded spaces", input: "1 200.50", want: 1200.50},
		{name: "negative passes through", input: "-5", want: -5},
		{name: "empty", input: "", wantErr: true},
		{name: "sentinel null", input: "null", wantErr: true},
		{name: "sentinel none", input: "None", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestMidnight(t *testing.T) {
	in := time.Date(2024, 6, 1, 17, 30, 45, 123, time.FixedZone("X", 3600))
	got := Midnight(in)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got)
}
