package hospital

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "RFC3339 format",
			input: `"2023-10-01T10:00:00Z"`,
			want:  "2023-10-01T10:00:00Z",
		},
		{
			name:  "RFC3339 with offset",
			input: `"2023-10-01T18:00:00+08:00"`,
			want:  "2023-10-01T10:00:00Z",
		},
		{
			name:  "datetime without timezone",
			input: `"2023-10-01T10:00:00"`,
			want:  "2023-10-01T10:00:00Z",
		},
		{
			name:  "space separated datetime",
			input: `"2023-10-01 10:00:00"`,
			want:  "2023-10-01T10:00:00Z",
		},
		{
			name:  "date only",
			input: `"2023-10-01"`,
			want:  "2023-10-01T00:00:00Z",
		},
		{
			name:  "null value",
			input: `null`,
			want:  "",
		},
		{
			name:  "empty string",
			input: `""`,
			want:  "",
		},
		{
			name:    "invalid format",
			input:   `"yesterday"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)

			if (err != nil) != tt.wantErr {
				t.Errorf("Timestamp.UnmarshalJSON() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && ts.String() != tt.want {
				t.Errorf("Timestamp.UnmarshalJSON() = %v, want %v", ts.String(), tt.want)
			}
		})
	}
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		ts   Timestamp
		want string
	}{
		{
			name: "zero marshals as null",
			ts:   Timestamp{},
			want: `null`,
		},
		{
			name: "normalized to UTC",
			ts:   NewTimestamp(time.Date(2023, 10, 1, 18, 0, 0, 0, time.FixedZone("CST", 8*3600))),
			want: `"2023-10-01T10:00:00Z"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.ts)
			if err != nil {
				t.Fatalf("Timestamp.MarshalJSON() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Timestamp.MarshalJSON() = %s, want %s", got, tt.want)
			}
		})
	}
}
