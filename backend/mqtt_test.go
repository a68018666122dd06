package backend

import "testing"

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantSeries string
		wantTS     float64
		wantRaw    string
		wantErr    bool
	}{
		{
			name:       "numeric value",
			payload:    `{"timestamp_s": 12.5, "series": "cpu", "value": 42.5}`,
			wantSeries: "cpu",
			wantTS:     12.5,
			wantRaw:    "42.5",
		},
		{
			name:       "string value",
			payload:    `{"timestamp_s": 1, "series": "mem", "value": "512"}`,
			wantSeries: "mem",
			wantTS:     1,
			wantRaw:    "512",
		},
		{
			name:       "unparseable value is forwarded",
			payload:    `{"timestamp_s": 1, "series": "mem", "value": "n/a"}`,
			wantSeries: "mem",
			wantTS:     1,
			wantRaw:    "n/a",
		},
		{
			name:    "missing series",
			payload: `{"timestamp_s": 1, "value": 3}`,
			wantErr: true,
		},
		{
			name:    "not json",
			payload: `timestamp_s=1`,
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			series, ts, raw, err := parsePayload([]byte(tc.payload))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected payload to parse, got: %v", err)
			}
			if series != tc.wantSeries {
				t.Errorf("expected series %q, got %q", tc.wantSeries, series)
			}
			if ts != tc.wantTS {
				t.Errorf("expected timestamp %f, got %f", tc.wantTS, ts)
			}
			if raw != tc.wantRaw {
				t.Errorf("expected raw value %q, got %q", tc.wantRaw, raw)
			}
		})
	}
}
