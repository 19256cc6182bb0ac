package date

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestOf(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	// 23:30 UTC on Dec 31 is already Jan 1 in Paris.
	instant := time.Date(2024, time.December, 31, 23, 30, 0, 0, time.UTC)

	if got, want := Of(instant), New(2024, time.December, 31); got != want {
		t.Errorf("Of(utc) = %v, want %v", got, want)
	}
	if got, want := Of(instant.In(paris)), New(2025, time.January, 1); got != want {
		t.Errorf("Of(paris) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	today := New(2025, time.March, 15)

	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", New(2025, time.January, 15), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},

		{"0d", today, false},
		{"-1d", New(2025, time.March, 14), false},
		{"+1d", New(2025, time.March, 16), false},
		{"1d", Date{}, true},
		{"-2w", New(2025, time.March, 1), false},
		{"+1m", New(2025, time.April, 15), false},
		{"-1q", New(2024, time.December, 15), false},
		{"-1y", New(2024, time.March, 15), false},

		{"27", New(2025, time.March, 27), false},
		{"8-27", New(2025, time.August, 27), false},
		{"0", New(2025, time.February, 28), false},
		{"0-15", New(2024, time.December, 15), false},
		{"1-0", New(2024, time.December, 31), false},
		{"2025-07", Date{}, true},
		{"13-5", Date{}, true},
		{"45", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseFrom(today, tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("parseFrom(%q) error = %v, wantErr %v", tt.input, err, tt.err)
			}
			if got != tt.expected {
				t.Errorf("parseFrom(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDateJSON(t *testing.T) {
	d := New(2025, time.February, 3)
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	if string(b) != `"2025-02-03"` {
		t.Errorf("MarshalJSON() = %s, want %q", b, "2025-02-03")
	}
	var got Date
	if err := got.UnmarshalJSON([]byte(`"2025-2-3"`)); err != nil {
		t.Fatalf("UnmarshalJSON() error: %v", err)
	}
	if got != d {
		t.Errorf("UnmarshalJSON() = %v, want %v", got, d)
	}
	if err := got.UnmarshalJSON([]byte(`"-1d"`)); err == nil {
		t.Errorf("UnmarshalJSON(relative) should fail")
	}
}
