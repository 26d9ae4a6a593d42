package track

import (
	"testing"
	"time"
)

func TestParsePosition(t *testing.T) {
	cases := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"90", 90 * time.Second, false},
		{"0", 0, false},
		{"1:30", 90 * time.Second, false},
		{"0:05", 5 * time.Second, false},
		{"1:02:03", time.Hour + 2*time.Minute + 3*time.Second, false},
		{" 2:00 ", 2 * time.Minute, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1:2:3:4", 0, true},
		{"-5", 0, true},
		{"1:-30", 0, true},
		{"1:3a", 0, true},
	}

	for _, tc := range cases {
		got, err := ParsePosition(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParsePosition(%q) expected error, got %v", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePosition(%q) unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePosition(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{5 * time.Second, "0:05"},
		{90 * time.Second, "1:30"},
		{time.Hour, "1:00:00"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}

	for _, tc := range cases {
		if got := FormatDuration(tc.d); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestLiveTracks(t *testing.T) {
	live := &Track{Title: "radio", Duration: 0}
	if !live.Live() {
		t.Error("zero-duration track should be live")
	}
	if got := live.DurationString(); got != "LIVE" {
		t.Errorf("DurationString() = %q, want LIVE", got)
	}

	normal := &Track{Title: "song", Duration: 3 * time.Minute}
	if normal.Live() {
		t.Error("track with duration should not be live")
	}
	if got := normal.DurationString(); got != "3:00" {
		t.Errorf("DurationString() = %q, want 3:00", got)
	}
}
