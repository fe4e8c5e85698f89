package core

import (
	"errors"
	"testing"
	"time"
)

func TestMillisToInterval(t *testing.T) {
	cases := []struct {
		ms   int64
		want time.Duration
		ok   bool
	}{
		{1, time.Millisecond, true},
		{250, 250 * time.Millisecond, true},
		{MaxIntervalMillis, time.Duration(MaxIntervalMillis) * time.Millisecond, true},
		{0, 0, false},
		{-5, 0, false},
		{MaxIntervalMillis + 1, 0, false},
		{18446744073710, 0, false},
	}
	for _, tc := range cases {
		got, err := MillisToInterval(tc.ms)
		if !tc.ok {
			if !errors.Is(err, ErrInvalidInterval) {
				t.Fatalf("MillisToInterval(%d) err = %v, want ErrInvalidInterval", tc.ms, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("MillisToInterval(%d) unexpected error: %v", tc.ms, err)
		}
		if got != tc.want {
			t.Fatalf("MillisToInterval(%d) = %s, want %s", tc.ms, got, tc.want)
		}
	}
}
