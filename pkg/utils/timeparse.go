package utils

import (
	"fmt"
	"strconv"
)

// MinutesOfDay extracts the wall-clock minutes since midnight from an
// ISO-8601 local timestamp such as "2026-03-05T09:30:00". The date part is
// ignored, so times on different days compare by clock position only:
// 23:50 and 00:10 the next day are 1420 minutes apart, not 20.
func MinutesOfDay(timestamp string) (int, error) {
	if len(timestamp) < 16 {
		return 0, fmt.Errorf("timestamp %q too short for hour:minute extraction", timestamp)
	}

	hour, err := strconv.Atoi(timestamp[11:13])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in timestamp %q: %w", timestamp, err)
	}
	minute, err := strconv.Atoi(timestamp[14:16])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in timestamp %q: %w", timestamp, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("timestamp %q has out-of-range clock fields", timestamp)
	}

	return hour*60 + minute, nil
}
