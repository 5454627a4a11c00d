package metadata

import (
	"testing"
	"time"
)

func TestReleasedNilDateIsAlwaysPublic(t *testing.T) {
	times := []time.Time{
		time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Now(),
		time.Date(2100, time.June, 15, 12, 0, 0, 0, time.UTC),
	}
	for _, now := range times {
		if !Released(nil, now) {
			t.Fatalf("expected nil release date to be public at %s", now)
		}
	}
}

func TestReleasedDayBoundary(t *testing.T) {
	release := date(2024, time.December, 1)

	if Released(&release, time.Date(2024, time.November, 30, 23, 59, 59, 0, time.Local)) {
		t.Fatalf("expected unreleased the day before")
	}
	if !Released(&release, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("expected released at midnight on the release day")
	}
	if !Released(&release, time.Date(2024, time.December, 1, 23, 59, 0, 0, time.Local)) {
		t.Fatalf("expected released later the same day")
	}
	if !Released(&release, time.Date(2025, time.March, 10, 8, 0, 0, 0, time.Local)) {
		t.Fatalf("expected released long after")
	}
}

func TestReleasedIsMonotonic(t *testing.T) {
	release := date(2024, time.June, 15)

	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local)
	released := false
	for i := 0; i < 60; i++ {
		current := Released(&release, now)
		if released && !current {
			t.Fatalf("release state went backwards at %s", now)
		}
		released = current
		now = now.Add(12 * time.Hour)
	}
	if !released {
		t.Fatalf("expected episode to be released by %s", now)
	}
}
