package metadata

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func TestParseFilenameWithDatePrefix(t *testing.T) {
	release, title := ParseFilename("2024-12-01_First_Day_Of_Christmas.mp3")

	if release == nil {
		t.Fatalf("expected release date, got nil")
	}
	if !release.Equal(date(2024, time.December, 1)) {
		t.Fatalf("unexpected release date %s", release)
	}
	if title != "First Day Of Christmas" {
		t.Fatalf("unexpected title %q", title)
	}
}

func TestParseFilenameWithoutDatePrefix(t *testing.T) {
	release, title := ParseFilename("bonus_track.mp3")

	if release != nil {
		t.Fatalf("expected nil release date, got %s", release)
	}
	if title != "bonus track" {
		t.Fatalf("unexpected title %q", title)
	}
}

func TestParseFilenameInvalidCalendarDate(t *testing.T) {
	// A date-shaped prefix that is not a real date is just part of the name.
	release, title := ParseFilename("2024-13-40_Not_A_Date.mp3")

	if release != nil {
		t.Fatalf("expected nil release date for invalid date, got %s", release)
	}
	if title != "2024-13-40 Not A Date" {
		t.Fatalf("unexpected title %q", title)
	}
}

func TestParseFilenameKeepsUnsupportedExtension(t *testing.T) {
	_, title := ParseFilename("2024-06-01_Show_Notes.txt")
	if title != "Show Notes.txt" {
		t.Fatalf("unexpected title %q", title)
	}
}

func TestParseFilenameOnlyStripsTrailingExtension(t *testing.T) {
	release, title := ParseFilename("2024-06-01_Version_1.5_Recap.mp3")

	if release == nil || !release.Equal(date(2024, time.June, 1)) {
		t.Fatalf("unexpected release date %v", release)
	}
	if title != "Version 1.5 Recap" {
		t.Fatalf("unexpected title %q", title)
	}
}

func TestParseFilenameBareName(t *testing.T) {
	release, title := ParseFilename("interview")
	if release != nil {
		t.Fatalf("expected nil release date")
	}
	if title != "interview" {
		t.Fatalf("unexpected title %q", title)
	}
}

func TestParseFilenameDateOnly(t *testing.T) {
	release, title := ParseFilename("2024-01-15.mp3")
	if release == nil || !release.Equal(date(2024, time.January, 15)) {
		t.Fatalf("unexpected release date %v", release)
	}
	if title != "" {
		t.Fatalf("expected empty title, got %q", title)
	}
}

func TestParseFilenameDateNotAnchoredMidName(t *testing.T) {
	release, title := ParseFilename("rerun_2024-12-01_special.mp3")
	if release != nil {
		t.Fatalf("expected nil release date for mid-name date")
	}
	if title != "rerun 2024-12-01 special" {
		t.Fatalf("unexpected title %q", title)
	}
}

func TestIsSupportedAndMIMEType(t *testing.T) {
	cases := map[string]string{
		"a.mp3":  "audio/mpeg",
		"a.MP3":  "audio/mpeg",
		"a.m4a":  "audio/mp4",
		"a.aac":  "audio/aac",
		"a.wav":  "audio/wav",
		"a.flac": "audio/flac",
		"a.ogg":  "audio/ogg",
	}
	for name, want := range cases {
		if !IsSupported(name) {
			t.Fatalf("expected %s to be supported", name)
		}
		got, ok := MIMEType(name)
		if !ok || got != want {
			t.Fatalf("MIMEType(%s) = %q, %v; want %q", name, got, ok, want)
		}
	}

	for _, name := range []string{"a.txt", "a.jpg", "manifest.json", "noext"} {
		if IsSupported(name) {
			t.Fatalf("expected %s to be unsupported", name)
		}
	}
}

func TestSupportedExtensionsIsolation(t *testing.T) {
	first := SupportedExtensions()
	if len(first) == 0 {
		t.Fatalf("expected supported extensions to be non-empty")
	}

	first[0] = ".doesnotexist"
	if SupportedExtensions()[0] == ".doesnotexist" {
		t.Fatalf("mutating returned slice should not affect internal table")
	}
}
