package metadata

import (
	"reflect"
	"testing"
	"time"
)

func boolPtr(v bool) *bool { return &v }

func TestResolveWithoutMetadataEntry(t *testing.T) {
	ep := Resolve("2024-12-01_First_Day_Of_Christmas.mp3", Document{})

	if ep.Filename != "2024-12-01_First_Day_Of_Christmas.mp3" {
		t.Fatalf("unexpected filename %q", ep.Filename)
	}
	if ep.Title != "First Day Of Christmas" {
		t.Fatalf("unexpected title %q", ep.Title)
	}
	if ep.Description != "Episode: First Day Of Christmas" {
		t.Fatalf("unexpected description %q", ep.Description)
	}
	if ep.ReleaseDate == nil || !ep.ReleaseDate.Equal(date(2024, time.December, 1)) {
		t.Fatalf("unexpected release date %v", ep.ReleaseDate)
	}
	if ep.Author != nil || ep.DurationSeconds != nil || ep.Explicit != nil || ep.Image != nil {
		t.Fatalf("expected optional fields to stay unset: %+v", ep)
	}
	if len(ep.Categories) != 0 || len(ep.Keywords) != 0 {
		t.Fatalf("expected empty lists: %+v", ep)
	}
}

func TestResolvePartialOverride(t *testing.T) {
	doc := Document{
		Episodes: map[string]EpisodeMeta{
			"2024-12-24_Christmas_Eve_Special.mp3": {
				Description: "The grand finale!",
				Duration:    "5:30",
			},
		},
	}

	ep := Resolve("2024-12-24_Christmas_Eve_Special.mp3", doc)

	if ep.Title != "Christmas Eve Special" {
		t.Fatalf("expected defaulted title, got %q", ep.Title)
	}
	if ep.Description != "The grand finale!" {
		t.Fatalf("expected overridden description, got %q", ep.Description)
	}
	if ep.DurationSeconds == nil || *ep.DurationSeconds != 330 {
		t.Fatalf("expected 330 seconds, got %v", ep.DurationSeconds)
	}
}

func TestResolveFullOverride(t *testing.T) {
	doc := Document{
		Episodes: map[string]EpisodeMeta{
			"bonus_track.mp3": {
				Title:       "The Lost Episode",
				Description: "Recovered from the archives.",
				Author:      "A. Host",
				Duration:    "1:02:03",
				Explicit:    boolPtr(true),
				Categories:  []string{"Comedy", "History"},
				Keywords:    []string{"lost", "archive"},
				Image:       "https://cdn.example/bonus.jpg",
			},
		},
	}

	ep := Resolve("bonus_track.mp3", doc)

	if ep.Title != "The Lost Episode" {
		t.Fatalf("unexpected title %q", ep.Title)
	}
	if ep.Description != "Recovered from the archives." {
		t.Fatalf("unexpected description %q", ep.Description)
	}
	if ep.Author == nil || *ep.Author != "A. Host" {
		t.Fatalf("unexpected author %v", ep.Author)
	}
	if ep.DurationSeconds == nil || *ep.DurationSeconds != 3723 {
		t.Fatalf("unexpected duration %v", ep.DurationSeconds)
	}
	if ep.Explicit == nil || !*ep.Explicit {
		t.Fatalf("unexpected explicit %v", ep.Explicit)
	}
	if !reflect.DeepEqual(ep.Categories, []string{"Comedy", "History"}) {
		t.Fatalf("unexpected categories %v", ep.Categories)
	}
	if !reflect.DeepEqual(ep.Keywords, []string{"lost", "archive"}) {
		t.Fatalf("unexpected keywords %v", ep.Keywords)
	}
	if ep.Image == nil || *ep.Image != "https://cdn.example/bonus.jpg" {
		t.Fatalf("unexpected image %v", ep.Image)
	}
}

func TestResolveDescriptionEmbedsOverriddenTitle(t *testing.T) {
	doc := Document{
		Episodes: map[string]EpisodeMeta{
			"2024-01-01_raw.mp3": {Title: "Fresh Start"},
		},
	}

	ep := Resolve("2024-01-01_raw.mp3", doc)
	if ep.Description != "Episode: Fresh Start" {
		t.Fatalf("unexpected description %q", ep.Description)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	doc := Document{
		Episodes: map[string]EpisodeMeta{
			"2024-12-24_Christmas_Eve_Special.mp3": {
				Description: "The grand finale!",
				Duration:    "5:30",
				Keywords:    []string{"christmas"},
			},
		},
	}

	first := Resolve("2024-12-24_Christmas_Eve_Special.mp3", doc)
	second := Resolve("2024-12-24_Christmas_Eve_Special.mp3", doc)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("resolving twice diverged:\n%+v\n%+v", first, second)
	}
}

func TestResolveMalformedDurationDefaultsThatFieldOnly(t *testing.T) {
	doc := Document{
		Episodes: map[string]EpisodeMeta{
			"2024-05-05_ep.mp3": {
				Title:    "Kept Title",
				Duration: "about an hour",
			},
		},
	}

	ep := Resolve("2024-05-05_ep.mp3", doc)
	if ep.DurationSeconds != nil {
		t.Fatalf("expected malformed duration to resolve to nil, got %v", ep.DurationSeconds)
	}
	if ep.Title != "Kept Title" {
		t.Fatalf("bad duration must not affect other fields, got title %q", ep.Title)
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		input string
		want  int
		ok    bool
	}{
		{"5:30", 330, true},
		{"0:45", 45, true},
		{"1:02:03", 3723, true},
		{"10:00:00", 36000, true},
		{" 5:30 ", 330, true},
		{"", 0, false},
		{"90", 0, false},
		{"x:30", 0, false},
		{"5:", 0, false},
		{"-1:30", 0, false},
		{"1:2:3:4", 0, false},
		{"5.5:30", 0, false},
	}

	for _, tc := range cases {
		got := parseDuration(tc.input)
		if tc.ok {
			if got == nil || *got != tc.want {
				t.Fatalf("parseDuration(%q) = %v, want %d", tc.input, got, tc.want)
			}
		} else if got != nil {
			t.Fatalf("parseDuration(%q) = %d, want nil", tc.input, *got)
		}
	}
}

func TestResolvePodcastDefaults(t *testing.T) {
	podcast := ResolvePodcast(Document{})

	if podcast.Title != "Dripcast" {
		t.Fatalf("unexpected default title %q", podcast.Title)
	}
	if podcast.Description != podcast.Title {
		t.Fatalf("expected description to default to the title, got %q", podcast.Description)
	}
	if podcast.Language != "en" {
		t.Fatalf("unexpected default language %q", podcast.Language)
	}
}

func TestResolvePodcastOverrides(t *testing.T) {
	doc := Document{
		Podcast: PodcastMeta{
			Title:       "Advent Audio",
			Description: "One episode a day.",
			Author:      "The Crew",
			Language:    "de",
			Copyright:   "2024 The Crew",
			Categories:  []string{"Leisure"},
			Keywords:    []string{"advent"},
			Explicit:    boolPtr(false),
			Image:       "https://cdn.example/cover.jpg",
			Email:       "crew@example.com",
		},
	}

	podcast := ResolvePodcast(doc)

	if podcast.Title != "Advent Audio" || podcast.Description != "One episode a day." {
		t.Fatalf("unexpected podcast %+v", podcast)
	}
	if podcast.Language != "de" || podcast.Copyright != "2024 The Crew" {
		t.Fatalf("unexpected podcast %+v", podcast)
	}
	if podcast.Explicit == nil || *podcast.Explicit {
		t.Fatalf("unexpected explicit %v", podcast.Explicit)
	}
	if podcast.Email != "crew@example.com" || podcast.Image == "" {
		t.Fatalf("unexpected podcast %+v", podcast)
	}
}
