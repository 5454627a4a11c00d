package metadata

import (
	"strconv"
	"strings"

	"dripcast/internal/models"
)

const (
	defaultPodcastTitle    = "Dripcast"
	defaultPodcastLanguage = "en"
)

// Resolve merges the filename-derived defaults with the document's override
// for that filename. Missing entries yield an empty override, never an
// error, and each field falls back on its own: one bad value cannot take
// another field's default with it. Identical inputs give identical results.
func Resolve(filename string, doc Document) models.Episode {
	release, defaultTitle := ParseFilename(filename)
	meta := doc.Episodes[filename]

	ep := models.Episode{
		Filename:    filename,
		ReleaseDate: release,
		Title:       defaultTitle,
	}
	if value := strings.TrimSpace(meta.Title); value != "" {
		ep.Title = value
	}

	ep.Description = "Episode: " + ep.Title
	if value := strings.TrimSpace(meta.Description); value != "" {
		ep.Description = value
	}

	ep.Author = optionalString(meta.Author)
	ep.DurationSeconds = parseDuration(meta.Duration)
	ep.Explicit = meta.Explicit
	if len(meta.Categories) > 0 {
		ep.Categories = append([]string(nil), meta.Categories...)
	}
	if len(meta.Keywords) > 0 {
		ep.Keywords = append([]string(nil), meta.Keywords...)
	}
	ep.Image = optionalString(meta.Image)

	return ep
}

// ResolvePodcast applies the feed-level defaults over the document's podcast
// block.
func ResolvePodcast(doc Document) models.Podcast {
	meta := doc.Podcast

	podcast := models.Podcast{
		Title:       strings.TrimSpace(meta.Title),
		Description: strings.TrimSpace(meta.Description),
		Author:      strings.TrimSpace(meta.Author),
		Language:    strings.TrimSpace(meta.Language),
		Copyright:   strings.TrimSpace(meta.Copyright),
		Explicit:    meta.Explicit,
		Image:       strings.TrimSpace(meta.Image),
		Email:       strings.TrimSpace(meta.Email),
	}
	if len(meta.Categories) > 0 {
		podcast.Categories = append([]string(nil), meta.Categories...)
	}
	if len(meta.Keywords) > 0 {
		podcast.Keywords = append([]string(nil), meta.Keywords...)
	}

	if podcast.Title == "" {
		podcast.Title = defaultPodcastTitle
	}
	if podcast.Description == "" {
		podcast.Description = podcast.Title
	}
	if podcast.Language == "" {
		podcast.Language = defaultPodcastLanguage
	}
	return podcast
}

// parseDuration converts "M:SS" or "H:MM:SS" to whole seconds. Anything else
// (wrong segment count, non-numeric parts, negatives) yields no duration.
func parseDuration(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return nil
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return nil
		}
		total = total*60 + n
	}
	return &total
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
