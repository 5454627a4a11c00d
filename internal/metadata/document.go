package metadata

import (
	"errors"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the YAML metadata overlay: one block describing the podcast
// plus per-episode overrides keyed by exact filename.
type Document struct {
	Podcast  PodcastMeta            `yaml:"podcast"`
	Episodes map[string]EpisodeMeta `yaml:"episodes"`
}

// PodcastMeta carries the feed-level fields. All optional.
type PodcastMeta struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Author      string   `yaml:"author"`
	Language    string   `yaml:"language"`
	Copyright   string   `yaml:"copyright"`
	Categories  []string `yaml:"categories"`
	Keywords    []string `yaml:"keywords"`
	Explicit    *bool    `yaml:"explicit"`
	Image       string   `yaml:"image"`
	Email       string   `yaml:"email"`
}

// EpisodeMeta carries the per-episode overrides. All optional.
type EpisodeMeta struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Author      string   `yaml:"author"`
	Duration    string   `yaml:"duration"`
	Explicit    *bool    `yaml:"explicit"`
	Categories  []string `yaml:"categories"`
	Keywords    []string `yaml:"keywords"`
	Image       string   `yaml:"image"`
}

// Load reads the metadata document at path. A missing, unreadable, or
// malformed document degrades to an empty one: episode listing must never
// fail because the overlay is broken.
func Load(path string, logger *log.Logger) Document {
	if logger == nil {
		logger = log.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Printf("metadata read error for %s: %v", path, err)
		}
		return Document{}
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		logger.Printf("metadata parse error for %s: %v", path, err)
		return Document{}
	}
	return doc
}
