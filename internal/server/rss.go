package server

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"dripcast/internal/models"
)

// buildRSSFeed renders the released episode collection as an RSS 2.0
// document with the itunes extensions podcast clients expect.
func buildRSSFeed(base *url.URL, requestPath, rawQuery string, podcast models.Podcast, episodes []models.Episode, token string) ([]byte, error) {
	feedURL := *base
	feedURL.Path = requestPath
	feedURL.RawQuery = rawQuery

	channelLink := *base
	channelLink.Path = ""
	channelLink.RawQuery = ""

	lastBuild := time.Now().UTC()
	if len(episodes) > 0 && episodes[0].ReleaseDate != nil {
		lastBuild = episodes[0].ReleaseDate.UTC()
	}

	rss := rssFeed{
		Version:  "2.0",
		AtomNS:   "http://www.w3.org/2005/Atom",
		ITunesNS: "http://www.itunes.com/dtds/podcast-1.0.dtd",
		Channel: rssChannel{
			Title:         podcast.Title,
			Link:          channelLink.String(),
			Description:   podcast.Description,
			Language:      podcast.Language,
			Copyright:     podcast.Copyright,
			LastBuildDate: lastBuild.Format(time.RFC1123Z),
			Generator:     "dripcast",
			AtomLink: rssAtomLink{
				Href: feedURL.String(),
				Rel:  "self",
				Type: "application/rss+xml",
			},
			ITunesAuthor:   podcast.Author,
			ITunesExplicit: explicitLabel(podcast.Explicit),
			ITunesKeywords: strings.Join(podcast.Keywords, ","),
		},
	}

	if podcast.Image != "" {
		rss.Channel.ITunesImage = &rssITunesImage{Href: podcast.Image}
	}
	if podcast.Email != "" {
		rss.Channel.ITunesOwner = &rssITunesOwner{Name: podcast.Author, Email: podcast.Email}
	}
	for _, category := range podcast.Categories {
		rss.Channel.ITunesCategories = append(rss.Channel.ITunesCategories, rssITunesCategory{Text: category})
	}

	for _, ep := range episodes {
		enclosure := episodeURL(base, ep, token)

		item := rssItem{
			Title:       ep.Title,
			Link:        enclosure,
			GUID:        rssGUID{IsPermaLink: "false", Value: ep.Filename},
			Description: ep.Description,
			Enclosure: rssEnclosure{
				URL:    enclosure,
				Length: ep.SizeBytes,
				Type:   ep.MIMEType,
			},
			ITunesExplicit: explicitLabel(ep.Explicit),
			ITunesKeywords: strings.Join(ep.Keywords, ","),
		}

		if ep.ReleaseDate != nil {
			item.PubDate = ep.ReleaseDate.Format(time.RFC1123Z)
		}
		if ep.DurationSeconds != nil {
			item.ITunesDuration = formatDuration(*ep.DurationSeconds)
		}
		if ep.Author != nil {
			item.ITunesAuthor = *ep.Author
		} else {
			item.ITunesAuthor = podcast.Author
		}
		if ep.Image != nil {
			item.ITunesImage = &rssITunesImage{Href: *ep.Image}
		}

		rss.Channel.Items = append(rss.Channel.Items, item)
	}

	output, err := xml.MarshalIndent(rss, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), output...), nil
}

func explicitLabel(explicit *bool) string {
	if explicit == nil {
		return ""
	}
	if *explicit {
		return "true"
	}
	return "false"
}

func formatDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

type rssFeed struct {
	XMLName  xml.Name   `xml:"rss"`
	Version  string     `xml:"version,attr"`
	AtomNS   string     `xml:"xmlns:atom,attr"`
	ITunesNS string     `xml:"xmlns:itunes,attr"`
	Channel  rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title            string              `xml:"title"`
	Link             string              `xml:"link"`
	Description      string              `xml:"description"`
	Language         string              `xml:"language,omitempty"`
	Copyright        string              `xml:"copyright,omitempty"`
	LastBuildDate    string              `xml:"lastBuildDate"`
	Generator        string              `xml:"generator"`
	AtomLink         rssAtomLink         `xml:"atom:link"`
	ITunesAuthor     string              `xml:"itunes:author,omitempty"`
	ITunesExplicit   string              `xml:"itunes:explicit,omitempty"`
	ITunesKeywords   string              `xml:"itunes:keywords,omitempty"`
	ITunesImage      *rssITunesImage     `xml:"itunes:image"`
	ITunesOwner      *rssITunesOwner     `xml:"itunes:owner"`
	ITunesCategories []rssITunesCategory `xml:"itunes:category"`
	Items            []rssItem           `xml:"item"`
}

type rssAtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssITunesImage struct {
	Href string `xml:"href,attr"`
}

type rssITunesOwner struct {
	Name  string `xml:"itunes:name,omitempty"`
	Email string `xml:"itunes:email,omitempty"`
}

type rssITunesCategory struct {
	Text string `xml:"text,attr"`
}

type rssItem struct {
	Title          string          `xml:"title"`
	Link           string          `xml:"link"`
	GUID           rssGUID         `xml:"guid"`
	PubDate        string          `xml:"pubDate,omitempty"`
	Description    string          `xml:"description"`
	Enclosure      rssEnclosure    `xml:"enclosure"`
	ITunesDuration string          `xml:"itunes:duration,omitempty"`
	ITunesAuthor   string          `xml:"itunes:author,omitempty"`
	ITunesExplicit string          `xml:"itunes:explicit,omitempty"`
	ITunesKeywords string          `xml:"itunes:keywords,omitempty"`
	ITunesImage    *rssITunesImage `xml:"itunes:image"`
}

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}
