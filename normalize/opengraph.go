package normalize

import (
	"strings"

	"github.com/fwojciec/archeion"
)

// openGraphTags maps OpenGraph properties to canonical field names.
var openGraphTags = map[string]string{
	"og:url":                 "source",
	"og:title":               "headline",
	"og:description":         "description",
	"og:site_name":           "publisher",
	"og:published_time":      "datePublished",
	"og:type":                "type",
	"og:tag":                 "keywords",
	"og:video:tag":           "keywords",
	"og:article:tag":         "keywords",
	"og:book:tag":            "keywords",
	"og:music:tag":           "keywords",
	"article:author":         "author",
	"article:published_time": "datePublished",
}

// openGraphTypes maps og:type values to schema.org types.
var openGraphTypes = map[string]string{
	"music.song":          "https://schema.org/MusicRecording",
	"music.album":         "https://schema.org/MusicAlbum",
	"music.playlist":      "https://schema.org/MusicPlaylist",
	"music.radio_station": "https://schema.org/Organization",
	"video.movie":         "https://schema.org/Movie",
	"video.episode":       "https://schema.org/Episode",
	"video.tv_show":       "https://schema.org/TVSeries",
	"video.other":         "https://schema.org/VideoObject",
	"article":             "https://schema.org/Article",
	"book":                "https://schema.org/Book",
	"profile":             "https://schema.org/Person",
	"object":              "https://schema.org/Thing",
}

// OpenGraphType maps an og:type value to a schema.org type. Unknown and
// empty values map to CreativeWork.
func OpenGraphType(ogType string) string {
	if t, ok := openGraphTypes[strings.ToLower(strings.TrimSpace(ogType))]; ok {
		return t
	}
	return archeion.TypeCreativeWork
}

// NormalizeOpenGraph normalizes the OpenGraph properties of a document.
// The type is always set. When og:type repeats, the first value is used.
func NormalizeOpenGraph(item *archeion.OpenGraphItem) *archeion.Fields {
	f := newFields()
	var ogType string
	for _, p := range item.Properties {
		field, ok := openGraphTags[p.Tag]
		if !ok {
			continue
		}
		value := strings.TrimSpace(p.Value)
		if value == "" {
			continue
		}
		switch field {
		case "source":
			f.Source.Add(value)
		case "headline":
			f.Headline.Add(value)
		case "description":
			f.Description.Add(value)
		case "publisher":
			f.Publisher = append(f.Publisher, archeion.Agent{Type: archeion.TypeOrganization, Name: value})
		case "author":
			f.Author = append(f.Author, archeion.Agent{Type: archeion.TypePerson, Name: value})
		case "datePublished":
			addDate(f, value)
		case "keywords":
			f.Keywords.Add(value)
		case "type":
			if ogType == "" {
				ogType = value
			}
		}
	}
	f.Type = OpenGraphType(ogType)
	return f
}
