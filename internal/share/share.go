// Package share builds the links offered by an event's share menu.
package share

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"smorg/backend/internal/domain"
)

const dateLayout = "Jan 2, 2006"

type Links struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Email    string `json:"email"`
	Twitter  string `json:"twitter"`
	Facebook string `json:"facebook"`
	WhatsApp string `json:"whatsapp"`
}

type Builder struct {
	baseURL string
	tz      *time.Location
}

// NewBuilder returns a Builder producing links under baseURL, with dates
// rendered in tz (UTC when nil).
func NewBuilder(baseURL string, tz *time.Location) *Builder {
	if tz == nil {
		tz = time.UTC
	}
	return &Builder{baseURL: strings.TrimRight(baseURL, "/"), tz: tz}
}

func (b *Builder) Build(e domain.Event) Links {
	link := fmt.Sprintf("%s/event/%s", b.baseURL, url.PathEscape(e.Id))
	text := fmt.Sprintf("Check out %s at %s on %s", e.Title, e.VenueDisplay(), e.Date.In(b.tz).Format(dateLayout))

	return Links{
		URL:      link,
		Title:    e.Title,
		Text:     text,
		Email:    "mailto:?subject=" + component(e.Title) + "&body=" + component(text+"\n\n"+link),
		Twitter:  "https://twitter.com/intent/tweet?text=" + component(text) + "&url=" + component(link),
		Facebook: "https://facebook.com/sharer/sharer.php?u=" + component(link),
		WhatsApp: "https://wa.me/?text=" + component(text+" "+link),
	}
}

// component escapes s for a query value with spaces as %20, which mail
// clients require.
func component(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
