package scrapers

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"kinowatch/internal/models"
)

const (
	filmhausID    = "kinderkino"
	filmhausName  = "Kinderkino (Filmhaus)"
	filmhausURL   = "https://www.kunstkulturquartier.de/filmhaus/programm/kinderkino"
	filmhausBase  = "https://www.kunstkulturquartier.de"
	filmhausVenue = "Filmhaus Nürnberg"
)

// Event cards render the date as "Mo / 22.12.2025 / 15:00 Uhr".
var filmhausDateRe = regexp.MustCompile(`([A-Za-z]+)\s*/\s*(\d{2}\.\d{2})(?:\.\d+)?\s*/\s*(\d{2}:\d{2})`)

// Filmhaus scrapes the Filmhaus Kinderkino program page. Each event card is
// a single screening, so every film carries at most one showtime.
type Filmhaus struct {
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewFilmhaus creates a Filmhaus Kinderkino scraper.
func NewFilmhaus(logger *logrus.Logger) *Filmhaus {
	return &Filmhaus{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// SourceID returns the stable source identifier.
func (f *Filmhaus) SourceID() string { return filmhausID }

// DisplayName returns the human-readable source name.
func (f *Filmhaus) DisplayName() string { return filmhausName }

// URL returns the program page URL.
func (f *Filmhaus) URL() string { return filmhausURL }

// Scrape fetches and parses the current program.
func (f *Filmhaus) Scrape(ctx context.Context) ([]models.Film, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, filmhausURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "kinowatch/1.0")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch program page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("program page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse program page: %w", err)
	}

	films := f.ParseFilms(doc)
	f.logger.WithFields(logrus.Fields{
		"source": filmhausID,
		"count":  len(films),
	}).Debug("Scraped program page")

	return films, nil
}

// ParseFilms extracts all events from a parsed program page.
func (f *Filmhaus) ParseFilms(doc *goquery.Document) []models.Film {
	var films []models.Film
	doc.Find("div.vkList").Each(func(_ int, card *goquery.Selection) {
		if film, ok := f.parseEvent(card); ok {
			films = append(films, film)
		}
	})
	return films
}

func (f *Filmhaus) parseEvent(card *goquery.Selection) (models.Film, bool) {
	title := strings.TrimSpace(card.Find("a.detailLink").First().Text())
	if title == "" {
		return models.Film{}, false
	}

	posterURL := ""
	if src, ok := card.Find("img").First().Attr("src"); ok && src != "" {
		posterURL = src
		if !strings.HasPrefix(posterURL, "http") {
			posterURL = filmhausBase + posterURL
		}
	}

	var showtimes []models.Showtime
	if st, ok := ParseFilmhausShowtime(card.Text(), filmhausVenue); ok {
		showtimes = append(showtimes, st)
	}

	description := strings.TrimSpace(card.Find("p").First().Text())

	return models.Film{
		Title:       title,
		Genres:      []string{"Kinderkino"},
		Description: description,
		PosterURL:   posterURL,
		Showtimes:   showtimes,
	}, true
}

// ParseFilmhausShowtime extracts a showtime from the card's date text,
// normalizing "Mo / 22.12.2025 / 15:00 Uhr" to the "Mo.22.12" label shape the
// other source uses. The label stays opaque; it is never parsed as a date.
func ParseFilmhausShowtime(text, venue string) (models.Showtime, bool) {
	match := filmhausDateRe.FindStringSubmatch(text)
	if match == nil {
		return models.Showtime{}, false
	}

	dayOfWeek, date, timeText := match[1], match[2], match[3]
	return models.Showtime{
		Date: dayOfWeek + "." + date,
		Time: timeText,
		Room: venue,
	}, true
}
