package scrapers

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"kinowatch/internal/models"
)

const (
	meisengeigeID   = "meisengeige"
	meisengeigeName = "Meisengeige"
	meisengeigeURL  = "https://www.cinecitta.de/programm/meisengeige/"
	meisengeigeBase = "https://www.cinecitta.de"
)

var (
	durationRe = regexp.MustCompile(`(\d+)\s*min`)
	timeRe     = regexp.MustCompile(`^\d{1,2}:\d{2}`)
)

// Meisengeige scrapes the Cinecitta Meisengeige program page.
type Meisengeige struct {
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewMeisengeige creates a Meisengeige scraper.
func NewMeisengeige(logger *logrus.Logger) *Meisengeige {
	return &Meisengeige{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// SourceID returns the stable source identifier.
func (m *Meisengeige) SourceID() string { return meisengeigeID }

// DisplayName returns the human-readable source name.
func (m *Meisengeige) DisplayName() string { return meisengeigeName }

// URL returns the program page URL.
func (m *Meisengeige) URL() string { return meisengeigeURL }

// Scrape fetches and parses the current program.
func (m *Meisengeige) Scrape(ctx context.Context) ([]models.Film, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, meisengeigeURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "kinowatch/1.0")

	resp, err := m.httpClient.Do(req)
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

	films := m.ParseFilms(doc)
	m.logger.WithFields(logrus.Fields{
		"source": meisengeigeID,
		"count":  len(films),
	}).Debug("Scraped program page")

	return films, nil
}

// ParseFilms extracts all films from a parsed program page.
func (m *Meisengeige) ParseFilms(doc *goquery.Document) []models.Film {
	var films []models.Film
	doc.Find("li.filmapi-container__list--li").Each(func(_ int, container *goquery.Selection) {
		if film, ok := m.parseFilm(container); ok {
			films = append(films, film)
		}
	})
	return films
}

func (m *Meisengeige) parseFilm(container *goquery.Selection) (models.Film, bool) {
	title := strings.TrimSpace(container.Find("h3.text-white").First().Text())
	if title == "" {
		// A container without a title is navigation chrome, not a film.
		return models.Film{}, false
	}

	filmID := ""
	if id, ok := container.Attr("id"); ok {
		filmID = strings.TrimPrefix(id, "film-")
	}

	var genres []string
	container.Find("span.px-2.bg-petrol-50").Each(func(_ int, s *goquery.Selection) {
		if g := strings.TrimSpace(s.Text()); g != "" {
			genres = append(genres, g)
		}
	})

	fskRating := ""
	container.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if class, ok := s.Attr("class"); ok && strings.Contains(class, "age-rating--") {
			fskRating = strings.TrimSpace(s.Text())
			return false
		}
		return true
	})

	var duration *int
	if clock := container.Find("i.icon-clock").First(); clock.Length() > 0 {
		if match := durationRe.FindStringSubmatch(clock.Parent().Text()); match != nil {
			if minutes, err := strconv.Atoi(match[1]); err == nil {
				duration = &minutes
			}
		}
	}

	description := strings.TrimSpace(container.Find("p.leading-tight").First().Text())

	posterURL := ""
	if src, ok := container.Find("img").First().Attr("src"); ok && src != "" {
		posterURL = src
		if !strings.HasPrefix(posterURL, "http") {
			posterURL = meisengeigeBase + posterURL
		}
	}

	return models.Film{
		Title:       title,
		Genres:      genres,
		FSKRating:   fskRating,
		Duration:    duration,
		Description: description,
		PosterURL:   posterURL,
		FilmID:      filmID,
		Showtimes:   parseShowtimeTable(container),
	}, true
}

// parseShowtimeTable reads the per-film showtime grid: one column per date
// label, one row per room, cells holding the start times.
func parseShowtimeTable(container *goquery.Selection) []models.Showtime {
	var showtimes []models.Showtime

	table := container.Find("div.show_playing_times__content--inner").Find("table.film-list-table").First()
	if table.Length() == 0 {
		return showtimes
	}

	var dates []string
	table.Find("thead th").Each(func(i int, th *goquery.Selection) {
		if i == 0 {
			return // corner cell above the room column
		}
		if date := strings.TrimSpace(th.Text()); date != "" {
			dates = append(dates, date)
		}
	})
	if len(dates) == 0 {
		return showtimes
	}

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		header := row.Find("th").First()
		if header.Length() == 0 {
			return
		}

		room := strings.TrimSpace(header.Find("div.font-semibold").First().Text())
		if room == "" {
			room = "Unknown"
		}
		language := strings.TrimSpace(header.Find("div.release-types span").First().Text())

		row.Find("td").Each(func(idx int, cell *goquery.Selection) {
			if idx >= len(dates) {
				return
			}
			timeText := strings.TrimSpace(cell.Find("a.performance-link span.link-text").First().Text())
			if timeText == "" || !timeRe.MatchString(timeText) {
				return
			}
			showtimes = append(showtimes, models.Showtime{
				Date:     dates[idx],
				Time:     timeText,
				Room:     room,
				Language: language,
			})
		})
	})

	return showtimes
}
