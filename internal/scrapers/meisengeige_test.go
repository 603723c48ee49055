package scrapers

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

const meisengeigeFixture = `<!DOCTYPE html>
<html><body>
<ul>
  <li class="filmapi-container__list--li" id="film-4711">
    <img src="/poster/wilderobots.jpg">
    <h3 class="text-white">Der wilde Roboter</h3>
    <span class="px-2 bg-petrol-50">Animation</span>
    <span class="px-2 bg-petrol-50">Familie</span>
    <span class="age-rating--6">FSK 6</span>
    <div><i class="icon-clock"></i> 102 min</div>
    <p class="leading-tight">Ein Roboter strandet auf einer Insel.</p>
    <div class="show_playing_times__content--inner">
      <table class="film-list-table">
        <thead><tr><th></th><th>Mo.15.12</th><th>Di.16.12</th></tr></thead>
        <tbody>
          <tr>
            <th><div class="font-semibold">Kino 2</div><div class="release-types"><span>OmU</span></div></th>
            <td><a class="performance-link"><span class="link-text">20:30</span></a></td>
            <td><a class="performance-link"><span class="link-text">18:00</span></a></td>
          </tr>
          <tr>
            <th><div class="font-semibold">Kino 1</div></th>
            <td></td>
            <td><a class="performance-link"><span class="link-text">21:15</span></a></td>
          </tr>
        </tbody>
      </table>
    </div>
  </li>
  <li class="filmapi-container__list--li">
    <h3 class="text-white">Kurzfilmnacht</h3>
  </li>
  <li class="filmapi-container__list--li">
    <p class="leading-tight">Container without a title is skipped.</p>
  </li>
</ul>
</body></html>`

func TestParseMeisengeigeFilms(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(meisengeigeFixture))
	if err != nil {
		t.Fatalf("Failed to parse fixture: %v", err)
	}

	scraper := NewMeisengeige(logrus.New())
	films := scraper.ParseFilms(doc)

	if len(films) != 2 {
		t.Fatalf("Expected 2 films, got %d", len(films))
	}

	film := films[0]
	if film.Title != "Der wilde Roboter" {
		t.Errorf("Title mismatch: %q", film.Title)
	}
	if film.FilmID != "4711" {
		t.Errorf("Expected film ID 4711, got %q", film.FilmID)
	}
	if len(film.Genres) != 2 || film.Genres[0] != "Animation" || film.Genres[1] != "Familie" {
		t.Errorf("Genre mismatch: %v", film.Genres)
	}
	if film.FSKRating != "FSK 6" {
		t.Errorf("FSK mismatch: %q", film.FSKRating)
	}
	if film.Duration == nil || *film.Duration != 102 {
		t.Errorf("Duration mismatch: %v", film.Duration)
	}
	if film.Description != "Ein Roboter strandet auf einer Insel." {
		t.Errorf("Description mismatch: %q", film.Description)
	}
	if film.PosterURL != "https://www.cinecitta.de/poster/wilderobots.jpg" {
		t.Errorf("Relative poster URL should be absolutized, got %q", film.PosterURL)
	}

	if len(film.Showtimes) != 3 {
		t.Fatalf("Expected 3 showtimes, got %d: %v", len(film.Showtimes), film.Showtimes)
	}
	seen := make(map[string]bool)
	for _, st := range film.Showtimes {
		seen[st.Date+" "+st.Time+" "+st.Room+" "+st.Language] = true
	}
	for _, want := range []string{
		"Mo.15.12 20:30 Kino 2 OmU",
		"Di.16.12 18:00 Kino 2 OmU",
		"Di.16.12 21:15 Kino 1 ",
	} {
		if !seen[want] {
			t.Errorf("Missing showtime %q in %v", want, seen)
		}
	}

	// A film without a showtime table still parses.
	if films[1].Title != "Kurzfilmnacht" {
		t.Errorf("Second film mismatch: %q", films[1].Title)
	}
	if len(films[1].Showtimes) != 0 {
		t.Errorf("Expected no showtimes for second film, got %v", films[1].Showtimes)
	}
}
