package models

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAddSubscriptionIdempotent(t *testing.T) {
	db := newTestDatabase(t)

	added, err := db.AddSubscription(100, "meisengeige")
	if err != nil {
		t.Fatalf("AddSubscription failed: %v", err)
	}
	if !added {
		t.Error("First subscription must report added")
	}

	added, err = db.AddSubscription(100, "meisengeige")
	if err != nil {
		t.Fatalf("AddSubscription failed: %v", err)
	}
	if added {
		t.Error("Repeated subscription must report not added")
	}

	sources, err := db.GetUserSources(100)
	if err != nil {
		t.Fatalf("GetUserSources failed: %v", err)
	}
	if len(sources) != 1 {
		t.Errorf("Expected exactly one source, got %v", sources)
	}
}

func TestRemoveSubscriptionDeletesEmptyRecord(t *testing.T) {
	db := newTestDatabase(t)

	if _, err := db.AddSubscription(100, "meisengeige"); err != nil {
		t.Fatalf("AddSubscription failed: %v", err)
	}
	if _, err := db.AddSubscription(100, "kinderkino"); err != nil {
		t.Fatalf("AddSubscription failed: %v", err)
	}

	removed, err := db.RemoveSubscription(100, "meisengeige")
	if err != nil || !removed {
		t.Fatalf("RemoveSubscription failed: removed=%v err=%v", removed, err)
	}
	subscribed, err := db.IsSubscribed(100)
	if err != nil || !subscribed {
		t.Error("Chat should still be subscribed to the other source")
	}

	removed, err = db.RemoveSubscription(100, "kinderkino")
	if err != nil || !removed {
		t.Fatalf("RemoveSubscription failed: removed=%v err=%v", removed, err)
	}

	count, err := db.GetSubscriberCount()
	if err != nil {
		t.Fatalf("GetSubscriberCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Record must be gone after last source is removed, count=%d", count)
	}

	// removing again is a no-op, not an error
	removed, err = db.RemoveSubscription(100, "kinderkino")
	if err != nil {
		t.Fatalf("RemoveSubscription failed: %v", err)
	}
	if removed {
		t.Error("Removing a missing subscription must report not removed")
	}
}

func TestGetSubscribersForSource(t *testing.T) {
	db := newTestDatabase(t)

	if _, err := db.AddSubscription(100, "meisengeige"); err != nil {
		t.Fatalf("AddSubscription failed: %v", err)
	}
	if _, err := db.AddSubscription(200, "meisengeige"); err != nil {
		t.Fatalf("AddSubscription failed: %v", err)
	}
	if _, err := db.AddSubscription(300, "kinderkino"); err != nil {
		t.Fatalf("AddSubscription failed: %v", err)
	}

	chatIDs, err := db.GetSubscribersForSource("meisengeige")
	if err != nil {
		t.Fatalf("GetSubscribersForSource failed: %v", err)
	}
	sort.Slice(chatIDs, func(i, j int) bool { return chatIDs[i] < chatIDs[j] })
	if len(chatIDs) != 2 || chatIDs[0] != 100 || chatIDs[1] != 200 {
		t.Errorf("Expected [100 200], got %v", chatIDs)
	}

	count, err := db.GetSourceSubscriberCount("kinderkino")
	if err != nil || count != 1 {
		t.Errorf("Expected 1 kinderkino subscriber, got %d (%v)", count, err)
	}
}

func TestLanguageDefaultsAndPersistence(t *testing.T) {
	db := newTestDatabase(t)

	lang, err := db.GetLanguage(100)
	if err != nil || lang != DefaultLanguage {
		t.Errorf("Expected default language for unknown chat, got %q (%v)", lang, err)
	}
	hasLang, err := db.HasLanguageSet(100)
	if err != nil || hasLang {
		t.Error("Unknown chat must not report a language")
	}

	// language can be set before any subscription exists
	if err := db.SetLanguage(100, "ru"); err != nil {
		t.Fatalf("SetLanguage failed: %v", err)
	}
	lang, err = db.GetLanguage(100)
	if err != nil || lang != "ru" {
		t.Errorf("Expected ru, got %q (%v)", lang, err)
	}

	// a preference-only record is not a subscriber
	count, err := db.GetSubscriberCount()
	if err != nil || count != 0 {
		t.Errorf("Preference-only record must not count as subscriber, count=%d", count)
	}
}

func TestVersionTracking(t *testing.T) {
	db := newTestDatabase(t)

	version, err := db.GetVersion(100)
	if err != nil || version != DefaultVersion {
		t.Errorf("Expected sentinel version for unknown chat, got %q (%v)", version, err)
	}

	if err := db.SetVersion(100, "1.1.0"); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	version, err = db.GetVersion(100)
	if err != nil || version != "1.1.0" {
		t.Errorf("Expected 1.1.0, got %q (%v)", version, err)
	}
}

func TestRemoveSubscriberKeepsLanguagelessSemantics(t *testing.T) {
	db := newTestDatabase(t)

	if _, err := db.AddSubscription(100, "meisengeige"); err != nil {
		t.Fatalf("AddSubscription failed: %v", err)
	}
	if _, err := db.AddSubscription(100, "kinderkino"); err != nil {
		t.Fatalf("AddSubscription failed: %v", err)
	}

	removed, err := db.RemoveSubscriber(100)
	if err != nil || !removed {
		t.Fatalf("RemoveSubscriber failed: removed=%v err=%v", removed, err)
	}

	subscribed, err := db.IsSubscribed(100)
	if err != nil || subscribed {
		t.Error("RemoveSubscriber must drop all subscriptions")
	}

	removed, err = db.RemoveSubscriber(100)
	if err != nil {
		t.Fatalf("RemoveSubscriber failed: %v", err)
	}
	if removed {
		t.Error("Second RemoveSubscriber must report not removed")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	db := newTestDatabase(t)

	snap, err := db.LoadSnapshot("meisengeige")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if snap != nil {
		t.Fatal("Expected nil snapshot on first run")
	}

	duration := 96
	films := []Film{{
		Title:    "Amelie",
		Genres:   []string{"Komödie"},
		Duration: &duration,
		Showtimes: []Showtime{
			{Date: "Mo.22.12", Time: "15:00", Room: "Saal 1", Language: "OmU"},
		},
	}}
	if err := db.SaveSnapshot("meisengeige", films); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	snap, err = db.LoadSnapshot("meisengeige")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if snap == nil || snap.SourceID != "meisengeige" || snap.Timestamp.IsZero() {
		t.Fatalf("Unexpected snapshot: %+v", snap)
	}
	if len(snap.Films) != 1 || snap.Films[0].Title != "Amelie" {
		t.Errorf("Films not round-tripped: %+v", snap.Films)
	}
	if snap.Films[0].Duration == nil || *snap.Films[0].Duration != 96 {
		t.Errorf("Duration not round-tripped: %+v", snap.Films[0].Duration)
	}

	// snapshots for different sources do not collide
	if err := db.SaveSnapshot("kinderkino", []Film{{Title: "Paddington"}}); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	snap, err = db.LoadSnapshot("meisengeige")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if snap.Films[0].Title != "Amelie" {
		t.Errorf("Snapshots must be isolated per source, got %+v", snap.Films)
	}
}

func TestSaveSnapshotReplacesPrevious(t *testing.T) {
	db := newTestDatabase(t)

	if err := db.SaveSnapshot("meisengeige", []Film{{Title: "Amelie"}, {Title: "Oldboy"}}); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if err := db.SaveSnapshot("meisengeige", []Film{{Title: "Paddington"}}); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	snap, err := db.LoadSnapshot("meisengeige")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(snap.Films) != 1 || snap.Films[0].Title != "Paddington" {
		t.Errorf("Expected wholesale replacement, got %+v", snap.Films)
	}
}

func TestMigrateLegacySubscribersFlatList(t *testing.T) {
	db := newTestDatabase(t)

	path := filepath.Join(t.TempDir(), "subscribers.json")
	if err := os.WriteFile(path, []byte(`{"subscribers": [100, 200]}`), 0644); err != nil {
		t.Fatalf("Failed to write legacy file: %v", err)
	}

	imported, err := db.MigrateLegacySubscribers(path)
	if err != nil {
		t.Fatalf("MigrateLegacySubscribers failed: %v", err)
	}
	if imported != 2 {
		t.Errorf("Expected 2 imported, got %d", imported)
	}

	for _, chatID := range []int64{100, 200} {
		subscribed, err := db.IsSubscribedTo(chatID, DefaultSourceID)
		if err != nil || !subscribed {
			t.Errorf("Chat %d must be subscribed to the default source", chatID)
		}
	}

	// second run is a no-op
	imported, err = db.MigrateLegacySubscribers(path)
	if err != nil {
		t.Fatalf("MigrateLegacySubscribers failed: %v", err)
	}
	if imported != 0 {
		t.Errorf("Re-running migration must import nothing, got %d", imported)
	}
}

func TestMigrateLegacySubscribersKeyedMap(t *testing.T) {
	db := newTestDatabase(t)

	path := filepath.Join(t.TempDir(), "subscribers.json")
	legacy := `{"subscribers": {"100": {"sources": ["kinderkino"], "language": "de"}}}`
	if err := os.WriteFile(path, []byte(legacy), 0644); err != nil {
		t.Fatalf("Failed to write legacy file: %v", err)
	}

	imported, err := db.MigrateLegacySubscribers(path)
	if err != nil {
		t.Fatalf("MigrateLegacySubscribers failed: %v", err)
	}
	if imported != 1 {
		t.Errorf("Expected 1 imported, got %d", imported)
	}

	subscribed, err := db.IsSubscribedTo(100, "kinderkino")
	if err != nil || !subscribed {
		t.Error("Imported record must keep its sources")
	}
	lang, err := db.GetLanguage(100)
	if err != nil || lang != "de" {
		t.Errorf("Imported record must keep its language, got %q", lang)
	}
}

func TestMigrateLegacySubscribersMissingFile(t *testing.T) {
	db := newTestDatabase(t)

	imported, err := db.MigrateLegacySubscribers(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Missing legacy file must not be an error: %v", err)
	}
	if imported != 0 {
		t.Errorf("Expected 0 imported, got %d", imported)
	}
}

func TestMigrateLegacySubscribersSkipsExisting(t *testing.T) {
	db := newTestDatabase(t)

	if _, err := db.AddSubscription(100, "kinderkino"); err != nil {
		t.Fatalf("AddSubscription failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "subscribers.json")
	if err := os.WriteFile(path, []byte(`{"subscribers": [100, 200]}`), 0644); err != nil {
		t.Fatalf("Failed to write legacy file: %v", err)
	}

	imported, err := db.MigrateLegacySubscribers(path)
	if err != nil {
		t.Fatalf("MigrateLegacySubscribers failed: %v", err)
	}
	if imported != 1 {
		t.Errorf("Existing record must be skipped, got %d imported", imported)
	}

	// the existing record keeps its own subscriptions
	subscribed, err := db.IsSubscribedTo(100, DefaultSourceID)
	if err != nil {
		t.Fatalf("IsSubscribedTo failed: %v", err)
	}
	if subscribed {
		t.Error("Migration must not overwrite an existing record")
	}
}
