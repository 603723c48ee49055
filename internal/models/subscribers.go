package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// Subscriber operations. Every mutation is a single read-modify-write of one
// chat's record inside one bolt transaction, so concurrent chat sessions
// cannot lose each other's updates.

// AddSubscription subscribes the chat to a source. Returns false when the
// chat is already subscribed to that exact source. The record is created on
// first subscription.
func (db *Database) AddSubscription(chatID int64, sourceID string) (bool, error) {
	added := false
	err := db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		var sub Subscriber
		err := db.store.TxGet(tx, chatID, &sub)
		if errors.Is(err, bolthold.ErrNotFound) {
			sub = Subscriber{ChatID: chatID}
		} else if err != nil {
			return err
		}

		if sub.SubscribedTo(sourceID) {
			return nil
		}

		sub.Sources = append(sub.Sources, sourceID)
		added = true
		return db.store.TxUpsert(tx, chatID, &sub)
	})
	return added, err
}

// RemoveSubscription unsubscribes the chat from a source. Returns false when
// the chat has no record or is not subscribed to that source. When the last
// source is removed the record is deleted entirely.
func (db *Database) RemoveSubscription(chatID int64, sourceID string) (bool, error) {
	removed := false
	err := db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		var sub Subscriber
		err := db.store.TxGet(tx, chatID, &sub)
		if errors.Is(err, bolthold.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if !sub.SubscribedTo(sourceID) {
			return nil
		}

		kept := sub.Sources[:0]
		for _, src := range sub.Sources {
			if src != sourceID {
				kept = append(kept, src)
			}
		}
		sub.Sources = kept
		removed = true

		if len(sub.Sources) == 0 {
			return db.store.TxDelete(tx, chatID, Subscriber{})
		}
		return db.store.TxUpsert(tx, chatID, &sub)
	})
	return removed, err
}

// GetUserSources returns the sources the chat is subscribed to, empty when
// there is no record.
func (db *Database) GetUserSources(chatID int64) ([]string, error) {
	var sub Subscriber
	err := db.store.Get(chatID, &sub)
	if errors.Is(err, bolthold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sub.Sources, nil
}

// IsSubscribed reports whether the chat has at least one subscription.
func (db *Database) IsSubscribed(chatID int64) (bool, error) {
	sources, err := db.GetUserSources(chatID)
	return len(sources) > 0, err
}

// IsSubscribedTo reports whether the chat is subscribed to the given source.
func (db *Database) IsSubscribedTo(chatID int64, sourceID string) (bool, error) {
	var sub Subscriber
	err := db.store.Get(chatID, &sub)
	if errors.Is(err, bolthold.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return sub.SubscribedTo(sourceID), nil
}

// GetSubscribersForSource returns the chat IDs subscribed to the source.
func (db *Database) GetSubscribersForSource(sourceID string) ([]int64, error) {
	var subs []*Subscriber
	err := db.store.Find(&subs, bolthold.Where("Sources").Contains(sourceID))
	if err != nil {
		return nil, err
	}

	chatIDs := make([]int64, 0, len(subs))
	for _, sub := range subs {
		chatIDs = append(chatIDs, sub.ChatID)
	}
	return chatIDs, nil
}

// GetSubscriberCount returns the number of distinct chats with at least one
// subscription. Records holding only preferences do not count.
func (db *Database) GetSubscriberCount() (int, error) {
	count := 0
	err := db.store.ForEach(nil, func(sub *Subscriber) error {
		if len(sub.Sources) > 0 {
			count++
		}
		return nil
	})
	return count, err
}

// GetSourceSubscriberCount returns the number of chats subscribed to the
// source.
func (db *Database) GetSourceSubscriberCount(sourceID string) (int, error) {
	chatIDs, err := db.GetSubscribersForSource(sourceID)
	return len(chatIDs), err
}

// SetLanguage stores the chat's locale. The record is created when absent, so
// a chat can pick a language before ever subscribing.
func (db *Database) SetLanguage(chatID int64, language string) error {
	return db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		var sub Subscriber
		err := db.store.TxGet(tx, chatID, &sub)
		if errors.Is(err, bolthold.ErrNotFound) {
			sub = Subscriber{ChatID: chatID}
		} else if err != nil {
			return err
		}
		sub.Language = language
		return db.store.TxUpsert(tx, chatID, &sub)
	})
}

// GetLanguage returns the chat's locale, falling back to DefaultLanguage.
func (db *Database) GetLanguage(chatID int64) (string, error) {
	var sub Subscriber
	err := db.store.Get(chatID, &sub)
	if errors.Is(err, bolthold.ErrNotFound) {
		return DefaultLanguage, nil
	}
	if err != nil {
		return DefaultLanguage, err
	}
	if sub.Language == "" {
		return DefaultLanguage, nil
	}
	return sub.Language, nil
}

// HasLanguageSet reports whether the chat explicitly picked a locale.
func (db *Database) HasLanguageSet(chatID int64) (bool, error) {
	var sub Subscriber
	err := db.store.Get(chatID, &sub)
	if errors.Is(err, bolthold.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return sub.Language != "", nil
}

// SetVersion stores the last bot version announced to the chat.
func (db *Database) SetVersion(chatID int64, version string) error {
	return db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		var sub Subscriber
		err := db.store.TxGet(tx, chatID, &sub)
		if errors.Is(err, bolthold.ErrNotFound) {
			sub = Subscriber{ChatID: chatID}
		} else if err != nil {
			return err
		}
		sub.Version = version
		return db.store.TxUpsert(tx, chatID, &sub)
	})
}

// GetVersion returns the last bot version announced to the chat, falling back
// to the DefaultVersion sentinel.
func (db *Database) GetVersion(chatID int64) (string, error) {
	var sub Subscriber
	err := db.store.Get(chatID, &sub)
	if errors.Is(err, bolthold.ErrNotFound) {
		return DefaultVersion, nil
	}
	if err != nil {
		return DefaultVersion, err
	}
	if sub.Version == "" {
		return DefaultVersion, nil
	}
	return sub.Version, nil
}

// Legacy single-source operations, kept for the original command surface.

// AddSubscriber subscribes the chat to the default source.
func (db *Database) AddSubscriber(chatID int64) (bool, error) {
	return db.AddSubscription(chatID, DefaultSourceID)
}

// RemoveSubscriber drops all of the chat's subscriptions at once. Returns
// false when the chat has none.
func (db *Database) RemoveSubscriber(chatID int64) (bool, error) {
	removed := false
	err := db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		var sub Subscriber
		err := db.store.TxGet(tx, chatID, &sub)
		if errors.Is(err, bolthold.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if len(sub.Sources) == 0 {
			return nil
		}
		removed = true
		return db.store.TxDelete(tx, chatID, Subscriber{})
	})
	return removed, err
}

// GetAllSubscribers returns every chat ID with at least one subscription.
func (db *Database) GetAllSubscribers() ([]int64, error) {
	var chatIDs []int64
	err := db.store.ForEach(nil, func(sub *Subscriber) error {
		if len(sub.Sources) > 0 {
			chatIDs = append(chatIDs, sub.ChatID)
		}
		return nil
	})
	return chatIDs, err
}

// legacyFile is the shape of the pre-database subscribers file. The oldest
// deployments wrote a flat list of chat IDs; later ones a map of records.
type legacyFile struct {
	Subscribers json.RawMessage `json:"subscribers"`
}

type legacyRecord struct {
	Sources  []string `json:"sources"`
	Language string   `json:"language"`
}

// MigrateLegacySubscribers imports subscribers from the old JSON state file,
// if one exists. Flat-list entries are upgraded to a record subscribed to the
// default source. Chats already present in the database are left untouched,
// so running the migration twice is a no-op. Returns the number of imported
// records.
func (db *Database) MigrateLegacySubscribers(path string) (int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read legacy subscribers file: %w", err)
	}

	var file legacyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("failed to parse legacy subscribers file: %w", err)
	}
	if len(file.Subscribers) == 0 {
		return 0, nil
	}

	records := make(map[int64]legacyRecord)

	var flat []int64
	if err := json.Unmarshal(file.Subscribers, &flat); err == nil {
		for _, chatID := range flat {
			records[chatID] = legacyRecord{Sources: []string{DefaultSourceID}, Language: DefaultLanguage}
		}
	} else {
		var keyed map[string]legacyRecord
		if err := json.Unmarshal(file.Subscribers, &keyed); err != nil {
			return 0, fmt.Errorf("unrecognized legacy subscribers format: %w", err)
		}
		for key, rec := range keyed {
			chatID, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid chat ID %q in legacy subscribers file: %w", key, err)
			}
			records[chatID] = rec
		}
	}

	imported := 0
	err = db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		for chatID, rec := range records {
			var existing Subscriber
			err := db.store.TxGet(tx, chatID, &existing)
			if err == nil {
				continue // already migrated
			}
			if !errors.Is(err, bolthold.ErrNotFound) {
				return err
			}

			sub := Subscriber{
				ChatID:   chatID,
				Sources:  rec.Sources,
				Language: rec.Language,
			}
			if err := db.store.TxUpsert(tx, chatID, &sub); err != nil {
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import legacy subscribers: %w", err)
	}
	return imported, nil
}
