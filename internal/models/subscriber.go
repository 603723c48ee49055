package models

const (
	// DefaultSourceID is the source the legacy single-source commands act on.
	DefaultSourceID = "meisengeige"

	// DefaultLanguage is the locale used when a chat never picked one.
	DefaultLanguage = "en"

	// DefaultVersion sorts before any released bot version, so a fresh chat
	// is told about the current release on first contact.
	DefaultVersion = "0.0.0"
)

// Subscriber is one chat's persisted state: the sources it follows plus
// per-chat preferences. Language and Version may be set before the chat ever
// subscribes; a record whose Sources is empty does not count as a subscriber
// anywhere.
type Subscriber struct {
	ChatID   int64 `boltholdKey:"ChatID"`
	Sources  []string
	Language string // empty until the chat explicitly picks one
	Version  string // last bot version announced to this chat
}

// SubscribedTo reports whether the record contains the given source.
func (s *Subscriber) SubscribedTo(sourceID string) bool {
	for _, src := range s.Sources {
		if src == sourceID {
			return true
		}
	}
	return false
}
