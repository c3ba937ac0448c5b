package media

// Status is the canonical consumption state stored with a record.
type Status string

const (
	StatusWantToRead Status = "want-to-read"
	StatusReading    Status = "reading"
	StatusRead       Status = "read"
	StatusUnread     Status = "unread"

	StatusWatching  Status = "watching"
	StatusWatched   Status = "watched"
	StatusUnwatched Status = "unwatched"

	StatusListening  Status = "listening"
	StatusListened   Status = "listened"
	StatusUnlistened Status = "unlistened"
	StatusUnknown    Status = "unknown"
)

// DefaultStatus is the "not started" token for a category.
func DefaultStatus(c Category) Status {
	switch c {
	case CategoryBook:
		return StatusUnread
	case CategoryMovie:
		return StatusUnwatched
	case CategoryMusic:
		return StatusUnlistened
	default:
		return ""
	}
}

// Statuses lists the canonical tokens accepted for a category.
func Statuses(c Category) []Status {
	switch c {
	case CategoryBook:
		return []Status{StatusWantToRead, StatusReading, StatusRead, StatusUnread}
	case CategoryMovie:
		return []Status{StatusWatching, StatusWatched, StatusUnwatched}
	case CategoryMusic:
		return []Status{StatusListening, StatusListened, StatusUnlistened, StatusUnknown}
	default:
		return nil
	}
}

func (s Status) String() string { return string(s) }
