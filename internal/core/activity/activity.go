package activity

import "time"

// Card value formats.
const (
	FormatNumber   = "number"
	FormatDuration = "duration"
)

// Admin presence states.
const (
	PresenceActive  = "active"
	PresenceOffline = "offline"
)

const (
	ActiveDuration  = 20 * time.Minute
	OfflineDuration = 30 * time.Minute
)

// MetricCard is one simulated dashboard tile drifting around Base.
type MetricCard struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Base     int    `json:"base"`
	Variance int    `json:"variance"`
	Format   string `json:"format"`
	// Value is the starting value; zero starts at Base.
	Value int `json:"value,omitempty"`
}

// Floor is the lowest value the card may show.
func (c MetricCard) Floor() int {
	if lo := c.Base - c.Variance; lo > 0 {
		return lo
	}
	return 0
}

// Ceiling is the highest value the card may show.
func (c MetricCard) Ceiling() int { return c.Base + c.Variance }

// DefaultCards are the tiles shown next to the feed.
func DefaultCards() []MetricCard {
	return []MetricCard{
		{Key: "sessions", Label: "Active sessions", Base: 842, Variance: 60, Format: FormatNumber},
		{Key: "posts_today", Label: "Updates today", Base: 214, Variance: 18, Format: FormatNumber},
		{Key: "avg_session", Label: "Avg. session", Base: 425, Variance: 45, Format: FormatDuration},
		{Key: "response_time", Label: "Median reply time", Base: 96, Variance: 24, Format: FormatDuration},
	}
}

// CardSnapshot is the current state of one card.
type CardSnapshot struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value int    `json:"value"`
	Text  string `json:"text"`
}

// Snapshot is the whole activity board at one instant.
type Snapshot struct {
	Online         int            `json:"online"`
	OnlineLabel    string         `json:"onlineLabel"`
	OnlineBase     int            `json:"onlineBase"`
	OnlineVariance int            `json:"onlineVariance"`
	Cards          []CardSnapshot `json:"cards"`
	Presence       string         `json:"presence"`
	PresenceSince  time.Time      `json:"presenceSince"`
	PresenceUntil  time.Time      `json:"presenceUntil"`
}
