package pet

import "time"

// Vitals are the five care meters, each clamped to [0, 100]. A pet whose
// vitals ever resolve to 0 runs away and its record is deleted.
type Vitals struct {
	Hunger      int `json:"hunger"`
	Happiness   int `json:"happiness"`
	Cleanliness int `json:"cleanliness"`
	Energy      int `json:"energy"`
	Thirst      int `json:"thirst"`
}

// Effects is a one-time additive delta applied to a subset of vitals.
type Effects struct {
	Hunger      int `json:"hunger,omitempty"`
	Happiness   int `json:"happiness,omitempty"`
	Cleanliness int `json:"cleanliness,omitempty"`
	Energy      int `json:"energy,omitempty"`
	Thirst      int `json:"thirst,omitempty"`
}

// Accessories are the three equipment slots. Hat and eyewear are cosmetic;
// the toy slot drives the sleep/toy subsystem.
type Accessories struct {
	Hat     string `json:"hat,omitempty"`
	Toy     string `json:"toy,omitempty"`
	Eyewear string `json:"eyewear,omitempty"`
}

type CareAction string

const (
	ActionFeed  CareAction = "feed"
	ActionPlay  CareAction = "play"
	ActionClean CareAction = "clean"
	ActionWater CareAction = "water"
	ActionToy   CareAction = "toy"
)

// Pet is the central aggregate. Version backs optimistic concurrency on every
// write; concurrent tick/action writers conflict instead of silently
// overwriting each other.
type Pet struct {
	ID            string      `json:"id"`
	OwnerID       string      `json:"owner_id"`
	OwnerNickname string      `json:"owner_nickname,omitempty"`
	Name          string      `json:"name"`
	Species       Species     `json:"species"`
	Breed         string      `json:"breed,omitempty"`
	Vitals        Vitals      `json:"vitals"`
	Level         int         `json:"level"`
	XP            int         `json:"xp"`
	Coins         int         `json:"coins"`
	Accessories   Accessories `json:"accessories"`

	LastFed           time.Time `json:"last_fed"`
	LastPlayed        time.Time `json:"last_played"`
	LastCleaned       time.Time `json:"last_cleaned"`
	LastToyPlayed     time.Time `json:"last_toy_played"`
	ToyPlayCount      int       `json:"toy_play_count"`
	LastMutationCheck time.Time `json:"last_mutation_check"`

	LastActivity map[ActivityType]time.Time `json:"last_activity,omitempty"`

	CurrentEvent   EventType `json:"current_event,omitempty"`
	EventStartedAt time.Time `json:"event_started_at,omitzero"`

	Sleeping       bool      `json:"sleeping"`
	SleepStartedAt time.Time `json:"sleep_started_at,omitzero"`
	SleepEndsAt    time.Time `json:"sleep_ends_at,omitzero"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Notice is a short-lived user-facing message produced by engines and
// actions, persisted so clients can poll or stream it.
type Notice struct {
	OwnerID    string    `json:"owner_id"`
	PetID      string    `json:"pet_id,omitempty"`
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	NoticeWokeUp     = "woke_up"
	NoticeRanAway    = "ran_away"
	NoticeRecovered  = "recovered"
	NoticeEventBegan = "event_began"
	NoticeLevelUp    = "level_up"
	NoticeMutated    = "mutated"
	NoticeDragonBuff = "dragon_buff"
)
