package pet

// EventType tags a transient affliction. At most one event is active per
// pet at a time.
type EventType string

const (
	EventSick         EventType = "sick"
	EventInjured      EventType = "injured"
	EventDepressed    EventType = "depressed"
	EventExtraHungry  EventType = "extra_hungry"
	EventThirsty      EventType = "thirsty"
	EventAnxious      EventType = "anxious"
	EventTired        EventType = "tired"
	EventOverfed      EventType = "overfed"
	EventOverhydrated EventType = "overhydrated"
)

type Event struct {
	Type        EventType
	Emoji       string
	Title       string
	Description string
	Effects     Effects
	Resolution  string
}

var EventCatalog = map[EventType]Event{
	EventSick: {
		Type: EventSick, Emoji: "🤒", Title: "Feeling Sick",
		Description: "Your pet is not feeling well and needs extra care",
		Effects:     Effects{Energy: -20, Happiness: -15},
		Resolution:  "Clean and feed your pet to help them recover",
	},
	EventInjured: {
		Type: EventInjured, Emoji: "🩹", Title: "Got Injured",
		Description: "Your pet got a minor injury while playing",
		Effects:     Effects{Energy: -25, Happiness: -20},
		Resolution:  "Give them rest by keeping them clean and fed",
	},
	EventDepressed: {
		Type: EventDepressed, Emoji: "😢", Title: "Feeling Down",
		Description: "Your pet is feeling lonely and sad",
		Effects:     Effects{Happiness: -30, Energy: -10},
		Resolution:  "Play with them to cheer them up",
	},
	EventExtraHungry: {
		Type: EventExtraHungry, Emoji: "🍖", Title: "Extra Hungry",
		Description: "Your pet has worked up a big appetite",
		Effects:     Effects{Hunger: -30, Energy: -15},
		Resolution:  "Feed them multiple times to satisfy their hunger",
	},
	EventThirsty: {
		Type: EventThirsty, Emoji: "💧", Title: "Very Thirsty",
		Description: "Your pet needs water right away",
		Effects:     Effects{Thirst: -40, Energy: -10},
		Resolution:  "Give them water to drink",
	},
	EventAnxious: {
		Type: EventAnxious, Emoji: "😰", Title: "Feeling Anxious",
		Description: "Your pet is stressed and needs comfort",
		Effects:     Effects{Happiness: -25, Energy: -20},
		Resolution:  "Spend time playing and cleaning them",
	},
	EventTired: {
		Type: EventTired, Emoji: "😴", Title: "Exhausted",
		Description: "Your pet is extremely tired and needs rest",
		Effects:     Effects{Energy: -35, Happiness: -10},
		Resolution:  "Let them rest by not playing for a while",
	},
	EventOverfed: {
		Type: EventOverfed, Emoji: "🤢", Title: "Overfed",
		Description: "Your pet ate too much and feels sick",
		Resolution:  "Wait 5 minutes for them to recover",
	},
	EventOverhydrated: {
		Type: EventOverhydrated, Emoji: "🤢", Title: "Overhydrated",
		Description: "Your pet drank too much water and feels sick",
		Resolution:  "Wait 5 minutes for them to recover",
	},
}

// eventOrder fixes the draw order so a seeded RNG produces a stable pick.
var eventOrder = []EventType{
	EventSick, EventInjured, EventDepressed, EventExtraHungry,
	EventThirsty, EventAnxious, EventTired, EventOverfed, EventOverhydrated,
}

// remedialClears maps each care action to the events it cures. Clearing
// refunds nothing beyond the action's own effects.
var remedialClears = map[CareAction][]EventType{
	ActionFeed:  {EventExtraHungry, EventSick, EventInjured},
	ActionPlay:  {EventDepressed, EventAnxious},
	ActionClean: {EventSick, EventAnxious},
	ActionWater: {EventThirsty},
}

// ClearsEvent reports whether performing action cures the given event.
func ClearsEvent(action CareAction, evt EventType) bool {
	for _, t := range remedialClears[action] {
		if t == evt {
			return true
		}
	}
	return false
}
