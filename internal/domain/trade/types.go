package trade

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// ItemKind classifies what an offered item is, which decides how ownership
// transfers at settlement: pets and house items move by identity, accessory
// stacks move by decrement/increment.
type ItemKind string

const (
	KindPet       ItemKind = "pet"
	KindHat       ItemKind = "hat"
	KindToy       ItemKind = "toy"
	KindEyewear   ItemKind = "eyewear"
	KindFurniture ItemKind = "furniture"
	KindDecor     ItemKind = "decor"
)

// ByIdentity reports whether this kind transfers a unique row rather than
// one unit off a stack.
func (k ItemKind) ByIdentity() bool {
	return k == KindPet || k == KindFurniture || k == KindDecor
}

func ValidKind(k ItemKind) bool {
	switch k {
	case KindPet, KindHat, KindToy, KindEyewear, KindFurniture, KindDecor:
		return true
	}
	return false
}

// Request is a two-party negotiation. Only the recipient may accept, and
// only while pending.
type Request struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Status      Status    `json:"status"`
	Message     string    `json:"message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Item is one offered entry on a trade, tagged by which side put it up.
type Item struct {
	ID             string   `json:"id"`
	TradeID        string   `json:"trade_id"`
	SenderOffering bool     `json:"sender_offering"`
	Kind           ItemKind `json:"kind"`
	ItemID         string   `json:"item_id"`
	ItemName       string   `json:"item_name,omitempty"`
	ItemEmoji      string   `json:"item_emoji,omitempty"`
}
