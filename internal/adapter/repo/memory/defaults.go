package memory

import "critterkeep/internal/app/ports"

// DefaultShopItems mirrors the seed migration so the DSN-less store serves
// the same catalog as a fresh database.
func DefaultShopItems() []ports.ShopItem {
	return []ports.ShopItem{
		{ID: "hat_cap", Name: "Baseball Cap", Type: "hat", Emoji: "🧢", Price: 50},
		{ID: "hat_top", Name: "Top Hat", Type: "hat", Emoji: "🎩", Price: 120},
		{ID: "hat_party", Name: "Party Hat", Type: "hat", Emoji: "🥳", Price: 80},
		{ID: "hat_ribbon", Name: "Ribbon Bow", Type: "hat", Emoji: "🎀", Price: 60},
		{ID: "hat_crown", Name: "Royal Crown", Type: "hat", Emoji: "👑", Price: 500},
		{ID: "eye_sunglasses", Name: "Sunglasses", Type: "eyewear", Emoji: "🕶️", Price: 70},
		{ID: "eye_glasses", Name: "Reading Glasses", Type: "eyewear", Emoji: "👓", Price: 40},
		{ID: "eye_goggles", Name: "Swim Goggles", Type: "eyewear", Emoji: "🥽", Price: 55},
		{ID: "toy_ball", Name: "Bouncy Ball", Type: "toy", Emoji: "⚽", Price: 30},
		{ID: "toy_teddy", Name: "Teddy Bear", Type: "toy", Emoji: "🧸", Price: 65},
		{ID: "toy_yoyo", Name: "Yo-Yo", Type: "toy", Emoji: "🪀", Price: 45},
		{ID: "toy_kite", Name: "Kite", Type: "toy", Emoji: "🪁", Price: 50},
		{ID: "toy_sleep_mask", Name: "Sleep Mask", Type: "toy", Emoji: "😴", Price: 90},
		{ID: "furn_couch", Name: "Cozy Couch", Type: "furniture", Emoji: "🛋️", Price: 200},
		{ID: "furn_bed", Name: "Pet Bed", Type: "furniture", Emoji: "🛏️", Price: 150},
		{ID: "furn_chair", Name: "Armchair", Type: "furniture", Emoji: "🪑", Price: 90},
		{ID: "furn_bathtub", Name: "Bathtub", Type: "furniture", Emoji: "🛁", Price: 180},
		{ID: "decor_plant", Name: "Potted Plant", Type: "decor", Emoji: "🪴", Price: 60},
		{ID: "decor_lamp", Name: "Floor Lamp", Type: "decor", Emoji: "🪔", Price: 75},
		{ID: "decor_painting", Name: "Painting", Type: "decor", Emoji: "🖼️", Price: 110},
		{ID: "decor_clock", Name: "Wall Clock", Type: "decor", Emoji: "🕰️", Price: 95},
	}
}

func DefaultLootItems() []ports.LootItem {
	return []ports.LootItem{
		{ID: "c1", Name: "Paper Hat", Type: "hat", Emoji: "🎏", Rarity: "common"},
		{ID: "c2", Name: "Stick", Type: "toy", Emoji: "🪵", Rarity: "common"},
		{ID: "c3", Name: "Plain Glasses", Type: "eyewear", Emoji: "👓", Rarity: "common"},
		{ID: "c4", Name: "Rubber Duck", Type: "toy", Emoji: "🦆", Rarity: "common"},
		{ID: "u1", Name: "Beret", Type: "hat", Emoji: "🎨", Rarity: "uncommon"},
		{ID: "u2", Name: "Frisbee", Type: "toy", Emoji: "🥏", Rarity: "uncommon"},
		{ID: "u3", Name: "Cool Shades", Type: "eyewear", Emoji: "🕶️", Rarity: "uncommon"},
		{ID: "r1", Name: "Wizard Hat", Type: "hat", Emoji: "🧙", Rarity: "rare"},
		{ID: "r2", Name: "Magic 8 Ball", Type: "toy", Emoji: "🎱", Rarity: "rare"},
		{ID: "r3", Name: "Monocle", Type: "eyewear", Emoji: "🧐", Rarity: "rare"},
		{ID: "h1", Name: "Viking Helmet", Type: "hat", Emoji: "⛑️", Rarity: "hyper rare"},
		{ID: "h2", Name: "Drone", Type: "toy", Emoji: "🛸", Rarity: "hyper rare"},
		{ID: "l1", Name: "Golden Crown", Type: "hat", Emoji: "👑", Rarity: "legendary"},
		{ID: "l2", Name: "Dragon Egg", Type: "toy", Emoji: "🥚", Rarity: "legendary"},
		{ID: "l3", Name: "Wand", Type: "toy", Emoji: "🪄", Rarity: "legendary"},
		{ID: "m1", Name: "Halo", Type: "hat", Emoji: "😇", Rarity: "mythical"},
		{ID: "m2", Name: "Crystal Ball", Type: "toy", Emoji: "🔮", Rarity: "mythical"},
		{ID: "i1", Name: "Cosmic Visor", Type: "eyewear", Emoji: "🌌", Rarity: "impossible"},
	}
}
