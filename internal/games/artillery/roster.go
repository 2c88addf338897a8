package artillery

import "github.com/vovakirdan/siege-arcade/internal/core"

// Fighter is a selectable character.
type Fighter struct {
	ID    string
	Name  string
	Color core.Color // Fallback colour when the sprite is missing
	Theme string     // Music track played during the match
}

// Roster lists the selectable fighters in menu order.
var Roster = []Fighter{
	{ID: "sputnik", Name: "Sputnik", Color: core.ColorBrightCyan, Theme: "duel"},
	{ID: "mortar", Name: "Mortar Mo", Color: core.ColorBrightYellow, Theme: "duel"},
	{ID: "bombarda", Name: "Bombarda", Color: core.ColorBrightRed, Theme: "bombarda"},
	{ID: "trebuchet", Name: "Trebuchet Trudy", Color: core.ColorOrange, Theme: "duel"},
	{ID: "ballista", Name: "Ballista Bob", Color: core.ColorBrightGreen, Theme: "duel"},
}

// SpriteName returns the asset name of a fighter's art.
func SpriteName(id string) string {
	return "characters/" + id
}

// FighterByID looks up a roster entry.
func FighterByID(id string) (Fighter, bool) {
	for _, f := range Roster {
		if f.ID == id {
			return f, true
		}
	}
	return Fighter{}, false
}
