package hunt

import (
	"fmt"

	"github.com/vovakirdan/siege-arcade/internal/games/hunt/levels"
)

// Note is the text shown when a sticky note is picked up.
type Note struct {
	Title string
	Text  string
}

const defaultNoteTitle = "Sticky Note"

type personalTemplate func(sender, recipient string) Note

var personalTemplates = []personalTemplate{
	func(s, r string) Note {
		return Note{
			Title: "A note for " + r,
			Text:  fmt.Sprintf("Dear %s,\n\nMy day is better because you exist. I can't wait to see you again.\n\nWarmly, %s", r, s),
		}
	},
	func(s, r string) Note {
		return Note{
			Title: s + " for " + r,
			Text:  fmt.Sprintf("%s, every moment with you gives me courage. I'm with you.\n\n- %s", r, s),
		}
	},
	func(s, r string) Note {
		return Note{
			Title: "Thoughts for " + r,
			Text:  fmt.Sprintf("%s, my thoughts are always with you. I love you.\n\n- %s", r, s),
		}
	},
	func(s, r string) Note {
		return Note{
			Title: "Breathless",
			Text:  fmt.Sprintf("%s, when you smile the world stops. You light up my days.\n\nWith love, %s", r, s),
		}
	},
	func(s, r string) Note {
		return Note{
			Title: "I love you",
			Text:  fmt.Sprintf("%s, I love you more every day. Stay mine forever.\n\n- %s", r, s),
		}
	},
	func(s, r string) Note {
		return Note{
			Title: "For " + r,
			Text:  fmt.Sprintf("My dear %s, every memory with you fills my soul. I adore you.\n\n- %s", r, s),
		}
	},
}

// officeTemplate builds a work-style note from a time, a date, the running
// sticky number and the level name.
type officeTemplate func(at, date string, n int, level string) Note

var officeTemplates = []officeTemplate{
	func(at, date string, n int, level string) Note {
		return Note{"Meeting at " + at, fmt.Sprintf("Meeting scheduled at %s (%s).", at, level)}
	},
	func(at, date string, n int, level string) Note {
		return Note{"Project deadline " + date, fmt.Sprintf("Project delivery deadline: %s.", date)}
	},
	func(at, date string, n int, level string) Note {
		return Note{"Reminder: send the report", fmt.Sprintf("Send the report by %s (%s).", at, date)}
	},
	func(at, date string, n int, level string) Note {
		return Note{fmt.Sprintf("Note %d", n), fmt.Sprintf("Note %d from level %q.", n, level)}
	},
	func(at, date string, n int, level string) Note {
		return Note{"System check " + date, fmt.Sprintf("Check the servers and the backup by %s.", date)}
	},
	func(at, date string, n int, level string) Note {
		return Note{"Team meeting at " + at, fmt.Sprintf("Short sync at %s in the main office.", at)}
	},
	func(at, date string, n int, level string) Note {
		return Note{"Client delivery " + date, fmt.Sprintf("Delivery to the client scheduled for %s.", date)}
	},
	func(at, date string, n int, level string) Note {
		return Note{fmt.Sprintf("Reminder %d", n), "Reminder: check the mail and update the tasks."}
	},
}

var noteTimes = []string{"09:00", "09:30", "10:15", "11:00", "13:30", "14:00", "15:45", "16:00", "17:30", "18:00"}

// levelNotes generates the sticky note text for every item of a level.
// Exactly one sticky per level gets a personal note, picked
// deterministically from the level index and skipping stickies that carry
// their own text. Bottles get an empty Note.
func levelNotes(lvl levels.Level, index int, cfg levels.Notes) []Note {
	notes := make([]Note, len(lvl.Items))

	var stickies []int
	for i, it := range lvl.Items {
		if it.Type == levels.ItemSticky {
			stickies = append(stickies, i)
		}
	}

	personal := -1
	if len(stickies) > 0 {
		seed := (index*7 + 3) % len(stickies)
		for off := range stickies {
			cand := stickies[(seed+off)%len(stickies)]
			if lvl.Items[cand].Title == "" && lvl.Items[cand].Note == "" {
				personal = cand
				break
			}
		}
	}

	name := lvl.Name
	if name == "" {
		name = fmt.Sprintf("Level %d", index+1)
	}
	love := personalTemplates[index%len(personalTemplates)](cfg.Sender, cfg.Recipient)

	n := 0
	for _, i := range stickies {
		n++
		var gen Note
		if i == personal {
			gen = love
		} else {
			at := noteTimes[(n-1)%len(noteTimes)]
			date := fmt.Sprintf("%02d.%02d.2026", (n*3)%25+3, (n*2)%12+1)
			gen = officeTemplates[(n-1)%len(officeTemplates)](at, date, n, name)
		}

		it := lvl.Items[i]
		notes[i] = Note{Title: it.Title, Text: it.Note}
		if notes[i].Title == "" {
			notes[i].Title = gen.Title
		}
		if notes[i].Text == "" {
			notes[i].Text = gen.Text
		}
		if notes[i].Title == "" {
			notes[i].Title = defaultNoteTitle
		}
	}
	return notes
}
