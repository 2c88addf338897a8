package core

// Action is a semantic input the platform delivers to games. Keys are mapped
// to actions by the platform, so games never see raw key names.
type Action uint8

const (
	ActionNone    Action = iota
	ActionUp             // aim up, menu cursor up
	ActionDown           // aim down, menu cursor down
	ActionLeft           // previous page, scene cursor left
	ActionRight          // next page, scene cursor right
	ActionFire           // start or release a charge
	ActionConfirm        // select, or click at the scene cursor
	ActionBack           // leave the current screen
	ActionRestart        // rematch after game over
	ActionQuit           // end the session
	ActionPause          // toggle pause
	ActionReset          // wipe saved progress (asks twice)
	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "Fire",
	"Confirm", "Back", "Restart", "Quit", "Pause", "Reset",
}

func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// PointerKind distinguishes mouse events.
type PointerKind int

const (
	PointerMove    PointerKind = iota // moved, no button change
	PointerPress                      // primary button down
	PointerRelease                    // primary button up
	PointerLeave                      // left the play area
)

// PointerEvent is a mouse event in screen cell coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
}

// InputFrame is everything one player did during a single tick: the set of
// triggered actions plus pointer events, oldest first.
type InputFrame struct {
	actions uint32
	Pointer []PointerEvent
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame { return InputFrame{} }

// Set marks a as triggered this tick.
func (f *InputFrame) Set(a Action) {
	if a != ActionNone && a < actionCount {
		f.actions |= 1 << a
	}
}

// Has reports whether a was triggered this tick.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.actions&(1<<a) != 0
}

// Empty reports whether the frame carries no actions and no pointer events.
func (f InputFrame) Empty() bool {
	return f.actions == 0 && len(f.Pointer) == 0
}

func (f *InputFrame) AddPointer(ev PointerEvent) {
	f.Pointer = append(f.Pointer, ev)
}

// Clear empties the frame for reuse. The pointer slice keeps its capacity.
func (f *InputFrame) Clear() {
	f.actions = 0
	f.Pointer = f.Pointer[:0]
}

// Clone returns a copy that does not share the pointer slice.
func (f InputFrame) Clone() InputFrame {
	out := InputFrame{actions: f.actions}
	if len(f.Pointer) > 0 {
		out.Pointer = append([]PointerEvent(nil), f.Pointer...)
	}
	return out
}
