// Package artillery implements a turn-based 2D artillery duel.
//
// Two fighters stand at the edges of a scrolling field and lob bouncing
// projectiles at each other. The player charges a shot by holding the
// mouse button (or Space), the computer opponent answers after a short
// think. Optional mechanics, a mid-field power-up and destructible box
// towers, are switched on through the features section of the config.
package artillery

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/siege-arcade/internal/config"
	"github.com/vovakirdan/siege-arcade/internal/core"
	"github.com/vovakirdan/siege-arcade/internal/multiplayer"
	"github.com/vovakirdan/siege-arcade/internal/registry"
)

// Phase is the turn/input state of a match.
type Phase int

const (
	PhaseSelect           Phase = iota // Picking fighters
	PhaseAim                           // Turn holder is aiming
	PhaseCharging                      // Turn holder is holding a charge
	PhaseInFlight                      // A human shot is flying, turn already flipped
	PhaseOpponentThinking              // Computer is waiting before its shot
	PhaseOpponentFire                  // Computer has fired, turn flips back shortly
	PhaseOver                          // One side is out of hit points
)

func (p Phase) String() string {
	switch p {
	case PhaseSelect:
		return "select"
	case PhaseAim:
		return "aim"
	case PhaseCharging:
		return "charging"
	case PhaseInFlight:
		return "in-flight"
	case PhaseOpponentThinking:
		return "opponent-thinking"
	case PhaseOpponentFire:
		return "opponent-fire"
	case PhaseOver:
		return "game-over"
	default:
		return "unknown"
	}
}

const (
	minScreenW = 40
	minScreenH = 16
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// matchMode selects who controls the second fighter
var matchMode multiplayer.MatchMode

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetMode sets the match mode used by the next Reset.
func SetMode(mode multiplayer.MatchMode) {
	matchMode = mode
}

// Outcome summarizes a finished or abandoned match.
type Outcome struct {
	Mode       multiplayer.MatchMode
	Player     string // Fighter names
	Opponent   string
	Winner     string // Empty when abandoned
	PlayerHP   int
	OpponentHP int
	Shots      int
	Reason     multiplayer.EndReason
	Duration   time.Duration // Simulated match time
}

// Game implements the artillery duel.
type Game struct {
	mode       multiplayer.MatchMode
	runtime    core.RuntimeConfig
	cfg        config.ArtilleryConfig
	difficulty *config.DifficultyManager
	ai         *opponentAI
	rng        *rand.Rand
	sched      *core.Scheduler
	tick       time.Duration

	// Fighter selection
	picks     [2]int // Roster indices for player and opponent; -1 unset
	cursor    int
	selecting multiplayer.PlayerID

	phase       Phase
	turn        multiplayer.PlayerID
	player      *Character
	opponent    *Character
	projectiles []*Projectile
	active      *Projectile // Projectile the camera follows
	power       PowerUp
	boxes       []*Box
	bonus       map[multiplayer.PlayerID]BoxType
	camera      Camera
	aim         map[multiplayer.PlayerID]float64
	chargeStart time.Duration

	banner     bool
	bannerTask core.TaskID

	winner      *Character
	shots       int
	damageDealt int // By the player
	score       int
	ticks       int
	matchStart  time.Duration
	outcome     *Outcome

	paused         bool
	screenTooSmall bool
	sounds         []core.SoundCue
	mirrored       map[string]*core.Sprite

	settings *matchSettings // Per-instance override of the package settings
}

type matchSettings struct {
	mode   multiplayer.MatchMode
	preset config.DifficultyPreset
}

// New creates a new artillery duel.
func New() *Game {
	return &Game{picks: [2]int{-1, -1}}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "artillery"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Siege Duel"
}

// Assets lists the sprites the duel draws. Fighter art is required; the
// rest falls back to plain glyphs.
func (g *Game) Assets() []core.AssetRef {
	refs := make([]core.AssetRef, 0, len(Roster)+8)
	for _, f := range Roster {
		refs = append(refs, core.AssetRef{Name: SpriteName(f.ID), Required: true})
	}
	refs = append(refs, core.AssetRef{Name: "powerup"}, core.AssetRef{Name: boxSprite(BoxMystery)})
	for _, t := range specialBoxTypes {
		refs = append(refs, core.AssetRef{Name: boxSprite(t)}, core.AssetRef{Name: projectileSprite(t)})
	}
	return refs
}

// Configure fixes the match mode and difficulty for this instance,
// overriding SetMode and SetDifficultyPreset. SSH sessions use it so
// concurrent players do not share settings.
func (g *Game) Configure(mode multiplayer.MatchMode, preset config.DifficultyPreset) {
	g.settings = &matchSettings{mode: mode, preset: preset}
}

// Reset loads the config and starts over. Fighters picked in a previous
// round are kept, so a restart after game over is an immediate rematch.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadArtillery(configPath)
	if err != nil {
		cfg = config.DefaultArtilleryConfig()
	}
	mode, preset := matchMode, difficultyPreset
	if g.settings != nil {
		mode, preset = g.settings.mode, g.settings.preset
	}
	if preset != "" {
		config.ApplyArtilleryPreset(&cfg, preset)
	}
	g.cfg = cfg
	g.mode = mode

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.ai = &opponentAI{cfg: cfg.Opponent, difficulty: g.difficulty, rng: g.rng}
	if g.sched == nil {
		g.sched = core.NewScheduler()
	} else {
		g.sched.Reset()
	}
	g.tick = core.TickDuration(runtime.TickRate)
	g.paused = false
	g.outcome = nil
	g.Resize(runtime.ScreenW, runtime.ScreenH)

	if g.picks[0] >= 0 && g.picks[1] >= 0 {
		g.startMatch()
	} else {
		g.enterSelect()
	}
}

// Resize updates the screen size without touching the match.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < minScreenW || h < minScreenH
}

// enterSelect drops any match and shows the fighter picker.
func (g *Game) enterSelect() {
	g.sched.CancelAll()
	g.phase = PhaseSelect
	g.picks = [2]int{-1, -1}
	g.selecting = SidePlayer
	g.cursor = 0
	g.player, g.opponent = nil, nil
	g.projectiles = nil
	g.active = nil
	g.boxes = nil
	g.power = PowerUp{}
	g.banner = false
	g.winner = nil
}

// pick assigns a roster entry to the side currently choosing.
func (g *Game) pick(index int) {
	if index < 0 || index >= len(Roster) {
		return
	}
	if g.selecting == SidePlayer {
		g.picks[0] = index
		if g.mode == multiplayer.MatchModeHotSeat {
			g.selecting = SideOpponent
			g.cursor = (index + 1) % len(Roster)
			return
		}
		g.picks[1] = g.randomOpponent(index)
	} else {
		if index == g.picks[0] {
			return
		}
		g.picks[1] = index
	}
	g.startMatch()
}

// randomOpponent picks any roster entry other than exclude.
func (g *Game) randomOpponent(exclude int) int {
	if len(Roster) < 2 {
		return exclude
	}
	r := g.rng.Intn(len(Roster) - 1)
	if r >= exclude {
		r++
	}
	return r
}

// startMatch places the fighters and resets every piece of match state.
func (g *Game) startMatch() {
	g.sched.CancelAll()

	w, h := g.cfg.World.Width, g.cfg.World.Height
	cw, ch := g.cfg.Character.Width, g.cfg.Character.Height
	pad := g.cfg.World.EdgePadding
	y := h - ch - g.cfg.World.GroundOffset

	pf, of := Roster[g.picks[0]], Roster[g.picks[1]]
	g.player = &Character{
		ID: pf.ID, Name: pf.Name, Side: SidePlayer,
		Rect: core.RectF{X: pad, Y: y, W: cw, H: ch},
		HP:   g.cfg.Character.HP, hitAge: -1,
	}
	g.opponent = &Character{
		ID: of.ID, Name: of.Name, Side: SideOpponent,
		Rect: core.RectF{X: w - cw - pad, Y: y, W: cw, H: ch},
		HP:   g.cfg.Character.HP, hitAge: -1,
	}

	g.projectiles = nil
	g.active = nil
	g.power = PowerUp{}
	g.boxes = nil
	if g.cfg.Features.BoxTowers {
		g.boxes = buildTowers(g.player, g.opponent, g.groundY(), g.cfg.Towers, g.rng)
	}
	g.bonus = make(map[multiplayer.PlayerID]BoxType)
	g.aim = map[multiplayer.PlayerID]float64{
		SidePlayer:   -math.Pi / 4,
		SideOpponent: -3 * math.Pi / 4,
	}

	g.turn = SidePlayer
	g.phase = PhaseAim
	g.banner = false
	g.winner = nil
	g.shots = 0
	g.damageDealt = 0
	g.score = 0
	g.ticks = 0
	g.matchStart = g.sched.Now()

	mid := (g.player.Center().X + g.opponent.Center().X) / 2
	g.camera = Camera{X: w/2 - mid, Smoothing: g.cfg.Camera.Smoothing}

	g.emit(core.SoundCue{Kind: core.SoundMusic, Name: pf.Theme})
}

// Step advances the duel by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return g.result()
	}

	switch g.phase {
	case PhaseSelect:
		g.stepSelect(in)
		return g.result()
	case PhaseOver:
		if in.Has(core.ActionRestart) {
			g.startMatch()
		} else if in.Has(core.ActionBack) {
			g.enterSelect()
		}
		return g.result()
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	if in.Has(core.ActionBack) && g.phase != PhaseCharging {
		g.abandon()
		return g.result()
	}

	g.handleInput(in)
	g.ticks++

	hitTicks := g.ticksFor(g.cfg.Character.HitMS)
	g.player.tick(hitTicks)
	g.opponent.tick(hitTicks)

	g.updateCamera()
	g.updateProjectiles()
	if g.phase != PhaseOver && len(g.boxes) > 0 {
		settleBoxes(g.boxes, g.groundY(), g.cfg.Towers)
		enforceBoxTypes(g.boxes, g.rng)
	}

	if g.phase == PhaseInFlight && g.active == nil {
		if g.humanControls(g.turn) {
			g.phase = PhaseAim
		} else {
			g.phase = PhaseOpponentThinking
		}
	}

	g.sched.Advance(g.tick)
	return g.result()
}

func (g *Game) stepSelect(in core.InputFrame) {
	n := len(Roster)
	if in.Has(core.ActionLeft) || in.Has(core.ActionUp) {
		g.cursor = (g.cursor - 1 + n) % n
	}
	if in.Has(core.ActionRight) || in.Has(core.ActionDown) {
		g.cursor = (g.cursor + 1) % n
	}
	for _, ev := range in.Pointer {
		idx := cardAt(g.runtime.ScreenW, g.runtime.ScreenH, ev.X, ev.Y)
		if idx < 0 {
			continue
		}
		g.cursor = idx
		if ev.Kind == core.PointerPress {
			g.pick(idx)
			return
		}
	}
	if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
		g.pick(g.cursor)
	}
}

// humanControls reports whether input drives the given side.
func (g *Game) humanControls(side multiplayer.PlayerID) bool {
	return side == SidePlayer || g.mode == multiplayer.MatchModeHotSeat
}

// handleInput applies aim and charge input for the turn holder.
func (g *Game) handleInput(in core.InputFrame) {
	for _, ev := range in.Pointer {
		switch ev.Kind {
		case core.PointerMove:
			g.aimAt(ev.X, ev.Y)
		case core.PointerPress:
			g.aimAt(ev.X, ev.Y)
			g.startCharge()
		case core.PointerRelease:
			g.aimAt(ev.X, ev.Y)
			g.release()
		case core.PointerLeave:
			g.cancelCharge()
		}
	}

	if in.Has(core.ActionUp) {
		g.nudgeAim(-1)
	}
	if in.Has(core.ActionDown) {
		g.nudgeAim(1)
	}
	if in.Has(core.ActionFire) {
		if g.phase == PhaseCharging {
			g.release()
		} else {
			g.startCharge()
		}
	}
	if in.Has(core.ActionBack) {
		g.cancelCharge()
	}
}

// controlling reports whether the turn holder is human and may act now.
func (g *Game) controlling() bool {
	return (g.phase == PhaseAim || g.phase == PhaseCharging) && g.humanControls(g.turn)
}

// aimAt points the turn holder at a screen cell.
func (g *Game) aimAt(x, y int) {
	if !g.controlling() {
		return
	}
	target := g.screenToWorld(x, y)
	g.aim[g.turn] = target.Sub(g.character(g.turn).Center()).Angle()
}

// nudgeAim rotates the turn holder's aim by one step; negative raises it.
func (g *Game) nudgeAim(dir float64) {
	if !g.controlling() {
		return
	}
	if g.turn == SideOpponent {
		dir = -dir
	}
	g.aim[g.turn] += dir * g.cfg.Charge.AimStep
}

func (g *Game) startCharge() {
	if g.phase != PhaseAim || !g.humanControls(g.turn) {
		return
	}
	g.phase = PhaseCharging
	g.chargeStart = g.sched.Now()
}

func (g *Game) cancelCharge() {
	if g.phase == PhaseCharging {
		g.phase = PhaseAim
	}
}

// ChargeRatio returns the current charge, 0 when not charging.
func (g *Game) ChargeRatio() float64 {
	if g.phase != PhaseCharging {
		return 0
	}
	return ChargeRatio(g.sched.Now()-g.chargeStart, g.maxCharge())
}

func (g *Game) maxCharge() time.Duration {
	return time.Duration(g.cfg.Charge.MaxMS) * time.Millisecond
}

// release fires the charged shot and flips the turn.
func (g *Game) release() {
	if g.phase != PhaseCharging {
		return
	}
	side := g.turn
	g.fire(side, g.aim[side], ShotFor(g.ChargeRatio(), g.cfg.Charge))

	g.turn = side.Other()
	g.phase = PhaseInFlight
	if !g.humanControls(g.turn) {
		g.scheduleOpponent()
	}
}

// fire launches a projectile for side, consuming any box bonus it holds.
func (g *Game) fire(side multiplayer.PlayerID, angle float64, shot Shot) {
	p := launch(g.character(side), angle, shot, g.cfg.Physics)
	if t, ok := g.bonus[side]; ok {
		p.Skin = t
		if m := g.cfg.Towers.Multipliers[t.String()]; m > 0 {
			p.Multiplier = m
		}
		delete(g.bonus, side)
	}
	g.projectiles = append(g.projectiles, p)
	g.active = p
	g.shots++
	g.emit(core.Cue(core.SoundFire))
}

// scheduleOpponent queues the computer's shot and the hand-back of the
// turn. Both tasks check their token so nothing fires after game over.
func (g *Game) scheduleOpponent() {
	delay := g.ai.thinkDelay(g.shots, g.ticks)
	g.sched.After(delay, func(tok core.Token) {
		if tok.Cancelled() || g.phase == PhaseOver || g.turn != SideOpponent {
			return
		}
		angle := g.ai.aim(g.opponent, g.player, g.shots, g.ticks)
		g.aim[SideOpponent] = angle
		g.fire(SideOpponent, angle, ShotFor(g.ai.charge(g.shots, g.ticks), g.cfg.Charge))
		g.phase = PhaseOpponentFire

		g.sched.After(g.ai.turnDelay(), func(tok core.Token) {
			if tok.Cancelled() || g.phase == PhaseOver {
				return
			}
			g.turn = SidePlayer
			g.phase = PhaseAim
		})
	})
}

// updateCamera follows the active projectile, or the turn holder when
// nothing is flying.
func (g *Game) updateCamera() {
	w := g.cfg.World.Width
	var targetX, viewX float64
	switch {
	case g.active != nil && !g.active.Spent():
		targetX, viewX = g.active.Pos.X, w/2
	case g.turn == SidePlayer:
		targetX, viewX = g.player.Center().X, w/3
	default:
		targetX, viewX = g.opponent.Center().X, w*2/3
	}
	minX, maxX := worldExtents(g.player, g.opponent, g.boxes)
	g.camera.Follow(desiredOffset(targetX, viewX, minX, maxX, w))
}

// updateProjectiles integrates every projectile, resolves collisions and
// drops the spent ones.
func (g *Game) updateProjectiles() {
	groundY := g.groundY()
	kept := g.projectiles[:0]
	for _, p := range g.projectiles {
		if g.phase == PhaseOver {
			kept = append(kept, p)
			continue
		}

		integrate(p, g.cfg.Physics.Gravity)
		if outOfPlay(p, g.camera.X, g.cfg.World.Width, g.cfg.World.Height) {
			if !p.Struck {
				g.spawnPowerUp()
			}
			p.finish()
		} else {
			g.collide(p, groundY)
		}

		if p.Spent() {
			if g.active == p {
				g.active = nil
			}
			continue
		}
		kept = append(kept, p)
	}
	g.projectiles = kept
}

// targets lists what a projectile can collide with, in priority order.
func (g *Game) targets(p *Projectile) []Entity {
	ents := []Entity{g.character(p.Owner.Other())}
	for _, b := range g.boxes {
		if b.Active {
			ents = append(ents, b)
		}
	}
	if g.power.Active {
		ents = append(ents, &g.power)
	}
	return ents
}

func (g *Game) collide(p *Projectile, groundY float64) {
	for _, e := range g.targets(p) {
		if !core.CircleIntersectsRect(p.Pos, p.Radius, e.Bounds()) {
			continue
		}
		switch t := e.(type) {
		case *Character:
			if t.InHitState() {
				continue
			}
			g.hit(p, t)
			return
		case *Box:
			g.breakBox(p, t)
			return
		case *PowerUp:
			t.Active = false
			p.Empowered = true
			g.emit(core.Cue(core.SoundPowerUp))
		}
	}

	switch groundCollide(p, groundY, g.cfg.Physics) {
	case groundBounce:
		g.emit(core.Cue(core.SoundBounce))
	case groundSettle, groundStop:
		if !p.Struck {
			g.spawnPowerUp()
		}
	}
}

// hit applies a projectile's damage to a character.
func (g *Game) hit(p *Projectile, target *Character) {
	damage := p.hitDamage(g.cfg.PowerUp.Multiplier)
	if p.Empowered {
		g.showBanner()
	}
	target.TakeDamage(damage)
	if p.Owner == SidePlayer {
		g.damageDealt += damage
	}
	p.Struck = true
	p.finish()
	g.emit(core.Cue(core.SoundHit))
	g.checkGameOver()
}

// breakBox destroys a box. A near-full-power shot earns its owner the
// box's bonus for the next shot.
func (g *Game) breakBox(p *Projectile, b *Box) {
	b.Active = false
	p.Struck = true
	p.finish()
	g.emit(core.Cue(core.SoundBoxBreak))
	if p.Ratio >= g.cfg.Towers.PowerThreshold && b.Type != BoxMystery {
		g.bonus[p.Owner] = b.Type
		g.emit(core.Cue(core.SoundPowerUp))
	}
}

// spawnPowerUp places the power-up between the fighters if none is out.
func (g *Game) spawnPowerUp() {
	if !g.cfg.Features.PowerUps || g.power.Active {
		return
	}
	size := g.cfg.PowerUp.Size
	mid := (g.player.Center().X + g.opponent.Center().X) / 2
	g.power = PowerUp{
		Rect:   core.RectF{X: mid - size/2, Y: g.cfg.World.Height/2 - size/2, W: size, H: size},
		Active: true,
	}
}

func (g *Game) showBanner() {
	g.banner = true
	g.sched.Cancel(g.bannerTask)
	g.bannerTask = g.sched.After(time.Duration(g.cfg.PowerUp.BannerMS)*time.Millisecond, func(tok core.Token) {
		if tok.Cancelled() {
			return
		}
		g.banner = false
	})
}

// checkGameOver ends the match once a side has no hit points left.
func (g *Game) checkGameOver() {
	var winner *Character
	switch {
	case !g.player.Alive():
		winner = g.opponent
	case !g.opponent.Alive():
		winner = g.player
	default:
		return
	}

	g.phase = PhaseOver
	g.winner = winner
	g.active = nil
	g.banner = false
	g.sched.CancelAll()

	g.score = g.damageDealt
	if winner == g.player {
		g.score += g.player.HP
	}

	g.emit(core.Cue(core.SoundMusicStop))
	if winner == g.player || g.mode == multiplayer.MatchModeHotSeat {
		g.emit(core.Cue(core.SoundWin))
	} else {
		g.emit(core.Cue(core.SoundLose))
	}
	g.record(multiplayer.EndCompleted)
}

// abandon leaves the match for the fighter picker.
func (g *Game) abandon() {
	if g.shots > 0 {
		g.record(multiplayer.EndAbandoned)
	}
	g.emit(core.Cue(core.SoundMusicStop))
	g.enterSelect()
}

func (g *Game) record(reason multiplayer.EndReason) {
	o := &Outcome{
		Mode:       g.mode,
		Player:     g.player.Name,
		Opponent:   g.opponent.Name,
		PlayerHP:   g.player.HP,
		OpponentHP: g.opponent.HP,
		Shots:      g.shots,
		Reason:     reason,
		Duration:   g.sched.Now() - g.matchStart,
	}
	if g.winner != nil {
		o.Winner = g.winner.Name
	}
	g.outcome = o
}

// TakeOutcome returns the result of the last match once.
func (g *Game) TakeOutcome() (Outcome, bool) {
	if g.outcome == nil {
		return Outcome{}, false
	}
	o := *g.outcome
	g.outcome = nil
	return o, true
}

func (g *Game) character(side multiplayer.PlayerID) *Character {
	if side == SideOpponent {
		return g.opponent
	}
	return g.player
}

func (g *Game) groundY() float64 {
	return g.cfg.World.Height - g.cfg.World.GroundOffset
}

// ticksFor converts milliseconds into whole frames, rounding up.
func (g *Game) ticksFor(ms int) int {
	if g.tick <= 0 {
		return 0
	}
	d := time.Duration(ms) * time.Millisecond
	return int((d + g.tick - 1) / g.tick)
}

func (g *Game) emit(cue core.SoundCue) {
	g.sounds = append(g.sounds, cue)
}

func (g *Game) result() core.StepResult {
	sounds := g.sounds
	g.sounds = nil
	return core.StepResult{State: g.State(), Sounds: sounds}
}

// Phase returns the current turn/input state.
func (g *Game) Phase() Phase {
	return g.phase
}

// Turn returns the side whose turn it is.
func (g *Game) Turn() multiplayer.PlayerID {
	return g.turn
}

// Fighters returns the two characters, nil while picking.
func (g *Game) Fighters() (*Character, *Character) {
	return g.player, g.opponent
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := g.damageDealt
	if g.phase == PhaseOver {
		score = g.score
	}
	return core.GameState{
		Score:    score,
		GameOver: g.phase == PhaseOver,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("artillery", func() registry.Game {
		return New()
	})
}
