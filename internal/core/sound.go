package core

// Sound identifies a sound effect the platform should play.
type Sound int

const (
	SoundNone      Sound = iota
	SoundFire            // Projectile launched
	SoundHit             // Projectile hit a character
	SoundBounce          // Projectile bounced off the ground
	SoundPowerUp         // Power-up collected or empowered hit
	SoundBoxBreak        // Tower box destroyed
	SoundPop             // Hidden item collected
	SoundWin             // Match or level won
	SoundLose            // Match lost
	SoundClip            // Named clip (cutscene voice, item sample)
	SoundMusic           // Start looping the named music track
	SoundMusicStop       // Stop any looping music
)

// String returns a short name for the sound.
func (s Sound) String() string {
	switch s {
	case SoundFire:
		return "fire"
	case SoundHit:
		return "hit"
	case SoundBounce:
		return "bounce"
	case SoundPowerUp:
		return "powerup"
	case SoundBoxBreak:
		return "box"
	case SoundPop:
		return "pop"
	case SoundWin:
		return "win"
	case SoundLose:
		return "lose"
	case SoundClip:
		return "clip"
	case SoundMusic:
		return "music"
	case SoundMusicStop:
		return "music-stop"
	default:
		return "none"
	}
}

// SoundCue is a single request to the audio layer.
// Name is only meaningful for SoundClip and SoundMusic.
type SoundCue struct {
	Kind Sound
	Name string
}

// Cue is shorthand for a SoundCue without a name.
func Cue(kind Sound) SoundCue {
	return SoundCue{Kind: kind}
}
