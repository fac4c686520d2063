package core

import "fmt"

// ---- Team ----

// Team identifies who controls a unit
type Team uint8

const (
	TeamPlayer Team = iota
	TeamAI
)

func (t Team) String() string {
	switch t {
	case TeamPlayer:
		return "player"
	case TeamAI:
		return "ai"
	}
	return fmt.Sprintf("team(%d)", uint8(t))
}

// ParseTeam maps a config name to a Team
func ParseTeam(s string) (Team, error) {
	switch s {
	case "player":
		return TeamPlayer, nil
	case "ai":
		return TeamAI, nil
	}
	return 0, fmt.Errorf("unknown team %q", s)
}

// ---- State ----

// Mode is the core unit state. Attacking units may also be chasing
// (moving toward their target); Action marks a committed one-shot clip.
type Mode uint8

const (
	ModeIdle Mode = iota
	ModeMoving
	ModeAttacking
	ModeDead
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeMoving:
		return "moving"
	case ModeAttacking:
		return "attacking"
	case ModeDead:
		return "dead"
	}
	return "unknown"
}

// ---- Animation ----

// Clip names an animation
type Clip uint8

const (
	ClipIdle Clip = iota
	ClipMove
	ClipAttack
	ClipDie
)

var clipNames = [...]string{"idle", "move", "attack", "die"}

func (c Clip) String() string {
	if int(c) < len(clipNames) {
		return clipNames[c]
	}
	return "unknown"
}

// ParseClip maps a config name to a Clip
func ParseClip(s string) (Clip, error) {
	for i, n := range clipNames {
		if n == s {
			return Clip(i), nil
		}
	}
	return 0, fmt.Errorf("unknown clip %q", s)
}

// Looping reports whether the clip wraps around. Attack and die are one-shot.
func (c Clip) Looping() bool { return c == ClipIdle || c == ClipMove }

// ClipSet maps clip -> frame count
type ClipSet map[Clip]int

// DefaultClips are the frame counts of the robot model
func DefaultClips() ClipSet {
	return ClipSet{ClipIdle: 60, ClipMove: 24, ClipAttack: 20, ClipDie: 40}
}

// Frames returns the frame count of c, at least 1
func (cs ClipSet) Frames(c Clip) int {
	if n := cs[c]; n > 0 {
		return n
	}
	return 1
}

// AnimState is the selected clip and its frame counter
type AnimState struct {
	Clip  Clip
	Frame int
}
