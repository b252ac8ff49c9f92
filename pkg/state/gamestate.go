package state

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPlayerNotFound is returned when a name was never part of the roster.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrInvalidRoster is returned for empty rosters or duplicate names.
	ErrInvalidRoster = errors.New("invalid roster")
)

// DefaultWolfCount is the number of werewolves in a standard game.
const DefaultWolfCount = 2

// RoleClaim is a player's most recent public role claim.
type RoleClaim struct {
	Role  Role `json:"role"`
	Round int  `json:"round"`
}

// AccusationKind records which statement produced an accusation cell.
type AccusationKind string

const (
	AccusationSuggested AccusationKind = "suggested"
	AccusationChecked   AccusationKind = "checked"
	AccusationSaved     AccusationKind = "saved"
)

// Accusation is what one player last said about another player.
// Only the latest statement per (accuser, accused) pair is kept.
type Accusation struct {
	Kind      AccusationKind `json:"kind"`
	Round     int            `json:"round"`
	Role      Role           `json:"role,omitempty"`
	Certainty Certainty      `json:"certainty,omitempty"`
}

// Kill is one night phase. Victim is empty when nobody died.
type Kill struct {
	Round  int    `json:"round"`
	Victim string `json:"victim,omitempty"`
}

// Lynch is one day-phase elimination and the role it revealed.
type Lynch struct {
	Round  int    `json:"round"`
	Victim string `json:"victim"`
	Role   Role   `json:"role"`
}

// SeerCheck is a result the moderator privately gave this agent.
type SeerCheck struct {
	Round  int    `json:"round"`
	Player string `json:"player"`
	IsGood bool   `json:"is_good"`
}

// GameState is the per-game ledger. Every per-player slice is indexed by
// roster position and always has len(Players) entries. Dead players stay
// on the roster and are only flagged.
type GameState struct {
	Players []string `json:"players"`
	Alive   []bool   `json:"alive"`

	WolfCount           int  `json:"wolf_count"`
	WolvesLeft          int  `json:"wolves_left"`
	DoctorConfirmedDead bool `json:"doctor_confirmed_dead"`
	SeerConfirmedDead   bool `json:"seer_confirmed_dead"`

	Votes          [][]string      `json:"votes"`
	RoleClaims     []*RoleClaim    `json:"role_claims"`
	RevealedRoles  []Role          `json:"revealed_roles"`
	Accusations    [][]*Accusation `json:"accusations"`
	SuspicionNotes [][]string      `json:"suspicion_notes"`

	KillHistory         []Kill  `json:"kill_history"`
	LynchHistory        []Lynch `json:"lynch_history"`
	PlayersLeftPerRound []int   `json:"players_left_per_round"` // index 0 is the start of the game
	Round               int     `json:"round"`

	// What the moderator told this agent privately.
	OwnRole       Role        `json:"own_role,omitempty"`
	PartnerWolves []string    `json:"partner_wolves,omitempty"`
	SeerChecks    []SeerCheck `json:"seer_checks,omitempty"`

	index map[string]int
}

// NewGameState builds an empty ledger for a fixed roster.
func NewGameState(players []string, wolfCount int) (*GameState, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: no players", ErrInvalidRoster)
	}
	if wolfCount <= 0 {
		wolfCount = DefaultWolfCount
	}

	n := len(players)
	gs := &GameState{
		Players:        make([]string, n),
		Alive:          make([]bool, n),
		WolfCount:      wolfCount,
		WolvesLeft:     wolfCount,
		Votes:          make([][]string, n),
		RoleClaims:     make([]*RoleClaim, n),
		RevealedRoles:  make([]Role, n),
		Accusations:    make([][]*Accusation, n),
		SuspicionNotes: make([][]string, n),
		KillHistory:    make([]Kill, 0),
		LynchHistory:   make([]Lynch, 0),
	}
	for i, p := range players {
		name := strings.TrimSpace(p)
		if name == "" {
			return nil, fmt.Errorf("%w: empty player name at position %d", ErrInvalidRoster, i)
		}
		gs.Players[i] = name
		gs.Alive[i] = true
		gs.Votes[i] = make([]string, 0)
		gs.Accusations[i] = make([]*Accusation, n)
		gs.SuspicionNotes[i] = make([]string, 0)
	}
	if err := gs.buildIndex(); err != nil {
		return nil, err
	}
	gs.PlayersLeftPerRound = []int{n}
	return gs, nil
}

func indexKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (gs *GameState) buildIndex() error {
	index := make(map[string]int, len(gs.Players))
	for i, p := range gs.Players {
		key := indexKey(p)
		if _, dup := index[key]; dup {
			return fmt.Errorf("%w: duplicate player %q", ErrInvalidRoster, p)
		}
		index[key] = i
	}
	gs.index = index
	return nil
}

// PlayerIndex maps a name to its roster position. Matching ignores case
// and surrounding whitespace.
func (gs *GameState) PlayerIndex(name string) (int, error) {
	if gs.index == nil {
		// Rebuilt lazily after JSON decoding.
		if err := gs.buildIndex(); err != nil {
			return -1, err
		}
	}
	i, ok := gs.index[indexKey(name)]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
	}
	return i, nil
}

// HasPlayer reports whether name is on the roster.
func (gs *GameState) HasPlayer(name string) bool {
	_, err := gs.PlayerIndex(name)
	return err == nil
}

// CanonicalName returns the roster spelling of name.
func (gs *GameState) CanonicalName(name string) (string, error) {
	i, err := gs.PlayerIndex(name)
	if err != nil {
		return "", err
	}
	return gs.Players[i], nil
}

// AliveCount is the roster size minus the players flagged dead.
func (gs *GameState) AliveCount() int {
	n := 0
	for _, alive := range gs.Alive {
		if alive {
			n++
		}
	}
	return n
}

// AlivePlayers returns the names of players still in the game, in roster order.
func (gs *GameState) AlivePlayers() []string {
	out := make([]string, 0, len(gs.Players))
	for i, p := range gs.Players {
		if i < len(gs.Alive) && gs.Alive[i] {
			out = append(out, p)
		}
	}
	return out
}

// IsAlive reports whether the named player is still alive.
func (gs *GameState) IsAlive(name string) (bool, error) {
	i, err := gs.PlayerIndex(name)
	if err != nil {
		return false, err
	}
	return gs.Alive[i], nil
}
