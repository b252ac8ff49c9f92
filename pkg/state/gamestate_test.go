package state

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, players ...string) *GameState {
	t.Helper()
	gs, err := NewGameState(players, 2)
	require.NoError(t, err)
	return gs
}

func TestNewGameState(t *testing.T) {
	tests := []struct {
		name    string
		players []string
		wolves  int
		wantErr error
	}{
		{name: "three players", players: []string{"Alice", "Bob", "Charlie"}, wolves: 1},
		{name: "default wolves", players: []string{"Alice", "Bob"}, wolves: 0},
		{name: "empty roster", players: nil, wantErr: ErrInvalidRoster},
		{name: "blank name", players: []string{"Alice", " "}, wantErr: ErrInvalidRoster},
		{name: "duplicate names", players: []string{"Alice", "alice"}, wantErr: ErrInvalidRoster},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs, err := NewGameState(tt.players, tt.wolves)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, gs)
				return
			}
			require.NoError(t, err)

			n := len(tt.players)
			assert.Len(t, gs.Alive, n)
			assert.Len(t, gs.Votes, n)
			assert.Len(t, gs.RoleClaims, n)
			assert.Len(t, gs.RevealedRoles, n)
			assert.Len(t, gs.Accusations, n)
			assert.Len(t, gs.SuspicionNotes, n)
			for _, row := range gs.Accusations {
				assert.Len(t, row, n)
			}
			assert.Equal(t, []int{n}, gs.PlayersLeftPerRound)
			assert.Equal(t, n, gs.AliveCount())
			if tt.wolves == 0 {
				assert.Equal(t, DefaultWolfCount, gs.WolvesLeft)
			}
		})
	}
}

func TestGameState_PlayerIndex(t *testing.T) {
	gs := newTestGame(t, "Alice", "Bob", "Charlie")

	i, err := gs.PlayerIndex("Bob")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	i, err = gs.PlayerIndex("  charlie ")
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	_, err = gs.PlayerIndex("Mallory")
	assert.True(t, errors.Is(err, ErrPlayerNotFound))
}

func TestGameState_NightAndLynchScenario(t *testing.T) {
	gs := newTestGame(t, "Alice", "Bob", "Charlie")

	require.NoError(t, gs.RecordNightPhaseDeath("Bob"))
	assert.Equal(t, []bool{true, false, true}, gs.Alive)
	assert.Equal(t, 1, gs.Round)
	assert.Equal(t, []Kill{{Round: 1, Victim: "Bob"}}, gs.KillHistory)
	assert.Equal(t, []int{3, 2}, gs.PlayersLeftPerRound)

	wolvesBefore := gs.WolvesLeft
	require.NoError(t, gs.RecordLynch("Charlie", RoleWolf))
	assert.Equal(t, []bool{true, false, false}, gs.Alive)
	assert.Equal(t, wolvesBefore-1, gs.WolvesLeft)
	require.Len(t, gs.LynchHistory, 1)
	assert.Equal(t, "Charlie", gs.LynchHistory[0].Victim)
	assert.Equal(t, RoleWolf, gs.RevealedRoles[2])
	assert.Equal(t, 1, gs.AliveCount())
}

func TestGameState_RecordNightPhaseDeath(t *testing.T) {
	t.Run("no kill still advances the round", func(t *testing.T) {
		gs := newTestGame(t, "Alice", "Bob")
		require.NoError(t, gs.RecordNightPhaseDeath(""))
		require.NoError(t, gs.RecordNightPhaseDeath(""))
		assert.Equal(t, 2, gs.Round)
		assert.Equal(t, []Kill{{Round: 1}, {Round: 2}}, gs.KillHistory)
		assert.Equal(t, 2, gs.AliveCount())
	})

	t.Run("unknown victim leaves the ledger untouched", func(t *testing.T) {
		gs := newTestGame(t, "Alice", "Bob")
		err := gs.RecordNightPhaseDeath("Mallory")
		assert.ErrorIs(t, err, ErrPlayerNotFound)
		assert.Equal(t, 0, gs.Round)
		assert.Empty(t, gs.KillHistory)
	})

	t.Run("alive count never goes negative", func(t *testing.T) {
		gs := newTestGame(t, "Alice")
		require.NoError(t, gs.RecordNightPhaseDeath("Alice"))
		require.NoError(t, gs.RecordNightPhaseDeath("Alice"))
		require.NoError(t, gs.RecordLynch("Alice", RoleVillager))
		assert.Equal(t, 0, gs.AliveCount())
		assert.Equal(t, []int{1, 0, 0}, gs.PlayersLeftPerRound)
	})
}

func TestGameState_RecordLynch(t *testing.T) {
	tests := []struct {
		name       string
		role       Role
		wantDoctor bool
		wantSeer   bool
		wantWolves int
	}{
		{name: "wolf", role: RoleWolf, wantWolves: 1},
		{name: "doctor", role: RoleDoctor, wantDoctor: true, wantWolves: 2},
		{name: "seer", role: RoleSeer, wantSeer: true, wantWolves: 2},
		{name: "villager", role: RoleVillager, wantWolves: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := newTestGame(t, "Alice", "Bob", "Charlie")
			require.NoError(t, gs.RecordLynch("Alice", tt.role))
			assert.Equal(t, tt.wantDoctor, gs.DoctorConfirmedDead)
			assert.Equal(t, tt.wantSeer, gs.SeerConfirmedDead)
			assert.Equal(t, tt.wantWolves, gs.WolvesLeft)
			assert.False(t, gs.Alive[0])
		})
	}

	t.Run("lynching a dead wolf twice counts once", func(t *testing.T) {
		gs := newTestGame(t, "Alice", "Bob")
		require.NoError(t, gs.RecordLynch("Alice", RoleWolf))
		require.NoError(t, gs.RecordLynch("Alice", RoleWolf))
		assert.Equal(t, 1, gs.WolvesLeft)
	})
}

func TestGameState_RecordVote(t *testing.T) {
	gs := newTestGame(t, "Alice", "Bob", "Charlie")

	require.NoError(t, gs.RecordVote("Alice", "bob"))
	require.NoError(t, gs.RecordVote("Alice", "Charlie"))
	require.NoError(t, gs.RecordVote("Bob", "Zed the Unknown"))

	assert.Equal(t, []string{"Bob", "Charlie"}, gs.Votes[0])
	assert.Equal(t, []string{"Zed the Unknown"}, gs.Votes[1])
	assert.Empty(t, gs.Votes[2])

	assert.ErrorIs(t, gs.RecordVote("Mallory", "Alice"), ErrPlayerNotFound)
}

func TestGameState_RoleClaims(t *testing.T) {
	gs := newTestGame(t, "Alice", "Bob")

	require.NoError(t, gs.ClaimSeer("Alice"))
	require.NoError(t, gs.RecordNightPhaseDeath(""))
	require.NoError(t, gs.ClaimDoctor("Alice"))

	require.NotNil(t, gs.RoleClaims[0])
	assert.Equal(t, RoleClaim{Role: RoleDoctor, Round: 1}, *gs.RoleClaims[0])
	assert.Nil(t, gs.RoleClaims[1])
	assert.ErrorIs(t, gs.ClaimSeer("Mallory"), ErrPlayerNotFound)
}

func TestGameState_AccusationsOverwrite(t *testing.T) {
	gs := newTestGame(t, "Alice", "Bob", "Charlie")

	require.NoError(t, gs.PlayerSuggests("Alice", "Bob", RoleWolf, CertaintyGuess))
	require.NoError(t, gs.PlayerSuggests("Alice", "Bob", RoleSeer, CertaintyConfident))

	cell := gs.Accusations[0][1]
	require.NotNil(t, cell)
	assert.Equal(t, Accusation{Kind: AccusationSuggested, Round: 0, Role: RoleSeer, Certainty: CertaintyConfident}, *cell)

	require.NoError(t, gs.ClaimChecked("Alice", "Bob", RoleWolf, 3))
	assert.Equal(t, Accusation{Kind: AccusationChecked, Round: 3, Role: RoleWolf, Certainty: CertaintyConfident}, *gs.Accusations[0][1])

	require.NoError(t, gs.ClaimSaved("Charlie", "Alice", 2))
	assert.Equal(t, AccusationSaved, gs.Accusations[2][0].Kind)
	assert.Equal(t, 2, gs.Accusations[2][0].Round)

	assert.Nil(t, gs.Accusations[1][0])
	assert.ErrorIs(t, gs.PlayerSuggests("Alice", "Mallory", RoleWolf, CertaintyGuess), ErrPlayerNotFound)
}

func TestGameState_PlayerSuspiciousAction(t *testing.T) {
	gs := newTestGame(t, "Alice", "Bob")

	require.NoError(t, gs.PlayerSuspiciousAction("Bob", "pretended to be the moderator"))
	require.NoError(t, gs.PlayerSuspiciousAction("Bob", ""))

	assert.Equal(t, []string{"pretended to be the moderator", "unspecified suspicious behavior"}, gs.SuspicionNotes[1])
	assert.Empty(t, gs.SuspicionNotes[0])
}

func TestGameState_SelfKnowledge(t *testing.T) {
	gs := newTestGame(t, "Alice", "Bob", "Charlie")

	gs.InitRole(RoleSeer)
	require.NoError(t, gs.RecordCheck("charlie", false))
	require.NoError(t, gs.InitPartnerWolf("Bob"))
	require.NoError(t, gs.InitPartnerWolf("bob"))

	assert.Equal(t, RoleSeer, gs.OwnRole)
	assert.Equal(t, []SeerCheck{{Round: 0, Player: "Charlie", IsGood: false}}, gs.SeerChecks)
	assert.Equal(t, []string{"Bob"}, gs.PartnerWolves)
	assert.ErrorIs(t, gs.RecordCheck("Mallory", true), ErrPlayerNotFound)
}

func TestGameState_JSONRoundTripRebuildsIndex(t *testing.T) {
	gs := newTestGame(t, "Alice", "Bob")
	require.NoError(t, gs.RecordNightPhaseDeath("Alice"))

	data, err := json.Marshal(gs)
	require.NoError(t, err)

	var decoded GameState
	require.NoError(t, json.Unmarshal(data, &decoded))

	i, err := decoded.PlayerIndex("Bob")
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.Equal(t, 1, decoded.AliveCount())
}

func TestParseRole(t *testing.T) {
	tests := map[string]Role{
		"Werewolf":  RoleWolf,
		" wolf ":    RoleWolf,
		"The Seer":  RoleSeer,
		"Doctor":    RoleDoctor,
		"villager":  RoleVillager,
		"good":      RoleGood,
		"":          RoleUnknown,
		"Alchemist": Role("alchemist"),
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseRole(in), "ParseRole(%q)", in)
	}
}

func TestParseCertainty(t *testing.T) {
	assert.Equal(t, CertaintyConfident, ParseCertainty("High"))
	assert.Equal(t, CertaintyConfident, ParseCertainty("confident"))
	assert.Equal(t, CertaintyGuess, ParseCertainty("maybe"))
	assert.Equal(t, CertaintyGuess, ParseCertainty(""))
}
