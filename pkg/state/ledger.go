package state

import "strings"

// markDead flags a player dead and reports whether they were alive before.
func (gs *GameState) markDead(i int) bool {
	if !gs.Alive[i] {
		return false
	}
	gs.Alive[i] = false
	return true
}

// RecordNightPhaseDeath closes a night phase. An empty name means the
// werewolves killed nobody. The round counter advances either way.
func (gs *GameState) RecordNightPhaseDeath(playerName string) error {
	victim := ""
	if strings.TrimSpace(playerName) != "" {
		i, err := gs.PlayerIndex(playerName)
		if err != nil {
			return err
		}
		victim = gs.Players[i]
		gs.markDead(i)
	}

	gs.Round++
	gs.KillHistory = append(gs.KillHistory, Kill{Round: gs.Round, Victim: victim})
	gs.PlayersLeftPerRound = append(gs.PlayersLeftPerRound, gs.AliveCount())
	return nil
}

// RecordLynch records a day-phase elimination and the role it revealed.
func (gs *GameState) RecordLynch(playerName string, role Role) error {
	i, err := gs.PlayerIndex(playerName)
	if err != nil {
		return err
	}

	gs.LynchHistory = append(gs.LynchHistory, Lynch{Round: gs.Round, Victim: gs.Players[i], Role: role})
	gs.RevealedRoles[i] = role
	wasAlive := gs.markDead(i)

	switch role {
	case RoleWolf:
		if wasAlive && gs.WolvesLeft > 0 {
			gs.WolvesLeft--
		}
	case RoleDoctor:
		gs.DoctorConfirmedDead = true
	case RoleSeer:
		gs.SeerConfirmedDead = true
	}
	return nil
}

// RecordVote appends one vote to the voter's history. The target is not
// checked against the roster: a garbled vote is still a vote.
func (gs *GameState) RecordVote(fromPlayer, votedPlayer string) error {
	i, err := gs.PlayerIndex(fromPlayer)
	if err != nil {
		return err
	}
	target := strings.TrimSpace(votedPlayer)
	if name, err := gs.CanonicalName(target); err == nil {
		target = name
	}
	gs.Votes[i] = append(gs.Votes[i], target)
	return nil
}

func (gs *GameState) claimRole(playerName string, role Role) error {
	i, err := gs.PlayerIndex(playerName)
	if err != nil {
		return err
	}
	gs.RoleClaims[i] = &RoleClaim{Role: role, Round: gs.Round}
	return nil
}

// ClaimSeer overwrites the player's current role claim.
func (gs *GameState) ClaimSeer(playerName string) error {
	return gs.claimRole(playerName, RoleSeer)
}

// ClaimDoctor overwrites the player's current role claim.
func (gs *GameState) ClaimDoctor(playerName string) error {
	return gs.claimRole(playerName, RoleDoctor)
}

func (gs *GameState) setAccusation(source, target string, a Accusation) error {
	i, err := gs.PlayerIndex(source)
	if err != nil {
		return err
	}
	j, err := gs.PlayerIndex(target)
	if err != nil {
		return err
	}
	if a.Round <= 0 {
		a.Round = gs.Round
	}
	gs.Accusations[i][j] = &a
	return nil
}

// ClaimChecked records that playerName says they checked another player as seer.
func (gs *GameState) ClaimChecked(playerName, checkedName string, role Role, roundChecked int) error {
	return gs.setAccusation(playerName, checkedName, Accusation{
		Kind:      AccusationChecked,
		Round:     roundChecked,
		Role:      role,
		Certainty: CertaintyConfident,
	})
}

// ClaimSaved records that playerName says they protected another player as doctor.
func (gs *GameState) ClaimSaved(playerName, savedName string, roundSaved int) error {
	return gs.setAccusation(playerName, savedName, Accusation{
		Kind:      AccusationSaved,
		Round:     roundSaved,
		Certainty: CertaintyConfident,
	})
}

// PlayerSuggests records that playerName thinks another player has some role.
func (gs *GameState) PlayerSuggests(playerName, suggestedName string, role Role, certainty Certainty) error {
	if certainty == "" {
		certainty = CertaintyGuess
	}
	return gs.setAccusation(playerName, suggestedName, Accusation{
		Kind:      AccusationSuggested,
		Role:      role,
		Certainty: certainty,
	})
}

// PlayerSuspiciousAction appends a note about manipulative behaviour.
func (gs *GameState) PlayerSuspiciousAction(playerName, note string) error {
	i, err := gs.PlayerIndex(playerName)
	if err != nil {
		return err
	}
	note = strings.TrimSpace(note)
	if note == "" {
		note = "unspecified suspicious behavior"
	}
	gs.SuspicionNotes[i] = append(gs.SuspicionNotes[i], note)
	return nil
}

// InitRole stores the role the moderator assigned to this agent.
func (gs *GameState) InitRole(role Role) {
	gs.OwnRole = role
}

// RecordCheck stores a seer result the moderator gave this agent.
func (gs *GameState) RecordCheck(playerName string, isGood bool) error {
	name, err := gs.CanonicalName(playerName)
	if err != nil {
		return err
	}
	gs.SeerChecks = append(gs.SeerChecks, SeerCheck{Round: gs.Round, Player: name, IsGood: isGood})
	return nil
}

// InitPartnerWolf remembers a fellow werewolf revealed by the moderator.
func (gs *GameState) InitPartnerWolf(playerName string) error {
	name, err := gs.CanonicalName(playerName)
	if err != nil {
		return err
	}
	for _, p := range gs.PartnerWolves {
		if p == name {
			return nil
		}
	}
	gs.PartnerWolves = append(gs.PartnerWolves, name)
	return nil
}
