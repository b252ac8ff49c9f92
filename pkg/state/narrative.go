package state

import (
	"fmt"
	"strings"
)

// Narrate flattens the ledger into plain sentences for the next prompt.
// Sections with nothing to say are skipped, and per-player slices that
// are shorter than the roster (e.g. a hand-edited snapshot) are read only
// as far as they go.
func Narrate(gs *GameState) []string {
	if gs == nil || len(gs.Players) == 0 {
		return nil
	}

	sections := []func(*GameState) []string{
		narrateRoster,
		narrateSelf,
		narrateClaims,
		narrateVotes,
		narrateAccusations,
		narrateSuspicion,
		narrateKills,
		narrateLynches,
		narrateConfirmedDead,
		narratePopulation,
	}

	var out []string
	for _, section := range sections {
		out = append(out, section(gs)...)
	}
	return out
}

// NarrativeText joins the narrative into a single block.
func NarrativeText(gs *GameState) string {
	return strings.Join(Narrate(gs), "\n")
}

func playerAt(gs *GameState, i int) (string, bool) {
	if i < 0 || i >= len(gs.Players) {
		return "", false
	}
	return gs.Players[i], true
}

func narrateRoster(gs *GameState) []string {
	out := []string{
		fmt.Sprintf("There are %d players in the game, with %d werewolves among them.", len(gs.Players), gs.WolfCount),
		fmt.Sprintf("The players are: %s.", strings.Join(gs.Players, ", ")),
	}
	if alive := gs.AlivePlayers(); len(alive) > 0 && len(alive) < len(gs.Players) {
		out = append(out, fmt.Sprintf("The players still alive are: %s.", strings.Join(alive, ", ")))
	}
	if !gs.DoctorConfirmedDead && !gs.SeerConfirmedDead {
		out = append(out, "So far, no players were confirmed as the doctor or seer.")
	}
	return out
}

func narrateSelf(gs *GameState) []string {
	var out []string
	if gs.OwnRole != RoleUnknown {
		out = append(out, fmt.Sprintf("Your role is the %s.", gs.OwnRole))
	}
	if len(gs.PartnerWolves) > 0 {
		out = append(out, fmt.Sprintf("Your fellow werewolves are: %s.", strings.Join(gs.PartnerWolves, ", ")))
	}
	for _, c := range gs.SeerChecks {
		verdict := "a werewolf"
		if c.IsGood {
			verdict = "good"
		}
		out = append(out, fmt.Sprintf("You checked %s in round %d and found them to be %s.", c.Player, c.Round, verdict))
	}
	return out
}

func narrateClaims(gs *GameState) []string {
	var out []string
	for i, claim := range gs.RoleClaims {
		name, ok := playerAt(gs, i)
		if !ok || claim == nil {
			continue
		}
		out = append(out, fmt.Sprintf("In round %d, %s claimed to be the %s.", claim.Round, name, claim.Role))
	}
	return out
}

func narrateVotes(gs *GameState) []string {
	var out []string
	for i, votes := range gs.Votes {
		name, ok := playerAt(gs, i)
		if !ok {
			continue
		}
		for n, vote := range votes {
			if vote == "" {
				vote = "an unclear target"
			}
			out = append(out, fmt.Sprintf("In vote %d, %s voted to eliminate %s.", n+1, name, vote))
		}
	}
	return out
}

func narrateAccusations(gs *GameState) []string {
	var out []string
	for i, row := range gs.Accusations {
		accuser, ok := playerAt(gs, i)
		if !ok {
			continue
		}
		for j, a := range row {
			accused, ok := playerAt(gs, j)
			if !ok || a == nil {
				continue
			}
			switch a.Kind {
			case AccusationChecked:
				out = append(out, fmt.Sprintf("%s claimed to have checked %s in round %d and found them to be %s.",
					accuser, accused, a.Round, a.Role.Article()))
			case AccusationSaved:
				out = append(out, fmt.Sprintf("%s claimed to have saved %s in round %d.", accuser, accused, a.Round))
			default:
				certainty := a.Certainty
				if certainty == "" {
					certainty = CertaintyConfident
				}
				out = append(out, fmt.Sprintf("In round %d, %s accused %s of being %s with %s certainty.",
					a.Round, accuser, accused, a.Role.Article(), certainty))
			}
		}
	}
	return out
}

func narrateSuspicion(gs *GameState) []string {
	var out []string
	for i, notes := range gs.SuspicionNotes {
		name, ok := playerAt(gs, i)
		if !ok {
			continue
		}
		for _, note := range notes {
			if note == "" {
				continue
			}
			out = append(out, fmt.Sprintf("%s was noted to have a suspicious attempt: %s.", name, strings.TrimRight(note, ".")))
		}
	}
	return out
}

func narrateKills(gs *GameState) []string {
	var out []string
	for _, k := range gs.KillHistory {
		if k.Victim == "" {
			out = append(out, fmt.Sprintf("In round %d, no one was killed during the night.", k.Round))
			continue
		}
		out = append(out, fmt.Sprintf("In round %d, the werewolves killed %s.", k.Round, k.Victim))
	}
	return out
}

func narrateLynches(gs *GameState) []string {
	var out []string
	for _, l := range gs.LynchHistory {
		if l.Role == RoleUnknown {
			out = append(out, fmt.Sprintf("In round %d, the players voted to lynch %s.", l.Round, l.Victim))
			continue
		}
		out = append(out, fmt.Sprintf("In round %d, the players voted to lynch %s, who was revealed to be %s.",
			l.Round, l.Victim, l.Role.Article()))
	}
	return out
}

func narrateConfirmedDead(gs *GameState) []string {
	var out []string
	if gs.SeerConfirmedDead {
		out = append(out, "The seer was confirmed dead.")
	}
	if gs.DoctorConfirmedDead {
		out = append(out, "The doctor was confirmed dead.")
	}
	if len(gs.LynchHistory) > 0 || len(gs.KillHistory) > 0 {
		out = append(out, fmt.Sprintf("There are %d werewolves left.", gs.WolvesLeft))
	}
	return out
}

func narratePopulation(gs *GameState) []string {
	if len(gs.PlayersLeftPerRound) < 2 {
		return nil
	}
	out := make([]string, 0, len(gs.PlayersLeftPerRound))
	for round, left := range gs.PlayersLeftPerRound {
		out = append(out, fmt.Sprintf("At the start of round %d, there were %d players left.", round, left))
	}
	return out
}
