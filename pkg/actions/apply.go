package actions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/werewolf-agent/pkg/state"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ModeratorName is the sender name the host game runner uses for the moderator.
const ModeratorName = "Moderator"

// NormalizeSender title-cases a sender name the way the host runner's
// names are compared ("moderator" and "MODERATOR" are the same sender).
func NormalizeSender(sender string) string {
	return cases.Title(language.English).String(strings.TrimSpace(sender))
}

// IsModerator reports whether the sender is the game moderator.
func IsModerator(sender string) bool {
	return NormalizeSender(sender) == ModeratorName
}

var noVictim = map[string]bool{
	"":            true,
	"none":        true,
	"null":        true,
	"nobody":      true,
	"no one":      true,
	"no-one":      true,
	"player name": true,
}

// Apply updates the ledger with one action received from sender.
//
// For player-channel actions the sender is the acting player whenever it
// is on the roster; the record's own field is only used otherwise.
// Moderator-only actions from anyone else are not applied and are noted as
// suspicious instead. Unknown kinds are ignored.
func Apply(gs *state.GameState, sender string, a Action) error {
	if gs == nil {
		return errors.New("nil game state")
	}
	sender = NormalizeSender(sender)
	moderator := sender == ModeratorName

	var errs []error
	if a.Kind.ModeratorOnly() && !moderator {
		errs = append(errs, gs.PlayerSuspiciousAction(sender,
			fmt.Sprintf("Player tried to announce a moderator-only event (%s).", a.Kind)))
	} else if err := applyKind(gs, sender, a); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", a.Kind, err))
	}

	if a.Suspicious != nil && a.Suspicious.Flagged && !moderator {
		if err := gs.PlayerSuspiciousAction(sender, a.Suspicious.Note()); err != nil {
			errs = append(errs, fmt.Errorf("suspicious: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ApplyAll applies every action, continuing past failures. The returned
// error joins each per-action failure.
func ApplyAll(gs *state.GameState, sender string, actions []Action) error {
	var errs []error
	for _, a := range actions {
		if err := Apply(gs, sender, a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func actor(gs *state.GameState, sender, field string) string {
	if gs.HasPlayer(sender) {
		return sender
	}
	return field
}

func applyKind(gs *state.GameState, sender string, a Action) error {
	switch a.Kind {
	case KindNightPhaseDeath:
		victim := a.PlayerName
		if noVictim[strings.ToLower(victim)] {
			victim = ""
		}
		return gs.RecordNightPhaseDeath(victim)
	case KindLynch:
		return gs.RecordLynch(a.PlayerName, state.ParseRole(a.PlayerRole))
	case KindInitRole:
		gs.InitRole(state.ParseRole(a.PlayerRole))
		return nil
	case KindCheck:
		return gs.RecordCheck(a.CheckedPlayerName, a.IsGood)
	case KindPartnerWolf:
		return gs.InitPartnerWolf(a.PlayerName)

	case KindVote:
		return gs.RecordVote(actor(gs, sender, a.FromPlayerName), a.VotedPlayerName)
	case KindClaimSeer:
		return gs.ClaimSeer(actor(gs, sender, a.PlayerName))
	case KindClaimDoctor:
		return gs.ClaimDoctor(actor(gs, sender, a.PlayerName))
	case KindClaimChecked:
		return gs.ClaimChecked(actor(gs, sender, a.PlayerName), a.PlayerCheckedName,
			state.ParseRole(a.PlayerRole), a.RoundChecked)
	case KindClaimSaved:
		return gs.ClaimSaved(actor(gs, sender, a.PlayerName), a.SavedPlayerName, a.RoundSaved)
	case KindSuggests:
		return gs.PlayerSuggests(actor(gs, sender, a.PlayerName), a.PlayerSuggestedName,
			state.ParseRole(a.SuggestedRole), state.ParseCertainty(a.Certainty))
	}
	return nil
}
