package actions

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the "action" tag the classifier prompts ask the model to emit.
type Kind string

// Moderator channel.
const (
	KindNightPhaseDeath Kind = "record_night_phase_death"
	KindLynch           Kind = "record_lynch"
	KindInitRole        Kind = "init_role"
	KindCheck           Kind = "record_check"
	KindPartnerWolf     Kind = "init_partner_wolf"
)

// Player channel.
const (
	KindVote         Kind = "record_vote"
	KindClaimSeer    Kind = "claim_seer"
	KindClaimDoctor  Kind = "claim_doctor"
	KindClaimChecked Kind = "claim_checked"
	KindClaimSaved   Kind = "claim_saved"
	KindSuggests     Kind = "player_suggests"
)

// ModeratorOnly reports whether only the moderator may announce this kind.
func (k Kind) ModeratorOnly() bool {
	switch k {
	case KindNightPhaseDeath, KindLynch, KindInitRole, KindCheck, KindPartnerWolf:
		return true
	}
	return false
}

// Suspicion is the optional manipulation flag attached to a player message.
type Suspicion struct {
	Flagged bool   `json:"flagged"`
	Summary string `json:"summary,omitempty"`
	Details string `json:"details,omitempty"`
}

// Note is the text recorded against the player.
func (s *Suspicion) Note() string {
	if s.Summary != "" {
		return s.Summary
	}
	return s.Details
}

// Action is one structured record recovered from classifier output. Field
// names match the JSON keys in the classifier prompts.
type Action struct {
	Kind Kind `json:"action,omitempty"`

	PlayerName string `json:"player_name,omitempty"`
	PlayerRole string `json:"player_role,omitempty"`

	CheckedPlayerName string `json:"checked_player_name,omitempty"`
	IsGood            bool   `json:"is_good,omitempty"`

	FromPlayerName  string `json:"from_player_name,omitempty"`
	VotedPlayerName string `json:"voted_player_name,omitempty"`

	PlayerCheckedName string `json:"player_checked_name,omitempty"`
	RoundChecked      int    `json:"round_checked,omitempty"`

	SavedPlayerName string `json:"saved_player_name,omitempty"`
	RoundSaved      int    `json:"round_saved,omitempty"`

	PlayerSuggestedName string `json:"player_suggested_name,omitempty"`
	SuggestedRole       string `json:"suggested_role,omitempty"`
	Certainty           string `json:"certainty,omitempty"`

	Suspicious *Suspicion `json:"suspicious,omitempty"`
}

// Decode turns a value from ParseJSON into actions. A single object yields
// at most one action and a list yields one per object element. Objects
// with neither an action tag nor a suspicion flag are dropped.
func Decode(v any) []Action {
	var out []Action
	switch t := v.(type) {
	case map[string]any:
		if a, ok := fromMap(t); ok {
			out = append(out, a)
		}
	case []any:
		for _, item := range t {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if a, ok := fromMap(m); ok {
				out = append(out, a)
			}
		}
	}
	return out
}

func fromMap(m map[string]any) (Action, bool) {
	a := Action{
		Kind:                Kind(strings.ToLower(strings.TrimSpace(str(m["action"])))),
		PlayerName:          str(m["player_name"]),
		PlayerRole:          str(m["player_role"]),
		CheckedPlayerName:   str(m["checked_player_name"]),
		IsGood:              boolean(m["is_good"]),
		FromPlayerName:      str(m["from_player_name"]),
		VotedPlayerName:     str(m["voted_player_name"]),
		PlayerCheckedName:   str(m["player_checked_name"]),
		RoundChecked:        integer(m["round_checked"]),
		SavedPlayerName:     str(m["saved_player_name"]),
		RoundSaved:          integer(m["round_saved"]),
		PlayerSuggestedName: str(m["player_suggested_name"]),
		SuggestedRole:       str(m["suggested_role"]),
		Certainty:           str(m["certainty"]),
		Suspicious:          suspicion(m["suspicious"]),
	}
	return a, a.Kind != "" || a.Suspicious != nil
}

func suspicion(v any) *Suspicion {
	switch t := v.(type) {
	case map[string]any:
		flagged := true
		if f, ok := t["flagged"]; ok {
			flagged = boolean(f)
		}
		if !flagged {
			return nil
		}
		return &Suspicion{Flagged: true, Summary: str(t["summary"]), Details: str(t["details"])}
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		return &Suspicion{Flagged: true, Summary: t}
	case bool:
		if t {
			return &Suspicion{Flagged: true}
		}
	}
	return nil
}

func str(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

var firstInt = regexp.MustCompile(`-?\d+`)

func integer(v any) int {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return int(t)
	case string:
		if n, err := strconv.Atoi(firstInt.FindString(t)); err == nil {
			return n
		}
	}
	return 0
}

func boolean(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "good", "1":
			return true
		}
	}
	return false
}
