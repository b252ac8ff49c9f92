package state

import "strings"

// Role is a Werewolf role, or an alignment when a player only says "good".
type Role string

const (
	RoleUnknown  Role = ""
	RoleVillager Role = "villager"
	RoleDoctor   Role = "doctor"
	RoleSeer     Role = "seer"
	RoleWolf     Role = "wolf"
	RoleGood     Role = "good"
)

var roleSynonyms = map[string]Role{
	"villager":   RoleVillager,
	"villagers":  RoleVillager,
	"doctor":     RoleDoctor,
	"doc":        RoleDoctor,
	"seer":       RoleSeer,
	"wolf":       RoleWolf,
	"werewolf":   RoleWolf,
	"wolves":     RoleWolf,
	"werewolves": RoleWolf,
	"good":       RoleGood,
	"innocent":   RoleGood,
}

// ParseRole normalises free text from the LLM into a Role. Unrecognised
// roles are kept, lowercased, so nothing the model said is lost.
func ParseRole(s string) Role {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "the ")
	s = strings.TrimPrefix(s, "a ")
	if r, ok := roleSynonyms[s]; ok {
		return r
	}
	return Role(s)
}

// Article returns the role with an indefinite article for narration.
func (r Role) Article() string {
	if r == RoleUnknown {
		return "an unknown role"
	}
	switch string(r)[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an " + string(r)
	}
	return "a " + string(r)
}

// Certainty is how sure a player said they were about another player's role.
type Certainty string

const (
	CertaintyGuess     Certainty = "guess"
	CertaintyConfident Certainty = "confident"
)

// ParseCertainty collapses the model's confidence wording into the closed set.
func ParseCertainty(s string) Certainty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "confident", "high", "certain", "sure", "definitely", "very high", "absolute":
		return CertaintyConfident
	default:
		return CertaintyGuess
	}
}
