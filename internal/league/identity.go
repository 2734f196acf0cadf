package league

import (
	"fmt"
	"sort"

	"github.com/albapepper/league-history/internal/provider/sleeper"
)

// ResolveIdentities maps each platform user id in one season's user list to a
// single display name.
//
// Precedence per user: alias table entry whose value matches the user id
// (case-sensitive, looked up by value so several alias keys may share an id),
// then the season's custom team name, then the platform display name, then a
// first-name fallback, then a synthesized placeholder. The alias table is
// global across seasons, so an aliased manager keeps one canonical name no
// matter how they rename themselves in-platform.
//
// The function is pure: the same (users, aliases) input always yields the
// same mapping. When several alias keys point at one id, the
// lexicographically smallest key wins, which keeps the choice deterministic
// across map iteration orders.
func ResolveIdentities(users []sleeper.User, aliases map[string]string) map[string]string {
	byID := make(map[string]string, len(aliases))
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, name := range keys {
		id := aliases[name]
		if _, taken := byID[id]; !taken {
			byID[id] = name
		}
	}

	identities := make(map[string]string, len(users))
	for _, u := range users {
		identities[u.UserID] = resolveDisplayName(u, byID)
	}
	return identities
}

func resolveDisplayName(u sleeper.User, aliasByID map[string]string) string {
	if name, ok := aliasByID[u.UserID]; ok {
		return name
	}
	if u.Metadata.TeamName != "" {
		return u.Metadata.TeamName
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.Metadata.FirstName != "" {
		return u.Metadata.FirstName
	}
	return fmt.Sprintf("User %s", u.UserID)
}
