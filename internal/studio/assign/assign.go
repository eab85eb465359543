// Package assign maps narrative roles and podcast speakers onto voice
// profiles. All assignment is deterministic: the same role against the same
// ordered pool yields the same voice on every run.
package assign

import (
	"errors"
	"strings"

	"rawistudio/internal/domain/voice"
	"rawistudio/internal/studio/script"
)

var ErrEmptyPool = errors.New("voice pool is empty")

// Role assigns a voice name to a role. Prior assignments from the same
// distribution pass always win, keeping repeated roles on one voice.
// Narrator roles prefer literary/documentary profiles; any other role hashes
// its characters into the pool. Collisions are fine: the contract is
// stability, not uniform spread.
func Role(role string, pool []voice.Profile, prior map[string]string) (string, error) {
	if len(pool) == 0 {
		return "", ErrEmptyPool
	}
	if name, ok := prior[role]; ok {
		return name, nil
	}

	var chosen voice.Profile
	if isNarrator(role) {
		chosen = pool[0]
		for _, p := range pool {
			if p.Category == voice.CategoryNovels || p.Category == voice.CategoryDoc {
				chosen = p
				break
			}
		}
	} else {
		chosen = pool[roleHash(role)%len(pool)]
	}

	if prior != nil {
		prior[role] = chosen.Name
	}
	return chosen.Name, nil
}

func isNarrator(role string) bool {
	return strings.Contains(role, "الراوي") ||
		strings.Contains(strings.ToLower(role), "narrator")
}

// roleHash sums the role's character codes.
func roleHash(role string) int {
	sum := 0
	for _, r := range role {
		sum += int(r)
	}
	return sum
}

// Speakers computes a speakerID→voiceID map for podcast distribution.
// Existing entries are preserved; new speakers filter the pool by gender,
// then by category hint (falling back to the gender matches), and prefer
// voices no other speaker holds yet. Once the matching pool is exhausted the
// first match is reused.
func Speakers(speakers []script.Speaker, pool []voice.Profile, existing map[string]string) (map[string]string, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	out := make(map[string]string, len(speakers))
	used := make(map[string]bool)
	for id, vid := range existing {
		out[id] = vid
		used[vid] = true
	}

	for _, s := range speakers {
		if _, ok := out[s.ID]; ok {
			continue
		}

		var matches []voice.Profile
		for _, p := range pool {
			if s.Gender == voice.Any || p.Gender == s.Gender {
				matches = append(matches, p)
			}
		}
		best := matches
		if s.CategoryHint != "" {
			var hinted []voice.Profile
			for _, p := range matches {
				if p.Category == s.CategoryHint {
					hinted = append(hinted, p)
				}
			}
			if len(hinted) > 0 {
				best = hinted
			}
		}
		if len(best) == 0 {
			best = pool
		}

		selected := best[0]
		for _, p := range best {
			if !used[p.ID] {
				selected = p
				break
			}
		}
		out[s.ID] = selected.ID
		used[selected.ID] = true
	}

	return out, nil
}
