package scoringtypes

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrNotReady signals that some data a correct computation needs has not
// finished loading. Callers should keep their previous result rather than
// recompute from a partial snapshot.
var ErrNotReady = errors.New("game snapshot not ready")

// fingerprintHole is the scoring-relevant subset of a GameHole, in a shape
// that serializes deterministically.
type fingerprintHole struct {
	Hole    string            `json:"hole"`
	Teams   []fingerprintTeam `json:"teams,omitempty"`
	Options []fingerprintKV   `json:"options,omitempty"`
}

type fingerprintTeam struct {
	ID      string       `json:"id"`
	Rounds  []string     `json:"rounds"`
	Options []TeamOption `json:"options,omitempty"`
}

type fingerprintRound struct {
	ID       string          `json:"id"`
	PlayerID string          `json:"playerId"`
	Handicap int             `json:"handicap"`
	Scores   []fingerprintKV `json:"scores,omitempty"`
}

type fingerprintKV struct {
	Key   string          `json:"k"`
	Value json.RawMessage `json:"v"`
}

// Fingerprint computes a content hash of the scoring-relevant subset of the
// game graph: scores, team option lists, option values and overrides, team
// assignments. Two snapshots with equal fingerprints produce deep-equal
// scoreboards; callers memoize on it because the underlying graph may
// produce fresh object identities on every sync update.
func Fingerprint(g *Game) (string, error) {
	if err := CheckReady(g); err != nil {
		return "", err
	}

	payload := struct {
		GameID string             `json:"gameId"`
		Spec   []Option           `json:"spec"`
		Scope  GameScope          `json:"scope"`
		Holes  []fingerprintHole  `json:"holes"`
		Rounds []fingerprintRound `json:"rounds"`
	}{GameID: g.ID, Spec: g.Spec, Scope: g.Scope}

	for _, h := range g.Holes {
		fh := fingerprintHole{Hole: h.Hole}
		for _, t := range h.Teams {
			rounds := append([]string(nil), t.Rounds...)
			sort.Strings(rounds)
			fh.Teams = append(fh.Teams, fingerprintTeam{
				ID:      t.ID,
				Rounds:  rounds,
				Options: t.Options,
			})
		}
		var err error
		fh.Options, err = sortedKVs(h.Options)
		if err != nil {
			return "", err
		}
		payload.Holes = append(payload.Holes, fh)
	}

	for _, r := range g.Rounds {
		fr := fingerprintRound{ID: r.ID, PlayerID: r.PlayerID, Handicap: r.EffectiveHandicap()}
		var err error
		fr.Scores, err = sortedKVs(r.Scores)
		if err != nil {
			return "", err
		}
		payload.Rounds = append(payload.Rounds, fr)
	}
	sort.Slice(payload.Rounds, func(i, j int) bool { return payload.Rounds[i].ID < payload.Rounds[j].ID })

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("fingerprint marshal: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

func sortedKVs[V any](m map[string]V) ([]fingerprintKV, error) {
	if len(m) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]fingerprintKV, 0, len(keys))
	for _, k := range keys {
		raw, err := json.Marshal(m[k])
		if err != nil {
			return nil, err
		}
		out = append(out, fingerprintKV{Key: k, Value: raw})
	}
	return out, nil
}

// CheckReady reports ErrNotReady when the snapshot is missing data a correct
// computation requires: no spec loaded, no holes, a hole without its teams
// wired, or a player without a round record.
func CheckReady(g *Game) error {
	if g == nil {
		return fmt.Errorf("%w: nil game", ErrNotReady)
	}
	if len(g.Spec) == 0 {
		return fmt.Errorf("%w: spec not loaded", ErrNotReady)
	}
	if len(g.Holes) == 0 {
		return fmt.Errorf("%w: holes not loaded", ErrNotReady)
	}
	if len(g.Players) == 0 {
		return fmt.Errorf("%w: players not loaded", ErrNotReady)
	}
	for _, p := range g.Players {
		if g.Round(p.ID) == nil {
			return fmt.Errorf("%w: round for player %s not loaded", ErrNotReady, p.ID)
		}
	}
	return nil
}
