package roster

import (
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	MinNumber = 0
	MaxNumber = 99

	// FirstNumber is handed out to the first player of an empty roster.
	FirstNumber = 4

	// NumberUnset marks legacy records that were stored without a jersey number.
	NumberUnset = -1
)

var (
	ErrInvalidNumber = errors.New("player number must be between 0 and 99")
	ErrEmptyName     = errors.New("name is required")
	ErrUnknownPlayer = errors.New("player is not on the roster")
)

// Player is one member of your team's roster.
type Player struct {
	ID     string
	Name   string
	Number int
}

// Team is your team together with its ordered roster.
type Team struct {
	ID      string
	Name    string
	Players []Player
}

// OpponentTeam carries no roster, only a display name.
type OpponentTeam struct {
	Name string
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.Wrap(ErrEmptyName, "player")
	}
	if p.Number < MinNumber || p.Number > MaxNumber {
		return errors.Wrapf(ErrInvalidNumber, "player %s has number %d", p.ID, p.Number)
	}

	return nil
}

// Clone returns a deep copy so callers can mutate players freely.
func (t Team) Clone() Team {
	copied := t
	copied.Players = append([]Player(nil), t.Players...)
	return copied
}

func (t Team) Player(id string) (Player, bool) {
	for _, p := range t.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

func (t Team) HasPlayer(id string) bool {
	_, ok := t.Player(id)
	return ok
}

// PlayerIDs returns roster ids in roster order.
func (t Team) PlayerIDs() []string {
	out := make([]string, 0, len(t.Players))
	for _, p := range t.Players {
		out = append(out, p.ID)
	}
	return out
}

// NextNumber returns max(existing numbers, 3)+1, so an empty roster starts at 4.
func NextNumber(players []Player) int {
	highest := FirstNumber - 1
	for _, p := range players {
		if p.Number > highest {
			highest = p.Number
		}
	}
	return highest + 1
}

// AssignMissingNumbers gives every player stored without a number the value 4+index.
// It reports whether anything changed so callers know to persist the migration.
func AssignMissingNumbers(players []Player) ([]Player, bool) {
	out := make([]Player, len(players))
	changed := false
	for i, p := range players {
		if p.Number == NumberUnset {
			p.Number = FirstNumber + i
			changed = true
		}
		out[i] = p
	}
	return out, changed
}

func ValidateNumber(number int) error {
	if number < MinNumber || number > MaxNumber {
		return errors.Wrapf(ErrInvalidNumber, "got %d", number)
	}
	return nil
}
