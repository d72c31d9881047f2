package tier

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidLadder = errors.New("invalid tier ladder")

// Band maps every count up to and including Upto onto Tier.
type Band struct {
	Upto int `yaml:"upto" json:"upto"`
	Tier int `yaml:"tier" json:"tier"`
}

// Ladder is an ordered list of bands. A count selects the first band whose
// Upto is >= count; counts past the last band clamp to the last tier.
type Ladder []Band

// Single is the ladder of a game without difficulty progression.
func Single() Ladder {
	return Ladder{{Upto: 0, Tier: 1}}
}

// TierFor returns the tier selected by n. An empty ladder is tier 1.
func (l Ladder) TierFor(n int) int {
	if len(l) == 0 {
		return 1
	}
	for _, b := range l {
		if n <= b.Upto {
			return b.Tier
		}
	}
	return l[len(l)-1].Tier
}

// Max is the highest tier reachable on this ladder.
func (l Ladder) Max() int {
	if len(l) == 0 {
		return 1
	}
	return l[len(l)-1].Tier
}

// Validate rejects ladders whose bands overlap or whose tiers do not grow
// with the band index.
func (l Ladder) Validate() error {
	if len(l) == 0 {
		return fmt.Errorf("%w: no bands", ErrInvalidLadder)
	}
	var errs []string
	if l[0].Upto < 0 {
		errs = append(errs, "bands[0].upto must be >= 0")
	}
	if l[0].Tier < 1 {
		errs = append(errs, "bands[0].tier must be >= 1")
	}
	for i := 1; i < len(l); i++ {
		if l[i].Upto <= l[i-1].Upto {
			errs = append(errs, fmt.Sprintf("bands[%d].upto must be > bands[%d].upto", i, i-1))
		}
		if l[i].Tier <= l[i-1].Tier {
			errs = append(errs, fmt.Sprintf("bands[%d].tier must be > bands[%d].tier", i, i-1))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidLadder, strings.Join(errs, "; "))
	}
	return nil
}
