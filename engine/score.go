package engine

import "strconv"

// LinesPerLevel is how many cleared lines advance the level by one.
const LinesPerLevel = 10

var lineRewards = [...]int{0, 40, 100, 300, 1200}

// Score is the scoring state of a game. Lines counts the lines cleared since
// the last level-up.
type Score struct {
	Total int `json:"total"`
	Level int `json:"level"`
	Lines int `json:"lines"`
}

// AddLines records n lines cleared in one lock. The level advances first, then
// the reward for n lines is granted at the new level. Counts outside 1..4 are
// rejected with CodeInvalidLineCount and leave s unchanged.
func (s *Score) AddLines(n int) error {
	if n < 1 || n >= len(lineRewards) {
		return NewError(CodeInvalidLineCount, "invalid line count").
			WithMetadata("lines", strconv.Itoa(n))
	}

	s.Lines += n
	for s.Lines >= LinesPerLevel {
		s.Lines -= LinesPerLevel
		s.Level++
	}
	s.Total += LineReward(n, s.Level)
	return nil
}

// AddDropBonus grants the single-step drop bonus.
func (s *Score) AddDropBonus() {
	s.Total += DropBonus(s.Level)
}

// LineReward returns the points for clearing n lines at level, or 0 when n is
// not in 1..4.
func LineReward(n, level int) int {
	if n < 1 || n >= len(lineRewards) {
		return 0
	}
	return lineRewards[n] * (level + 1)
}

// DropBonus returns the points a soft or hard drop earns at level.
func DropBonus(level int) int {
	return 2 * (level + 1)
}
