package ray

import (
	"fmt"
	"strings"
)

// Mode selects how crossings are merged into a cell
type Mode uint8

const (
	LinesOnly  Mode = iota // line glyphs and intersections
	BlocksOnly             // every visit thickens a block
	Mixed                  // lines escalate into blocks under contention
)

var modeNames = [...]string{
	LinesOnly:  "lines",
	BlocksOnly: "blocks",
	Mixed:      "mixed",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode accepts the names printed by String, case-insensitively
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lines", "line":
		return LinesOnly, nil
	case "blocks", "block":
		return BlocksOnly, nil
	case "mixed", "mix":
		return Mixed, nil
	}
	return LinesOnly, fmt.Errorf("unknown mode %q (want lines, blocks or mixed)", s)
}
