package engine

import "fmt"

// parseGrid reads a 4x5 layout: '.' is an open cell, '1'-'6' a value
// restriction and R Y G B P a colour restriction.
func parseGrid(rows ...string) ([][]Cell, error) {
	grid := make([][]Cell, len(rows))
	for r, row := range rows {
		grid[r] = make([]Cell, 0, len(row))
		for _, ch := range row {
			var cell Cell
			switch {
			case ch == '.':
			case ch >= '1' && ch <= '6':
				cell = ValueCell(int(ch - '0'))
			case ch == 'R':
				cell = ColourCell(ColourRed)
			case ch == 'Y':
				cell = ColourCell(ColourYellow)
			case ch == 'G':
				cell = ColourCell(ColourGreen)
			case ch == 'B':
				cell = ColourCell(ColourBlue)
			case ch == 'P':
				cell = ColourCell(ColourPurple)
			default:
				return nil, fmt.Errorf("unknown cell %q", ch)
			}
			grid[r] = append(grid[r], cell)
		}
	}
	return grid, nil
}

// ParsePattern builds a pattern from the compact row notation.
func ParsePattern(name string, difficulty int, rows ...string) (Pattern, error) {
	grid, err := parseGrid(rows...)
	if err != nil {
		return Pattern{}, fmt.Errorf("pattern %q: %w", name, err)
	}
	return NewPattern(name, difficulty, grid)
}

func mustPattern(name string, difficulty int, rows ...string) Pattern {
	p, err := ParsePattern(name, difficulty, rows...)
	if err != nil {
		panic(err)
	}
	return p
}

// BasePatterns returns the built-in window patterns.
func BasePatterns() []Pattern {
	return []Pattern{
		mustPattern("Aurorae Magnificus", 5, "5GBP2", "P...Y", "Y.6.P", "1..G4"),
		mustPattern("Bellesguard", 3, "B6..Y", ".3B..", ".562.", ".41G."),
		mustPattern("Chromatic Splendor", 4, "..G..", "2Y5B1", ".R3P.", "1.6.4"),
		mustPattern("Comitas", 5, "Y.2.6", ".4.5Y", "...Y5", "12Y3."),
		mustPattern("Firmitas", 5, "P5..3", "5P...", "25P..", "6.5P."),
		mustPattern("Fractal Drops", 3, ".4.Y6", "R.2..", "..RP1", "BY..."),
		mustPattern("Gravitas", 5, "1.3B.", ".2B..", "6B.4.", "B52.1"),
		mustPattern("Industria", 5, "1R3.6", "54R2.", "..5R1", "...3R"),
		mustPattern("Kaleidoscopic Dream", 4, "YB..1", "G.5.4", "3.R.G", "2..BY"),
		mustPattern("Lux Astram", 5, ".1GP4", "6P25G", "1G53P", "....."),
		mustPattern("Shadow Thief", 5, "6P..5", "5.P..", "R6.P.", "YR543"),
		mustPattern("Via Lux", 4, "Y.6..", ".15.2", "3YRP.", "..43R"),
	}
}
