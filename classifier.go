package scriptweaver

import (
	"regexp"
	"strings"
)

// lineKind is the structural role of a single input line.
type lineKind int

const (
	lineBlank lineKind = iota
	lineDivider
	lineTableSeparator
	lineHeading
	lineNpcStatus
	lineDefinitionItem
	lineBulletItem
	lineTableRow
	lineDialogue
	linePlain
)

func (k lineKind) String() string {
	switch k {
	case lineBlank:
		return "blank"
	case lineDivider:
		return "divider"
	case lineTableSeparator:
		return "table-separator"
	case lineHeading:
		return "heading"
	case lineNpcStatus:
		return "npc-status"
	case lineDefinitionItem:
		return "definition-item"
	case lineBulletItem:
		return "bullet-item"
	case lineTableRow:
		return "table-row"
	case lineDialogue:
		return "dialogue"
	case linePlain:
		return "plain"
	}
	return "unknown"
}

// lineToken is the classification of one raw line.
type lineToken struct {
	kind  lineKind
	level int    // heading level, 1-based; zero otherwise
	text  string // trimmed line text
}

// Precompiled classification patterns.
var (
	// Divider: a line made of === or --- only (three or more).
	dividerPattern = regexp.MustCompile(`^(===+|---+)$`)

	// Table separator: dashes and colons split by at least one pipe,
	// e.g. |---|---| or --- | ---. Bare --- lines are dividers instead.
	tableSeparatorPattern = regexp.MustCompile(`^\|?[\s:-]*-[\s:-]*(\|[\s:-]+)+\|?$`)

	// Symbolic heading: #, ##, ... with depth = symbol count.
	hashHeadingPattern = regexp.MustCompile(`^(#+)\s*(.*)$`)

	// Numbered heading: 1. / 2-1. / 2-1-1. with depth = segment count.
	numberedHeadingPattern = regexp.MustCompile(`^(\d+(?:-\d+)*)\.\s*(.+)$`)

	// NPC status line: a parenthesized attribute list naming at least one
	// core CoC attribute, e.g. 田中一郎 (STR 12 CON 14 ...).
	npcStatusPattern = regexp.MustCompile(`\(.*(?:STR|CON|SIZ|INT|POW|DEX|HP).*\)`)

	// Definition item: ◆項目：説明
	definitionPattern = regexp.MustCompile(`^◆\s*(.+)$`)

	// Bullet item: ・項目
	bulletPattern = regexp.MustCompile(`^・\s*(.+)$`)
)

// classifyLine assigns exactly one structural kind to a line. The
// immediately preceding and following raw lines form the bounded context
// window, used only to tell a table separator apart from stray dash runs.
//
// When several patterns could match, the documented priority order decides:
// Divider > TableSeparator > Heading > NpcStatusLine > DefinitionItem >
// BulletItem > TableRow > DialogueLine > PlainLine. Structural delimiters
// must never be swallowed by looser prose-like patterns.
func classifyLine(prev, line, next string) lineToken {
	trimmed := strings.TrimSpace(line)

	if trimmed == "" {
		return lineToken{kind: lineBlank}
	}

	if dividerPattern.MatchString(trimmed) {
		return lineToken{kind: lineDivider, text: trimmed}
	}

	if tableSeparatorPattern.MatchString(trimmed) && hasPipeNeighbour(prev, next) {
		return lineToken{kind: lineTableSeparator, text: trimmed}
	}

	if m := hashHeadingPattern.FindStringSubmatch(trimmed); m != nil {
		return lineToken{kind: lineHeading, level: len(m[1]), text: strings.TrimSpace(m[2])}
	}
	if m := numberedHeadingPattern.FindStringSubmatch(trimmed); m != nil {
		level := strings.Count(m[1], "-") + 1
		return lineToken{kind: lineHeading, level: level, text: trimmed}
	}

	if npcStatusPattern.MatchString(trimmed) {
		return lineToken{kind: lineNpcStatus, text: trimmed}
	}

	if definitionPattern.MatchString(trimmed) {
		return lineToken{kind: lineDefinitionItem, text: trimmed}
	}

	if bulletPattern.MatchString(trimmed) {
		return lineToken{kind: lineBulletItem, text: trimmed}
	}

	if strings.Contains(trimmed, "|") {
		return lineToken{kind: lineTableRow, text: trimmed}
	}

	if strings.Contains(trimmed, "「") && strings.Contains(trimmed, "」") {
		return lineToken{kind: lineDialogue, text: trimmed}
	}

	return lineToken{kind: linePlain, text: trimmed}
}

// hasPipeNeighbour reports whether an adjacent line looks like a table row.
// A separator row only makes sense next to one.
func hasPipeNeighbour(prev, next string) bool {
	return strings.Contains(prev, "|") || strings.Contains(next, "|")
}
