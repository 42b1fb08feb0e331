package scriptweaver

import (
	"regexp"
	"strconv"
	"strings"
)

// InlineRun is one recognized span inside paragraph-level text. The set of
// variants is closed: the renderer handles every one of them exhaustively.
//
// Concatenating the Source of all runs of a paragraph, in order,
// reconstructs the original text verbatim.
type InlineRun interface {
	// Source returns the literal source span the run was produced from.
	Source() string

	inlineRun()
}

// PlainText is an unrecognized span of prose.
type PlainText struct {
	Text string
}

// SkillCheck is bracketed skill notation: 【目星】 or 【目星-20】.
type SkillCheck struct {
	Name        string
	Modifier    int
	HasModifier bool
	Raw         string
}

// Item is corner-bracket item notation: 『懐中時計』.
type Item struct {
	Name string
	Raw  string
}

// DiceExpression is NdM dice notation with an optional signed modifier,
// e.g. 2d6 or 1d10+2. The modifier is kept verbatim in Raw.
type DiceExpression struct {
	Count    int
	Sides    int
	Modifier int
	Raw      string
}

// SanityLoss is SAN check shorthand: SANc1/1d4 means losing 1 point on
// success and 1d4 points on failure.
type SanityLoss struct {
	Success string
	Failure string
	Raw     string
}

// DialogueQuote is quoted dialogue: 「ようこそ」.
type DialogueQuote struct {
	Text string
	Raw  string
}

// Symbol is bracket or symbol notation that matches no specific mechanic,
// e.g. 《ハンドアウト1》.
type Symbol struct {
	Text string
}

func (r PlainText) Source() string      { return r.Text }
func (r SkillCheck) Source() string     { return r.Raw }
func (r Item) Source() string           { return r.Raw }
func (r DiceExpression) Source() string { return r.Raw }
func (r SanityLoss) Source() string     { return r.Raw }
func (r DialogueQuote) Source() string  { return r.Raw }
func (r Symbol) Source() string         { return r.Text }

func (PlainText) inlineRun()      {}
func (SkillCheck) inlineRun()     {}
func (Item) inlineRun()           {}
func (DiceExpression) inlineRun() {}
func (SanityLoss) inlineRun()     {}
func (DialogueQuote) inlineRun()  {}
func (Symbol) inlineRun()         {}

// Inline notation patterns, in match priority order. SAN notation must be
// tried before dice notation: SANc1/1d4 contains a dice expression.
var (
	sanPattern      = regexp.MustCompile(`SANc?\d+(?:[dD]\d+)?(?:[+\-]\d+)?/\d+(?:[dD]\d+)?(?:[+\-]\d+)?`)
	dicePattern     = regexp.MustCompile(`(\d+)[dD](\d+)([+\-]\d+)?`)
	skillPattern    = regexp.MustCompile(`【([^】]+)】`)
	itemPattern     = regexp.MustCompile(`『([^』]+)』`)
	dialoguePattern = regexp.MustCompile(`「([^」]*)」`)
	symbolPattern   = regexp.MustCompile(`《[^》]*》|〈[^〉]*〉|［[^］]*］|〔[^〕]*〕`)

	// Trailing signed modifier inside a skill bracket: 目星-20.
	skillModifierPattern = regexp.MustCompile(`([+\-]\d+)$`)

	// Alternation tail inside a skill bracket: 目星or聞き耳.
	skillAlternativePattern = regexp.MustCompile(`or.+$`)
)

// inlinePatterns is the fixed, priority-ordered pattern table used by the
// left-to-right scan. Earlier entries win ties at the same position.
var inlinePatterns = []struct {
	re    *regexp.Regexp
	parse func(match string) InlineRun
}{
	{sanPattern, parseSanityLoss},
	{dicePattern, parseDiceExpression},
	{skillPattern, parseSkillCheck},
	{itemPattern, parseItem},
	{dialoguePattern, parseDialogueQuote},
	{symbolPattern, func(m string) InlineRun { return Symbol{Text: m} }},
}

// transformInline tokenizes paragraph text into an ordered run sequence,
// losslessly covering the input. The scan is greedy left to right: at each
// step the earliest match wins, with the pattern table order breaking ties.
func transformInline(text string) []InlineRun {
	var runs []InlineRun
	rest := text

	for rest != "" {
		start, end, idx := -1, -1, -1
		for i, p := range inlinePatterns {
			loc := p.re.FindStringIndex(rest)
			if loc == nil {
				continue
			}
			if start == -1 || loc[0] < start {
				start, end, idx = loc[0], loc[1], i
			}
		}

		if idx == -1 {
			runs = append(runs, PlainText{Text: rest})
			break
		}
		if start > 0 {
			runs = append(runs, PlainText{Text: rest[:start]})
		}
		runs = append(runs, inlinePatterns[idx].parse(rest[start:end]))
		rest = rest[end:]
	}

	return runs
}

func parseSkillCheck(match string) InlineRun {
	name := strings.TrimSuffix(strings.TrimPrefix(match, "【"), "】")
	run := SkillCheck{Name: name, Raw: match}
	if m := skillModifierPattern.FindString(name); m != "" {
		if v, err := strconv.Atoi(m); err == nil {
			run.Name = strings.TrimSuffix(name, m)
			run.Modifier = v
			run.HasModifier = true
		}
	}
	return run
}

func parseItem(match string) InlineRun {
	name := strings.TrimSuffix(strings.TrimPrefix(match, "『"), "』")
	return Item{Name: name, Raw: match}
}

func parseDiceExpression(match string) InlineRun {
	m := dicePattern.FindStringSubmatch(match)
	count, _ := strconv.Atoi(m[1])
	sides, _ := strconv.Atoi(m[2])
	run := DiceExpression{Count: count, Sides: sides, Raw: match}
	if m[3] != "" {
		run.Modifier, _ = strconv.Atoi(m[3])
	}
	return run
}

func parseSanityLoss(match string) InlineRun {
	body := strings.TrimPrefix(match, "SAN")
	body = strings.TrimPrefix(body, "c")
	success, failure, _ := strings.Cut(body, "/")
	return SanityLoss{Success: success, Failure: failure, Raw: match}
}

func parseDialogueQuote(match string) InlineRun {
	text := strings.TrimSuffix(strings.TrimPrefix(match, "「"), "」")
	return DialogueQuote{Text: text, Raw: match}
}
