package scriptweaver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Validator checks one validation unit and returns ordered diagnostics.
// Implementations are pure functions over their input: no shared mutable
// state, safe to invoke concurrently across units.
type Validator interface {
	// Name identifies the validator in diagnostics and registration.
	Name() string

	// Validate checks a single line. lineNumber is 1-based; zero means
	// the caller had no line context.
	Validate(text string, lineNumber int) []ValidationResult
}

// DocumentValidator is implemented by validators that additionally need the
// whole document in one unit (size checks, multi-line structures, heading
// hierarchy). The engine calls ValidateDocument once per run on top of the
// per-line pass.
type DocumentValidator interface {
	Validator

	ValidateDocument(content string) []ValidationResult
}

// Canonical die side counts; anything else is flagged, not rejected.
var canonicalDiceSides = map[int]struct{}{
	2: {}, 3: {}, 4: {}, 6: {}, 8: {}, 10: {}, 12: {}, 20: {}, 100: {},
}

// Validator thresholds.
const (
	maxDiceCount     = 100
	maxDiceModifier  = 50
	maxSkillDistance = 2
)

// npcExpectedAttributes are the stat names a complete CoC stat block carries.
var npcExpectedAttributes = []string{"STR", "CON", "SIZ", "INT", "POW", "DEX", "HP"}

// HeadingValidator checks heading text and depth.
type HeadingValidator struct {
	cfg Config
}

// NewHeadingValidator creates a HeadingValidator with the configured
// length and depth thresholds.
func NewHeadingValidator(cfg Config) *HeadingValidator {
	return &HeadingValidator{cfg: cfg}
}

func (v *HeadingValidator) Name() string { return "HeadingValidator" }

// Numbered heading prefix: 1. / 2-1. / 2-1-1. with depth = segment count.
var numberedHeadingPrefix = regexp.MustCompile(`^(\d+(?:-\d+)*)\.`)

func (v *HeadingValidator) Validate(text string, lineNumber int) []ValidationResult {
	line := strings.TrimSpace(text)
	var results []ValidationResult

	if strings.HasPrefix(line, "#") {
		level := len(line) - len(strings.TrimLeft(line, "#"))
		title := strings.TrimSpace(strings.TrimLeft(line, "#"))

		switch {
		case title == "":
			results = append(results, ValidationResult{
				Level:      LevelCritical,
				Message:    "見出しが空です",
				Suggestion: "見出しテキストを追加してください",
				LineNumber: lineNumber,
				Code:       "HEADING_EMPTY",
			})
		case utf8.RuneCountInString(title) > v.cfg.HeadingLengthLimit:
			results = append(results, ValidationResult{
				Level:      LevelWarning,
				Message:    fmt.Sprintf("見出しが長すぎます（%d文字以内推奨）", v.cfg.HeadingLengthLimit),
				Suggestion: "簡潔な見出しに修正することを推奨します",
				LineNumber: lineNumber,
				Code:       "HEADING_TOO_LONG",
			})
		}
		if title != "" && level > v.cfg.HeadingDepthLimit {
			results = append(results, v.tooDeep(lineNumber))
		}
		return results
	}

	if m := numberedHeadingPrefix.FindStringSubmatch(line); m != nil {
		depth := strings.Count(m[1], "-") + 1
		if depth > v.cfg.HeadingDepthLimit {
			results = append(results, v.tooDeep(lineNumber))
		}
	}
	return results
}

func (v *HeadingValidator) tooDeep(lineNumber int) ValidationResult {
	suggestion := "構造を見直すことを検討してください"
	if v.cfg.BeginnerMode {
		suggestion = "見出しは3階層まで（例: 1. / 1-1. / 1-1-1.）に収めると読みやすくなります"
	}
	return ValidationResult{
		Level:      LevelInfo,
		Message:    fmt.Sprintf("見出し階層が深すぎます（%d階層まで推奨）", v.cfg.HeadingDepthLimit),
		Suggestion: suggestion,
		LineNumber: lineNumber,
		Code:       "HEADING_TOO_DEEP",
	}
}

// SkillValidator checks 【技能名】 tokens against the active skill
// dictionary and proposes the nearest known skill for unknown names.
type SkillValidator struct {
	cfg    Config
	known  map[string]struct{}
	sorted []string
}

// NewSkillValidator builds the active dictionary from the standard list for
// the configured system plus custom skills.
func NewSkillValidator(cfg Config) *SkillValidator {
	dict := skillDictionary(cfg)
	sorted := make([]string, 0, len(dict)+len(coc6Skills))
	sorted = append(sorted, coc6Skills...)
	sorted = append(sorted, cfg.CustomSkills...)
	return &SkillValidator{cfg: cfg, known: dict, sorted: sorted}
}

func (v *SkillValidator) Name() string { return "SkillValidator" }

func (v *SkillValidator) Validate(text string, lineNumber int) []ValidationResult {
	var results []ValidationResult
	for _, m := range skillPattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		base := skillModifierPattern.ReplaceAllString(name, "")
		base = skillAlternativePattern.ReplaceAllString(base, "")
		base = strings.TrimSpace(base)

		if _, ok := v.known[base]; ok {
			continue
		}

		nearest := v.nearestSkill(base)
		suggestion := "標準技能名を確認してください"
		proposedFix := ""
		if nearest != "" {
			suggestion = fmt.Sprintf("【%s】でしょうか？", nearest)
			proposedFix = fmt.Sprintf("【%s】", nearest)
		}
		if v.cfg.BeginnerMode && nearest == "" {
			suggestion = "標準技能名を確認してください（例: 目星、聞き耳、図書館）"
		}

		results = append(results, ValidationResult{
			Level:        LevelWarning,
			Message:      fmt.Sprintf("未知の技能名です: %s", name),
			Suggestion:   suggestion,
			LineNumber:   lineNumber,
			Code:         "SKILL_UNKNOWN",
			OriginalText: m[0],
			ProposedFix:  proposedFix,
		})
	}
	return results
}

// nearestSkill returns the known skill within edit distance 2 of name, or
// empty when none is close enough. Ties pick the first in dictionary order.
func (v *SkillValidator) nearestSkill(name string) string {
	best := ""
	bestScore := maxSkillDistance + 1
	for _, skill := range v.sorted {
		if score := levenshtein.ComputeDistance(name, skill); score < bestScore {
			bestScore = score
			best = skill
		}
	}
	return best
}

// DiceValidator checks NdM±K dice notation ranges.
type DiceValidator struct{}

func NewDiceValidator() *DiceValidator { return &DiceValidator{} }

func (v *DiceValidator) Name() string { return "DiceValidator" }

func (v *DiceValidator) Validate(text string, lineNumber int) []ValidationResult {
	var results []ValidationResult
	for _, m := range dicePattern.FindAllStringSubmatch(text, -1) {
		count, _ := strconv.Atoi(m[1])
		sides, _ := strconv.Atoi(m[2])

		if count > maxDiceCount {
			results = append(results, ValidationResult{
				Level:        LevelWarning,
				Message:      "ダイス数が多すぎます",
				Suggestion:   "現実的なダイス数に調整してください",
				LineNumber:   lineNumber,
				Code:         "DICE_COUNT_HIGH",
				OriginalText: m[0],
			})
		}
		if _, ok := canonicalDiceSides[sides]; !ok {
			results = append(results, ValidationResult{
				Level:        LevelInfo,
				Message:      "一般的でないダイス面数です",
				Suggestion:   "標準的なダイス（d6, d10, d100等）の使用を推奨",
				LineNumber:   lineNumber,
				Code:         "DICE_SIDES_UNUSUAL",
				OriginalText: m[0],
			})
		}
		if m[3] != "" {
			modifier, _ := strconv.Atoi(m[3])
			if modifier > maxDiceModifier || modifier < -maxDiceModifier {
				results = append(results, ValidationResult{
					Level:        LevelWarning,
					Message:      "修正値が大きすぎます",
					Suggestion:   "適切な修正値に調整してください",
					LineNumber:   lineNumber,
					Code:         "DICE_MODIFIER_HIGH",
					OriginalText: m[0],
				})
			}
		}
	}
	return results
}

// TableValidator checks that data rows match the header row's column count.
// It works on whole-document units since a table spans multiple lines.
type TableValidator struct{}

func NewTableValidator() *TableValidator { return &TableValidator{} }

func (v *TableValidator) Name() string { return "TableValidator" }

// Validate is line-scoped and contributes nothing; tables are multi-line.
func (v *TableValidator) Validate(string, int) []ValidationResult { return nil }

func (v *TableValidator) ValidateDocument(content string) []ValidationResult {
	var results []ValidationResult

	lines := strings.Split(content, "\n")
	var header []string
	inRun := false

	endRun := func() {
		header = nil
		inRun = false
	}

	for i, line := range lines {
		var prev, next string
		if i > 0 {
			prev = lines[i-1]
		}
		if i < len(lines)-1 {
			next = lines[i+1]
		}

		switch tok := classifyLine(prev, line, next); tok.kind {
		case lineTableSeparator:
			// Promotes the previous row to header; nothing to check.
		case lineTableRow:
			cells := splitTableRow(tok.text)
			if !inRun {
				inRun = true
				header = nil
			}
			if header == nil {
				if classifyLine(line, next, "").kind == lineTableSeparator {
					header = cells
				}
				continue
			}
			if len(cells) != len(header) {
				results = append(results, ValidationResult{
					Level:      LevelWarning,
					Message:    fmt.Sprintf("表の列数がヘッダーと一致しません（ヘッダー%d列、この行%d列）", len(header), len(cells)),
					Suggestion: "ヘッダー行と同じ列数に揃えてください",
					LineNumber: i + 1,
					Code:       "TABLE_COLUMNS",
				})
			}
		case lineBlank:
			// Blank keeps a run open; only a non-table line ends it.
		default:
			endRun()
		}
	}
	return results
}

// NPCValidator checks parenthesized stat lists for missing attributes.
type NPCValidator struct{}

func NewNPCValidator() *NPCValidator { return &NPCValidator{} }

func (v *NPCValidator) Name() string { return "NPCValidator" }

func (v *NPCValidator) Validate(text string, lineNumber int) []ValidationResult {
	line := strings.TrimSpace(text)
	if !npcStatusPattern.MatchString(line) {
		return nil
	}

	npc := parseNpcStatusLine(line)
	present := make(map[string]struct{}, len(npc.Stats))
	for _, stat := range npc.Stats {
		present[strings.ToUpper(stat.Attribute)] = struct{}{}
	}

	var missing []string
	for _, attr := range npcExpectedAttributes {
		if _, ok := present[attr]; !ok {
			missing = append(missing, attr)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return []ValidationResult{{
		Level:      LevelWarning,
		Message:    fmt.Sprintf("NPCステータスに能力値が不足しています: %s", strings.Join(missing, ", ")),
		Suggestion: "STR CON SIZ INT POW DEX HP を記載してください",
		LineNumber: lineNumber,
		Code:       "NPC_ATTR_MISSING",
	}}
}

// StructureValidator checks document-wide heading hierarchy: a heading must
// not skip levels when nesting deeper.
type StructureValidator struct{}

func NewStructureValidator() *StructureValidator { return &StructureValidator{} }

func (v *StructureValidator) Name() string { return "StructureValidator" }

// Validate is line-scoped and contributes nothing; hierarchy needs the
// whole document.
func (v *StructureValidator) Validate(string, int) []ValidationResult { return nil }

func (v *StructureValidator) ValidateDocument(content string) []ValidationResult {
	var results []ValidationResult
	prevLevel := 0

	for i, line := range strings.Split(content, "\n") {
		tok := classifyLine("", line, "")
		if tok.kind != lineHeading {
			continue
		}
		if tok.level > prevLevel+1 && prevLevel > 0 {
			results = append(results, ValidationResult{
				Level:      LevelWarning,
				Message:    fmt.Sprintf("見出し階層が飛んでいます（レベル%dの次にレベル%d）", prevLevel, tok.level),
				Suggestion: "段階的な見出し階層を推奨します",
				LineNumber: i + 1,
				Code:       "HEADING_HIERARCHY",
			})
		}
		prevLevel = tok.level
	}
	return results
}

// DocumentSizeValidator flags empty documents. The hard size gate lives in
// the file loader; this only reports, never rejects.
type DocumentSizeValidator struct{}

func NewDocumentSizeValidator() *DocumentSizeValidator { return &DocumentSizeValidator{} }

func (v *DocumentSizeValidator) Name() string { return "DocumentSizeValidator" }

// Validate is line-scoped and contributes nothing.
func (v *DocumentSizeValidator) Validate(string, int) []ValidationResult { return nil }

func (v *DocumentSizeValidator) ValidateDocument(content string) []ValidationResult {
	if strings.TrimSpace(content) != "" {
		return nil
	}
	return []ValidationResult{{
		Level:   LevelWarning,
		Message: "ドキュメントが空です",
		Code:    "DOC_EMPTY",
	}}
}
