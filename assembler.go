package scriptweaver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NPC stat line decomposition: name (ATTR value ...) trailing note.
var (
	npcLinePattern = regexp.MustCompile(`^([^(]*)\(([^)]*)\)\s*(.*)$`)
	npcAttrPattern = regexp.MustCompile(`([A-Za-z]+)\s*(\d+)`)

	npcAttackPattern = regexp.MustCompile(`噛みつき|爪|ダメージ|\d+[dD]\d+`)
)

// assembler builds a Document from the classified line stream in a single
// pass without backtracking. It keeps an explicit open-heading stack plus
// one collection buffer per multi-line structure; the anchor set is created
// fresh for every call and discarded with it.
type assembler struct {
	doc     *Document
	anchors *anchorSet
	stack   []*Heading

	para         []string
	paraDialogue bool

	tableHeader []string
	tableRows   [][]string
	tableOpen   bool

	defItems []DefinitionItem
	bullets  []string

	npc *NpcStatusBlock
}

// assemble classifies every line of content and builds the document tree.
// Malformed content never fails assembly: unterminated structures close
// with whatever they accumulated and are left to the validators. An error
// here means the classifier broke an internal invariant.
func assemble(content string) (*Document, error) {
	a := &assembler{
		doc:     &Document{},
		anchors: newAnchorSet(),
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		var prev, next string
		if i > 0 {
			prev = lines[i-1]
		}
		if i < len(lines)-1 {
			next = lines[i+1]
		}
		if err := a.feed(classifyLine(prev, line, next)); err != nil {
			return nil, err
		}
	}
	a.flushAll()

	return a.doc, nil
}

func (a *assembler) feed(tok lineToken) error {
	switch tok.kind {
	case lineBlank:
		// A blank line ends prose and NPC blocks. Tables and lists stay
		// open: they only close at the first non-matching line, so a
		// blank followed by another row continues the run.
		a.flushParagraph()
		a.closeNpc()
		return nil

	case lineHeading:
		if tok.level < 1 {
			return fmt.Errorf("%w: heading level %d", ErrRender, tok.level)
		}
		a.flushAll()
		a.openHeading(tok.level, tok.text)
		return nil

	case lineDivider:
		a.flushAll()
		a.appendBlock(&Divider{})
		return nil

	case lineNpcStatus:
		a.flushAll()
		a.npc = parseNpcStatusLine(tok.text)
		return nil
	}

	// Inside an open NPC block every remaining kind is a detail line.
	if a.npc != nil {
		a.feedNpcLine(tok.text)
		return nil
	}

	switch tok.kind {
	case lineTableSeparator:
		a.flushParagraph()
		a.flushDefinitions()
		a.flushBullets()
		// The separator promotes the row before it to header row.
		if a.tableOpen && a.tableHeader == nil && len(a.tableRows) > 0 {
			a.tableHeader = a.tableRows[len(a.tableRows)-1]
			a.tableRows = a.tableRows[:len(a.tableRows)-1]
		}

	case lineTableRow:
		a.flushParagraph()
		a.flushDefinitions()
		a.flushBullets()
		a.tableOpen = true
		a.tableRows = append(a.tableRows, splitTableRow(tok.text))

	case lineDefinitionItem:
		a.flushParagraph()
		a.flushTable()
		a.flushBullets()
		a.defItems = append(a.defItems, parseDefinitionItem(tok.text))

	case lineBulletItem:
		a.flushParagraph()
		a.flushTable()
		a.flushDefinitions()
		a.bullets = append(a.bullets, strings.TrimSpace(strings.TrimPrefix(tok.text, "・")))

	case lineDialogue, linePlain:
		a.flushTable()
		a.flushDefinitions()
		a.flushBullets()
		a.para = append(a.para, tok.text)
		if tok.kind == lineDialogue {
			a.paraDialogue = true
		}

	default:
		return fmt.Errorf("%w: unhandled line kind %v", ErrRender, tok.kind)
	}
	return nil
}

// openHeading closes every open section of equal or deeper level, then
// attaches the new heading under the remaining top (or the root).
func (a *assembler) openHeading(level int, title string) {
	for len(a.stack) > 0 && a.stack[len(a.stack)-1].Level >= level {
		a.stack = a.stack[:len(a.stack)-1]
	}
	h := &Heading{
		Level:  level,
		Title:  title,
		Anchor: a.anchors.assign(title),
	}
	a.appendBlock(h)
	a.stack = append(a.stack, h)
}

// appendBlock attaches a block to the innermost open section, or to the
// document root when no section is open.
func (a *assembler) appendBlock(b Block) {
	if len(a.stack) > 0 {
		top := a.stack[len(a.stack)-1]
		top.Children = append(top.Children, b)
		return
	}
	a.doc.Blocks = append(a.doc.Blocks, b)
}

func (a *assembler) flushAll() {
	a.flushParagraph()
	a.flushTable()
	a.flushDefinitions()
	a.flushBullets()
	a.closeNpc()
}

func (a *assembler) flushParagraph() {
	if len(a.para) == 0 {
		return
	}
	runs := transformInline(strings.Join(a.para, "\n"))
	if a.paraDialogue {
		a.appendBlock(&DialogueParagraph{Runs: runs})
	} else {
		a.appendBlock(&Paragraph{Runs: runs})
	}
	a.para = nil
	a.paraDialogue = false
}

func (a *assembler) flushTable() {
	if !a.tableOpen {
		return
	}
	if a.tableHeader != nil || len(a.tableRows) > 0 {
		a.appendBlock(&Table{Header: a.tableHeader, Rows: a.tableRows})
	}
	a.tableHeader = nil
	a.tableRows = nil
	a.tableOpen = false
}

func (a *assembler) flushDefinitions() {
	if len(a.defItems) == 0 {
		return
	}
	a.appendBlock(&DefinitionList{Items: a.defItems})
	a.defItems = nil
}

func (a *assembler) flushBullets() {
	if len(a.bullets) == 0 {
		return
	}
	a.appendBlock(&BulletList{Items: a.bullets})
	a.bullets = nil
}

func (a *assembler) closeNpc() {
	if a.npc == nil {
		return
	}
	a.appendBlock(a.npc)
	a.npc = nil
}

// feedNpcLine classifies a detail line inside an open NPC block by its
// lightweight sub-pattern.
func (a *assembler) feedNpcLine(line string) {
	switch {
	case strings.Contains(line, "技能:") || strings.Contains(line, "技能："):
		a.npc.Skills = append(a.npc.Skills, stripNpcPrefix(line, "技能"))
	case strings.Contains(line, "装備:") || strings.Contains(line, "装備："):
		a.npc.Equipment = append(a.npc.Equipment, stripNpcPrefix(line, "装備"))
	case strings.Contains(line, "攻撃:") || strings.Contains(line, "攻撃：") ||
		npcAttackPattern.MatchString(line):
		a.npc.Attacks = append(a.npc.Attacks, line)
	default:
		a.npc.Other = append(a.npc.Other, line)
	}
}

// stripNpcPrefix removes everything up to and including "技能:"-style
// markers, accepting half- and full-width colons.
func stripNpcPrefix(line, marker string) string {
	for _, sep := range []string{marker + ":", marker + "："} {
		if idx := strings.Index(line, sep); idx != -1 {
			return strings.TrimSpace(line[idx+len(sep):])
		}
	}
	return strings.TrimSpace(line)
}

// parseNpcStatusLine decomposes "name (ATTR value ...) note" into a block.
// A malformed attribute list is not fatal: the block keeps whatever parsed
// and the NPC validator reports the rest.
func parseNpcStatusLine(line string) *NpcStatusBlock {
	m := npcLinePattern.FindStringSubmatch(line)
	if m == nil {
		return &NpcStatusBlock{Name: strings.TrimSpace(line)}
	}
	npc := &NpcStatusBlock{
		Name: strings.TrimSpace(m[1]),
		Note: strings.TrimSpace(m[3]),
	}
	for _, pair := range npcAttrPattern.FindAllStringSubmatch(m[2], -1) {
		value, err := strconv.Atoi(pair[2])
		if err != nil {
			continue
		}
		npc.Stats = append(npc.Stats, NpcStat{Attribute: pair[1], Value: value})
	}
	return npc
}

// parseDefinitionItem splits a ◆ line into term and description on the
// first full- or half-width colon.
func parseDefinitionItem(line string) DefinitionItem {
	content := strings.TrimSpace(strings.TrimPrefix(line, "◆"))
	for _, sep := range []string{"：", ":"} {
		if term, desc, ok := strings.Cut(content, sep); ok {
			return DefinitionItem{
				Term:        strings.TrimSpace(term),
				Description: strings.TrimSpace(desc),
			}
		}
	}
	return DefinitionItem{Term: content}
}

// splitTableRow extracts non-empty trimmed cells from a pipe-delimited row.
func splitTableRow(line string) []string {
	var cells []string
	for _, cell := range strings.Split(line, "|") {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}
