package scriptweaver

// Block is one structural node of an assembled document. The variant set is
// closed; the renderer switches exhaustively over it.
type Block interface {
	block()
}

// Document is the root of an assembled scenario. It owns all blocks, is
// created once per conversion call, and is immutable after assembly.
type Document struct {
	Blocks []Block
}

// Heading opens a section container. Sibling and child placement follows
// strict nesting: an incoming heading closes every open heading of equal or
// deeper level before attaching.
type Heading struct {
	Level    int
	Title    string
	Anchor   string
	Children []Block
}

// Paragraph is prose, tokenized into inline runs.
type Paragraph struct {
	Runs []InlineRun
}

// DialogueParagraph is a paragraph containing quoted dialogue.
type DialogueParagraph struct {
	Runs []InlineRun
}

// Table is a pipe-delimited table. Header is empty when the table run ended
// without a separator row.
type Table struct {
	Header []string
	Rows   [][]string
}

// DefinitionItem is one ◆term：description entry.
type DefinitionItem struct {
	Term        string
	Description string
}

// DefinitionList groups consecutive ◆ lines.
type DefinitionList struct {
	Items []DefinitionItem
}

// BulletList groups consecutive ・ lines.
type BulletList struct {
	Items []string
}

// NpcStat is one attribute/value pair from an NPC stat line.
type NpcStat struct {
	Attribute string
	Value     int
}

// NpcStatusBlock is a structured non-player-character description: the stat
// line that opened it plus the classified lines that followed until the
// block closed.
type NpcStatusBlock struct {
	Name      string
	Note      string
	Stats     []NpcStat
	Skills    []string
	Equipment []string
	Attacks   []string
	Other     []string
}

// Divider is a horizontal section separator.
type Divider struct{}

func (*Heading) block()           {}
func (*Paragraph) block()         {}
func (*DialogueParagraph) block() {}
func (*Table) block()             {}
func (*DefinitionList) block()    {}
func (*BulletList) block()        {}
func (*NpcStatusBlock) block()    {}
func (*Divider) block()           {}
