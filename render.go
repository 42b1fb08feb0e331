package scriptweaver

import (
	"fmt"
	"html"
	"html/template"
	"strconv"
	"strings"
)

// documentData feeds the HTML shell template.
type documentData struct {
	Title string
	CSS   template.CSS
	Body  template.HTML
}

// htmlRenderer turns an assembled document, its TOC and an optional
// validation report into a complete HTML document. Rendering is
// deterministic and side-effect-free beyond producing the string.
type htmlRenderer struct {
	cfg   Config
	css   string
	shell *template.Template
}

func newHTMLRenderer(cfg Config, css, shellHTML string) (*htmlRenderer, error) {
	shell, err := template.New("document").Parse(shellHTML)
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}
	return &htmlRenderer{cfg: cfg, css: css, shell: shell}, nil
}

// Render produces the final HTML document. The TOC block precedes the body
// when enabled and non-empty; the validation report block is appended when
// a report is supplied.
func (r *htmlRenderer) Render(doc *Document, toc []TocEntry, report *ValidationReport) (string, error) {
	var body strings.Builder

	if r.cfg.IncludeTOC && len(toc) > 0 {
		renderTOC(&body, toc, r.cfg.TOCTitle)
	}

	if err := renderBlocks(&body, doc.Blocks); err != nil {
		return "", err
	}

	if report != nil && len(report.Results) > 0 {
		renderValidationReport(&body, report)
	}

	var out strings.Builder
	err := r.shell.Execute(&out, documentData{
		Title: r.cfg.HTMLTitle,
		CSS:   template.CSS(sanitizeCSS(r.css)),
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return "", fmt.Errorf("%w: executing document template: %v", ErrRender, err)
	}
	return out.String(), nil
}

// sanitizeCSS escapes sequences that could close the <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

func renderBlocks(w *strings.Builder, blocks []Block) error {
	for _, b := range blocks {
		switch block := b.(type) {
		case *Heading:
			if err := renderHeading(w, block); err != nil {
				return err
			}
		case *Paragraph:
			w.WriteString(`<p>`)
			renderRuns(w, block.Runs)
			w.WriteString("</p>\n")
		case *DialogueParagraph:
			w.WriteString(`<p class="dialogue-paragraph">`)
			renderRuns(w, block.Runs)
			w.WriteString("</p>\n")
		case *Table:
			renderTable(w, block)
		case *DefinitionList:
			renderDefinitionList(w, block)
		case *BulletList:
			renderBulletList(w, block)
		case *NpcStatusBlock:
			renderNpcStatusBlock(w, block)
		case *Divider:
			w.WriteString("<hr class=\"section-divider\">\n")
		default:
			return fmt.Errorf("%w: unknown block variant %T", ErrRender, b)
		}
	}
	return nil
}

func renderHeading(w *strings.Builder, h *Heading) error {
	if h.Level < 1 {
		return fmt.Errorf("%w: heading level %d", ErrRender, h.Level)
	}
	tag := "h" + strconv.Itoa(min(h.Level, 6))
	w.WriteString("<" + tag + ` id="` + html.EscapeString(h.Anchor) + `">`)
	w.WriteString(html.EscapeString(h.Title))
	w.WriteString("</" + tag + ">\n")
	return renderBlocks(w, h.Children)
}

// renderRuns writes the inline runs of one paragraph-level block. Every
// variant of the closed run set has a fixed HTML shape.
func renderRuns(w *strings.Builder, runs []InlineRun) {
	for _, run := range runs {
		switch r := run.(type) {
		case PlainText:
			w.WriteString(escapeProse(r.Text))
		case SkillCheck:
			w.WriteString(`<span class="coc-skill">` + html.EscapeString(r.Raw) + `</span>`)
		case Item:
			w.WriteString(`<span class="coc-item">` + html.EscapeString(r.Raw) + `</span>`)
		case DiceExpression:
			w.WriteString(`<span class="coc-dice">` + html.EscapeString(r.Raw) + `</span>`)
		case SanityLoss:
			renderSanityLoss(w, r)
		case DialogueQuote:
			w.WriteString(`<span class="dialogue">` + html.EscapeString(r.Raw) + `</span>`)
		case Symbol:
			w.WriteString(`<span class="` + symbolClass(r.Text) + `">` + html.EscapeString(r.Text) + `</span>`)
		default:
			// The run set is closed; PlainText fallback keeps output
			// lossless if a new variant slips past the renderer.
			w.WriteString(escapeProse(run.Source()))
		}
	}
}

// renderSanityLoss wraps the success and failure expressions so the styling
// layer can color them independently.
func renderSanityLoss(w *strings.Builder, r SanityLoss) {
	prefix := strings.TrimSuffix(r.Raw, r.Success+"/"+r.Failure)
	w.WriteString(`<span class="coc-san">`)
	w.WriteString(html.EscapeString(prefix))
	w.WriteString(`<span class="coc-result-success">` + html.EscapeString(r.Success) + `</span>`)
	w.WriteString("/")
	w.WriteString(`<span class="coc-result-failure">` + html.EscapeString(r.Failure) + `</span>`)
	w.WriteString(`</span>`)
}

// symbolClass picks the class for catch-all bracket notation. Handout
// references (《ハンドアウト1》, 《HO1》) get their own hook.
func symbolClass(text string) string {
	inner := strings.TrimFunc(text, func(r rune) bool {
		return strings.ContainsRune("《》〈〉［］〔〕", r)
	})
	if strings.HasPrefix(inner, "ハンドアウト") || strings.HasPrefix(inner, "HO") {
		return "coc-handout"
	}
	return "coc-symbol"
}

// escapeProse escapes text and renders source line breaks as <br>.
func escapeProse(text string) string {
	escaped := html.EscapeString(text)
	return strings.ReplaceAll(escaped, "\n", "<br>\n")
}

func renderTable(w *strings.Builder, t *Table) {
	w.WriteString("<table class=\"scenario-table\">\n")
	if len(t.Header) > 0 {
		w.WriteString("<thead>\n<tr>")
		for _, cell := range t.Header {
			w.WriteString("<th>")
			renderRuns(w, transformInline(cell))
			w.WriteString("</th>")
		}
		w.WriteString("</tr>\n</thead>\n")
	}
	if len(t.Rows) > 0 {
		w.WriteString("<tbody>\n")
		for _, row := range t.Rows {
			w.WriteString("<tr>")
			for _, cell := range row {
				w.WriteString("<td>")
				renderRuns(w, transformInline(cell))
				w.WriteString("</td>")
			}
			w.WriteString("</tr>\n")
		}
		w.WriteString("</tbody>\n")
	}
	w.WriteString("</table>\n")
}

func renderDefinitionList(w *strings.Builder, dl *DefinitionList) {
	w.WriteString("<dl class=\"scenario-definitions\">\n")
	for _, item := range dl.Items {
		w.WriteString("<dt>")
		renderRuns(w, transformInline(item.Term))
		w.WriteString("</dt>\n")
		if item.Description != "" {
			w.WriteString("<dd>")
			renderRuns(w, transformInline(item.Description))
			w.WriteString("</dd>\n")
		}
	}
	w.WriteString("</dl>\n")
}

func renderBulletList(w *strings.Builder, bl *BulletList) {
	w.WriteString("<ul class=\"scenario-bullets\">\n")
	for _, item := range bl.Items {
		w.WriteString("<li>")
		renderRuns(w, transformInline(item))
		w.WriteString("</li>\n")
	}
	w.WriteString("</ul>\n")
}

func renderNpcStatusBlock(w *strings.Builder, npc *NpcStatusBlock) {
	w.WriteString("<div class=\"npc-status-block\">\n")
	w.WriteString(`<div class="npc-name">` + html.EscapeString(npc.Name) + "</div>\n")
	if npc.Note != "" {
		w.WriteString(`<div class="npc-note">`)
		renderRuns(w, transformInline(npc.Note))
		w.WriteString("</div>\n")
	}
	if len(npc.Stats) > 0 {
		w.WriteString(`<div class="npc-stats">(`)
		for i, stat := range npc.Stats {
			if i > 0 {
				w.WriteString(" ")
			}
			w.WriteString(`<span class="coc-npc-status">`)
			w.WriteString(html.EscapeString(stat.Attribute) + " " + strconv.Itoa(stat.Value))
			w.WriteString(`</span>`)
		}
		w.WriteString(")</div>\n")
	}
	renderNpcLines(w, "npc-skills", "技能", npc.Skills)
	renderNpcLines(w, "npc-equipment", "装備", npc.Equipment)
	renderNpcLines(w, "npc-attacks", "攻撃", npc.Attacks)
	for _, line := range npc.Other {
		w.WriteString(`<div class="npc-other">`)
		renderRuns(w, transformInline(line))
		w.WriteString("</div>\n")
	}
	w.WriteString("</div>\n")
}

func renderNpcLines(w *strings.Builder, class, label string, lines []string) {
	for _, line := range lines {
		w.WriteString(`<div class="` + class + `"><strong>` + label + ":</strong> ")
		renderRuns(w, transformInline(line))
		w.WriteString("</div>\n")
	}
}

func renderTOC(w *strings.Builder, toc []TocEntry, title string) {
	w.WriteString("<nav class=\"table-of-contents\">\n")
	w.WriteString(`<h2 class="toc-title">` + html.EscapeString(title) + "</h2>\n")
	w.WriteString("<ul class=\"toc-list\">\n")
	for _, entry := range flattenTOC(toc) {
		level := min(entry.Level, 3)
		w.WriteString(`<li class="toc-level-` + strconv.Itoa(level) + `">`)
		w.WriteString(`<a href="#` + html.EscapeString(entry.Anchor) + `">`)
		w.WriteString(html.EscapeString(entry.Title))
		w.WriteString("</a></li>\n")
	}
	w.WriteString("</ul>\n</nav>\n")
}

// validationLevelLabels maps levels to their report headings.
var validationLevelLabels = map[Level]string{
	LevelCritical:   "重大エラー",
	LevelWarning:    "警告",
	LevelInfo:       "情報",
	LevelSuggestion: "提案",
}

// renderValidationReport appends the validation report block: per-level
// summary counts first, then the results grouped by level.
func renderValidationReport(w *strings.Builder, report *ValidationReport) {
	levels := []Level{LevelCritical, LevelWarning, LevelInfo, LevelSuggestion}

	w.WriteString("<div class=\"validation-report\">\n")
	w.WriteString("<h2 class=\"validation-title\">記法チェック結果</h2>\n")

	for _, level := range levels {
		count := report.Summary[level]
		if count == 0 {
			continue
		}
		w.WriteString(`<div class="validation-summary ` + level.String() + `">`)
		w.WriteString(validationLevelLabels[level] + ": " + strconv.Itoa(count) + "件")
		w.WriteString("</div>\n")
	}

	w.WriteString("<div class=\"validation-details\">\n")
	for _, level := range levels {
		for _, res := range report.ResultsByLevel(level) {
			w.WriteString(`<div class="validation-item ` + level.String() + "\">\n")
			w.WriteString(`<div class="validation-message">`)
			if res.LineNumber > 0 {
				w.WriteString(strconv.Itoa(res.LineNumber) + "行目: ")
			}
			w.WriteString(html.EscapeString(res.Message))
			w.WriteString("</div>\n")
			if res.Suggestion != "" {
				w.WriteString(`<div class="validation-suggestion">` + html.EscapeString(res.Suggestion) + "</div>\n")
			}
			if res.ProposedFix != "" {
				w.WriteString(`<div class="validation-fix">修正案: ` + html.EscapeString(res.ProposedFix) + "</div>\n")
			}
			w.WriteString("</div>\n")
		}
	}
	w.WriteString("</div>\n</div>\n")
}
