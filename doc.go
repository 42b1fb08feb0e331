// Package scriptweaver converts plain-text TRPG scenario scripts into
// self-contained HTML documents.
//
// # Quick Start
//
// Create a service and convert a scenario:
//
//	svc := scriptweaver.New()
//	result, err := svc.Convert(ctx, scriptweaver.Input{
//	    Text: "# 導入\n\n探索者は【目星】に成功すると1d6の手がかりを得る。",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("scenario.html", []byte(result.HTML), 0644)
//
// The result contains the HTML document and, when validation is enabled,
// the structured validation report.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Preprocessing (line ending normalization, blank line compression)
//  2. Line classification into structural kinds (headings, tables, lists,
//     NPC stat lines, dialogue, dividers)
//  3. Block assembly into a nested document tree with collision-safe anchors
//  4. Inline notation recognition inside prose (skill checks 【目星】,
//     items 『懐中時計』, dice 2d6+1, sanity loss SANc1/1d4, dialogue 「…」)
//  5. HTML rendering with table of contents and optional validation report
//
// # Validation
//
// An independent rule-based validation pass produces severity-leveled
// diagnostics without affecting rendering (outside strict mode):
//
//	svc := scriptweaver.New(scriptweaver.WithConfig(
//	    scriptweaver.DefaultConfig().With(scriptweaver.EnableValidation(true)),
//	))
//	report, err := svc.ValidateOnly(ctx, content)
//
// Custom validators can be registered without modifying the engine:
//
//	svc := scriptweaver.New(scriptweaver.WithValidator(myValidator))
//
// # Configuration
//
// Config is an immutable value. Derive new configurations with With:
//
//	cfg := scriptweaver.DefaultConfig().With(
//	    scriptweaver.StrictMode(true),
//	    scriptweaver.CustomSkills("古文書解読"),
//	)
//
// In strict mode, a document with CRITICAL validation results fails
// conversion atomically with ErrCriticalValidation; no HTML is produced.
package scriptweaver
