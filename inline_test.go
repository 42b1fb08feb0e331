package scriptweaver

import (
	"strings"
	"testing"
)

func TestTransformInline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []InlineRun
	}{
		{
			name:  "plain text only",
			input: "廃屋は静まり返っている。",
			want: []InlineRun{
				PlainText{Text: "廃屋は静まり返っている。"},
			},
		},
		{
			name:  "skill check",
			input: "【目星】で調べる",
			want: []InlineRun{
				SkillCheck{Name: "目星", Raw: "【目星】"},
				PlainText{Text: "で調べる"},
			},
		},
		{
			name:  "skill check with modifier",
			input: "【目星-20】",
			want: []InlineRun{
				SkillCheck{Name: "目星", Modifier: -20, HasModifier: true, Raw: "【目星-20】"},
			},
		},
		{
			name:  "item notation",
			input: "『懐中時計』を入手",
			want: []InlineRun{
				Item{Name: "懐中時計", Raw: "『懐中時計』"},
				PlainText{Text: "を入手"},
			},
		},
		{
			name:  "dice expression",
			input: "2d6のダメージ",
			want: []InlineRun{
				DiceExpression{Count: 2, Sides: 6, Raw: "2d6"},
				PlainText{Text: "のダメージ"},
			},
		},
		{
			name:  "dice expression with modifier",
			input: "1d10+2",
			want: []InlineRun{
				DiceExpression{Count: 1, Sides: 10, Modifier: 2, Raw: "1d10+2"},
			},
		},
		{
			name:  "sanity loss wins over its embedded dice",
			input: "SANc1/1d4",
			want: []InlineRun{
				SanityLoss{Success: "1", Failure: "1d4", Raw: "SANc1/1d4"},
			},
		},
		{
			name:  "sanity loss without c marker",
			input: "SAN0/1d6",
			want: []InlineRun{
				SanityLoss{Success: "0", Failure: "1d6", Raw: "SAN0/1d6"},
			},
		},
		{
			name:  "dialogue quote",
			input: "「ようこそ」と老人は言った",
			want: []InlineRun{
				DialogueQuote{Text: "ようこそ", Raw: "「ようこそ」"},
				PlainText{Text: "と老人は言った"},
			},
		},
		{
			name:  "handout symbol",
			input: "《ハンドアウト1》を配布",
			want: []InlineRun{
				Symbol{Text: "《ハンドアウト1》"},
				PlainText{Text: "を配布"},
			},
		},
		{
			name:  "mixed notation keeps order",
			input: "【図書館】に成功すると『日記』を発見、SANc0/1を失う",
			want: []InlineRun{
				SkillCheck{Name: "図書館", Raw: "【図書館】"},
				PlainText{Text: "に成功すると"},
				Item{Name: "日記", Raw: "『日記』"},
				PlainText{Text: "を発見、"},
				SanityLoss{Success: "0", Failure: "1", Raw: "SANc0/1"},
				PlainText{Text: "を失う"},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := transformInline(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("transformInline(%q) = %d runs, want %d\ngot: %#v", tt.input, len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("run %d = %#v, want %#v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Concatenating run sources must reconstruct the input byte for byte,
// whatever notation it contains.
func TestTransformInline_Lossless(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"【目星】で調べると、『古い鍵』と2d6ダメージの罠を見つける。",
		"SANc1/1d4+1 の喪失。「逃げろ！」〈呪文〉《ハンドアウト2》",
		"ただの文章。記法は一切ない。",
		"【あ】【い】【う】",
		"3d6+10 1d100 SAN1d4/2d6",
		"途中で切れた【記法",
	}

	for _, input := range inputs {
		var b strings.Builder
		for _, run := range transformInline(input) {
			b.WriteString(run.Source())
		}
		if b.String() != input {
			t.Errorf("sources reconcatenated = %q, want %q", b.String(), input)
		}
	}
}

func TestParseSkillCheck_Alternatives(t *testing.T) {
	t.Parallel()

	// A trailing alternative like 目星or聞き耳 stays in the name; only
	// the skill validator strips it for dictionary lookup.
	run := parseSkillCheck("【目星or聞き耳】")
	sc, ok := run.(SkillCheck)
	if !ok {
		t.Fatalf("parseSkillCheck returned %T, want SkillCheck", run)
	}
	if sc.Name != "目星or聞き耳" {
		t.Errorf("Name = %q, want %q", sc.Name, "目星or聞き耳")
	}
	if sc.HasModifier {
		t.Error("HasModifier = true, want false")
	}
}
