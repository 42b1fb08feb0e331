package scriptweaver

// coc6Skills is the standard CoC 6th edition skill list recognized by the
// skill validator. Custom skills from the configuration extend it.
var coc6Skills = []string{
	"目星", "聞き耳", "図書館", "説得", "信用", "隠れる", "忍び歩き",
	"鍵開け", "機械修理", "コンピュータ", "運転", "操縦", "心理学",
	"医学", "応急手当", "精神分析", "オカルト", "人類学", "考古学",
	"歴史", "自然史", "物理学", "化学", "生物学", "地質学", "天文学",
	"電気修理", "電子工学", "ナビゲート", "追跡", "写真術", "芸術",
	"クトゥルフ神話", "母国語", "他の言語", "回避", "キック", "組み付き",
	"こぶし", "頭突き", "投擲", "マーシャルアーツ", "剣道", "拳銃",
	"サブマシンガン", "ショットガン", "マシンガン", "ライフル",
}

// skillDictionary builds the active skill set for a configuration.
func skillDictionary(cfg Config) map[string]struct{} {
	dict := make(map[string]struct{}, len(coc6Skills)+len(cfg.CustomSkills))
	for _, s := range coc6Skills {
		dict[s] = struct{}{}
	}
	for _, s := range cfg.CustomSkills {
		dict[s] = struct{}{}
	}
	return dict
}
