package lexicon

// ChineseSimplified implements the zh-CN locale used in spec.md §8 scenario 2
// (若…为 compound match, full-width punctuation, Chinese bracket markers).
func ChineseSimplified() *Lexicon {
	target := English().Keywords

	source := map[SemanticKind]string{
		KwModuleDecl:  "模块",
		KwUse:         "使用",
		KwAs:          "作为",
		KwDefine:      "定义",
		KwWith:        "包含",
		KwHas:         "有",
		KwAsOneOf:     "为以下之一",
		KwRule:        "规则",
		KwTo:          "到",
		KwGiven:       "包含",
		KwProduce:     "产出",
		KwOf:          "的",
		KwAnd:         "和",
		KwIt:          "它",
		KwPerforms:    "执行",
		KwLet:         "令",
		KwBe:          "为",
		KwSet:         "设置",
		KwTo2:         "为",
		KwReturn:      "返回",
		KwIf:          "若",
		KwNot:         "非",
		KwOtherwise:   "否则",
		KwMatch:       "若",
		KwWhen:        "为",
		KwStart:       "启动",
		KwWait:        "等待",
		KwWithin:      "在范围",
		KwScope:       "范围",
		KwRequired:    "必需",
		KwBetween:     "介于",
		KwMatching:    "匹配",
		KwFunction:    "函数",
		KwA:           "一个",
		KwThe:         "该",
		KwTypeWith:    "包含",
		KwTypeDef:     "定义",
		KwGreaterThan: "大于",
		KwLessThan:    "小于",
		KwNull:        "空",
		KwTrue:        "真",
		KwFalse:       "假",
		KwSome:        "存在",
		KwNone:        "不存在",
		KwOk:          "成功",
		KwErr:         "失败",
		KwAwait:       "等候",
	}

	return &Lexicon{
		ID:             "zh-CN",
		Name:           "Chinese (Simplified)",
		Keywords:       target,
		SourceKeywords: source,
		Punctuation: Punctuation{
			StatementEnd:  "。",
			ListSeparator: "，",
			EnumSeparator: "、",
			BlockStart:    "：",
			StringQuotes:  Quotes{Open: "「", Close: "」"},
			MarkersOpen:   "【",
			MarkersClose:  "】",
		},
		Canonicalization: Canonicalization{
			WhitespaceMode:  WhitespaceChinese,
			FullWidthToHalf: true,
			RemoveArticles:  false,
			// No customRules: this implementation tokenizes zh-CN source
			// the same way as every other locale, on explicit token
			// boundaries (spaces, punctuation) rather than via CJK word
			// segmentation — a `\s+ -> ""` rule here would also strip the
			// normalized `\n` line breaks the lexer's indentation tracking
			// depends on, since customRules run after newline
			// normalization (spec.md §4.B steps 1 and 5).
			//
			// 为 maps to "be" (after "let NAME"), "to" (after "Set NAME"),
			// and "when" (match arm introducer) — disambiguated
			// contextually by the translator (spec.md §4.D rule 3). "when"
			// is listed last so it remains the default when neither "let"
			// nor "Set" precedes.
			// 包含 maps to "given" (after "Rule"/"To" NAME) or "with" (after
			// "Define" NAME) — disambiguated by the nearest enclosing
			// declaration opener, not by the immediately preceding tokens
			// (spec.md §4.D rule 3's "consult the last two emitted tokens"
			// generalized to a backward scan, since the opener can be more
			// than two tokens back: "Rule NAME 包含 ..." / "Define NAME
			// 包含 ...").
			AllowedDuplicates: map[string][]SemanticKind{
				"为":  {KwBe, KwTo2, KwWhen},
				"包含": {KwGiven, KwWith},
			},
			CompoundPatterns: []CompoundPattern{
				{Opener: KwIf, Context: []SemanticKind{KwWhen}, Meaning: "match ... when"},
				{Opener: KwLet, Context: []SemanticKind{KwBe}, Meaning: "let ... be"},
			},
		},
	}
}
