package lexicon

// English is the identity locale: its own spelling equals the canonical
// English keyword vocabulary the rest of the pipeline operates on.
func English() *Lexicon {
	kw := map[SemanticKind]string{
		KwModuleDecl:  "This module is",
		KwUse:         "Use",
		KwAs:          "as",
		KwDefine:      "Define",
		KwWith:        "with",
		KwHas:         "has",
		KwAsOneOf:     "as one of",
		KwRule:        "Rule",
		KwTo:          "To",
		KwGiven:       "given",
		KwProduce:     "produce",
		KwOf:          "of",
		KwAnd:         "and",
		KwIt:          "It",
		KwPerforms:    "performs",
		KwLet:         "Let",
		KwBe:          "be",
		KwSet:         "Set",
		KwTo2:         "to",
		KwReturn:      "Return",
		KwIf:          "If",
		KwNot:         "not",
		KwOtherwise:   "Otherwise",
		KwMatch:       "If",
		KwWhen:        "When",
		KwStart:       "Start",
		KwWait:        "Wait",
		KwWithin:      "Within",
		KwScope:       "scope",
		KwRequired:    "required",
		KwBetween:     "between",
		KwMatching:    "matching",
		KwFunction:    "function",
		KwA:           "a",
		KwThe:         "the",
		KwTypeWith:    "with",
		KwTypeDef:     "Define",
		KwGreaterThan: "greater than",
		KwLessThan:    "less than",
		KwNull:        "null",
		KwTrue:        "true",
		KwFalse:       "false",
		KwSome:        "Some",
		KwNone:        "None",
		KwOk:          "Ok",
		KwErr:         "Err",
		KwAwait:       "await",
	}

	return &Lexicon{
		ID:             "en",
		Name:           "English",
		Keywords:       kw,
		SourceKeywords: kw,
		Punctuation: Punctuation{
			StatementEnd:  ".",
			ListSeparator: ",",
			EnumSeparator: ",",
			BlockStart:    ":",
			StringQuotes:  Quotes{Open: `"`, Close: `"`},
		},
		Canonicalization: Canonicalization{
			WhitespaceMode:  WhitespaceASCII,
			FullWidthToHalf: false,
			RemoveArticles:  false,
		},
	}
}
