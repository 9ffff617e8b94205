package i18n

// Translator retrieves localized messages for Diagnostic codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "type").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "unsupported-in-table":
			return "テーブルのセルには描画できません。除外するか、セクションとして描画するか、データを変換してください"
		case "dictionary-not-supported":
			return "辞書型は描画できません。キーと値のレコード列に変換してください"
		case "unsupported-shape":
			return "描画できない型です"
		case "empty-record":
			return "フィールドを持たないレコードは描画できません"
		case "unknown-type":
			return "未登録の型です"
		}
	default: // "en"
		switch code {
		case "unsupported-in-table":
			return "cannot render inside a table cell; exclude it, section it, or transform the data"
		case "dictionary-not-supported":
			return "dictionaries cannot render; convert to a sequence of key/value records"
		case "unsupported-shape":
			return "shape has no rendering strategy"
		case "empty-record":
			return "record has no fields to render"
		case "unknown-type":
			return "type is not registered"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
