package i18n

// Translator retrieves localized messages for error kinds.
// data provides optional metadata to embed in the message (for example,
// "param" or "reason").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "configuration":
			msg = "ファクトリの設定が不正です"
		case "param_spec":
			msg = "パラメータ定義が不正です"
		case "missing_argument":
			msg = "必須の引数が指定されていません"
		case "null_argument":
			msg = "必須の引数に null は指定できません"
		case "usage":
			msg = "ビルダーの使い方が不正です"
		}
	default: // "en"
		switch code {
		case "configuration":
			msg = "invalid factory configuration"
		case "param_spec":
			msg = "invalid parameter specification"
		case "missing_argument":
			msg = "missing required argument"
		case "null_argument":
			msg = "required argument must not be null"
		case "usage":
			msg = "invalid builder usage"
		}
	}
	if msg == "" {
		return code
	}
	if r := data["reason"]; r != "" && (code == "configuration" || code == "param_spec" || code == "usage") {
		return msg + " (" + r + ")"
	}
	return msg
}

// Default returns the English Translator.
func Default() Translator { return dictTranslator{lang: "en"} }

// New returns a Translator for lang. Unsupported languages fall back to English.
func New(lang string) Translator {
	switch lang {
	case "ja":
		return dictTranslator{lang: "ja"}
	default:
		return dictTranslator{lang: "en"}
	}
}
