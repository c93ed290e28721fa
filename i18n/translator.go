package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "ge" or "pattern").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "missing":
			return "必須フィールドです"
		case "string_type":
			return "文字列を指定してください"
		case "int_type":
			return "整数を指定してください"
		case "int_parsing":
			return "整数として解釈できません"
		case "int_from_float":
			return "小数部のない整数を指定してください"
		case "float_type":
			return "数値を指定してください"
		case "bool_type":
			return "真偽値を指定してください"
		case "dict_type":
			return "オブジェクトを指定してください"
		case "list_type":
			return "配列を指定してください"
		case "enum":
			return "許可された値のいずれかを指定してください"
		case "string_pattern_mismatch":
			return "パターン '" + data["pattern"] + "' に一致しません"
		case "string_too_short":
			return "短すぎます"
		case "string_too_long":
			return "長すぎます"
		case "too_short":
			return "要素数が少なすぎます"
		case "too_long":
			return "要素数が多すぎます"
		case "greater_than_equal":
			return data["ge"] + " 以上を指定してください"
		case "less_than_equal":
			return data["le"] + " 以下を指定してください"
		case "invalid_format":
			return "形式が不正です"
		case "json_invalid":
			return "JSON を解釈できません"
		}
	default: // "en"
		switch code {
		case "missing":
			return "Field required"
		case "string_type":
			return "Input should be a valid string"
		case "int_type":
			return "Input should be a valid integer"
		case "int_parsing":
			return "Input should be a valid integer, unable to parse string as an integer"
		case "int_from_float":
			return "Input should be a valid integer, got a number with a fractional part"
		case "float_type":
			return "Input should be a valid number"
		case "bool_type":
			return "Input should be a valid boolean"
		case "dict_type":
			return "Input should be a valid dictionary"
		case "list_type":
			return "Input should be a valid list"
		case "enum":
			return "Input should be " + data["expected"]
		case "string_pattern_mismatch":
			return "String should match pattern '" + data["pattern"] + "'"
		case "string_too_short":
			return "String should have at least " + data["min_length"] + " characters"
		case "string_too_long":
			return "String should have at most " + data["max_length"] + " characters"
		case "too_short":
			return "List should have at least " + data["min_length"] + " items"
		case "too_long":
			return "List should have at most " + data["max_length"] + " items"
		case "greater_than_equal":
			return "Input should be greater than or equal to " + data["ge"]
		case "less_than_equal":
			return "Input should be less than or equal to " + data["le"]
		case "invalid_format":
			return "Input should be a valid " + data["format"]
		case "json_invalid":
			return "Invalid JSON: " + data["error"]
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

// T translates a code through the current Translator.
func T(code string, data map[string]string) string {
	return currentTranslator.Message(code, data)
}
