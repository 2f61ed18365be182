package menu

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mnemonic splits a label such as "&File" into its display name ("File") and
// the lower-cased trigger rune ('f'). Labels without a marker have no trigger.
func Mnemonic(label string) (name string, trigger rune) {
	idx := strings.IndexByte(label, '&')
	if idx < 0 || idx == len(label)-1 {
		return strings.Replace(label, "&", "", 1), 0
	}
	r, _ := utf8.DecodeRuneInString(label[idx+1:])
	return label[:idx] + label[idx+1:], unicode.ToLower(r)
}

// MnemonicIndex returns the rune offset of the trigger within the display name,
// or -1 when the label has none.
func MnemonicIndex(label string) int {
	idx := strings.IndexByte(label, '&')
	if idx < 0 || idx == len(label)-1 {
		return -1
	}
	return utf8.RuneCountInString(label[:idx])
}

// FormatKeystroke renders "ctrl-k ctrl-d" as "Ctrl+K Ctrl+D".
func FormatKeystroke(keystroke string) string {
	strokes := strings.Fields(keystroke)
	for i, stroke := range strokes {
		keys := strings.Split(stroke, "-")
		for j, key := range keys {
			keys[j] = upperFirst(key)
		}
		strokes[i] = strings.Join(keys, "+")
	}
	return strings.Join(strokes, " ")
}

var bracketedShortcut = regexp.MustCompile(`\s*\[[^\]]+\]\s*$`)

// CleanContextLabel strips trailing bracketed shortcut hints and turns
// command-like labels ("pkg:do-thing") into title case ("Do Thing").
func CleanContextLabel(label string) string {
	if label == "" {
		return label
	}
	cleaned := strings.TrimSpace(bracketedShortcut.ReplaceAllString(label, ""))
	if strings.Contains(cleaned, ":") && !strings.Contains(cleaned, " ") {
		command := cleaned[strings.LastIndex(cleaned, ":")+1:]
		words := strings.Split(command, "-")
		for i, word := range words {
			words[i] = upperFirst(word)
		}
		cleaned = strings.Join(words, " ")
	}
	return cleaned
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
