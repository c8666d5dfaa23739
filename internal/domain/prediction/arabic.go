package prediction

import "strings"

// arabicSubstitutions maps Arabic orthographic variants to a canonical
// form: variant alef forms to bare alef, teh-marbuta to heh, and
// alef-maqsura to yeh. The set is deliberately small and fixed.
var arabicSubstitutions = map[rune]rune{
	'أ': 'ا',
	'إ': 'ا',
	'آ': 'ا',
	'ٱ': 'ا',
	'ة': 'ه',
	'ى': 'ي',
}

// NormalizeArabic canonicalizes a name token for matching: trims
// whitespace, lowercases, and applies the Arabic substitution table.
func NormalizeArabic(token string) string {
	var b strings.Builder
	b.Grow(len(token))
	for _, r := range strings.ToLower(strings.TrimSpace(token)) {
		if sub, ok := arabicSubstitutions[r]; ok {
			r = sub
		}
		b.WriteRune(r)
	}
	return b.String()
}
