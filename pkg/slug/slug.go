package slug

import (
	"crypto/rand"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// asciiFold maps letters that NFD decomposition alone cannot reduce to
// their conventional ASCII spellings.
var asciiFold = map[rune]string{
	'ß': "ss",
	'æ': "ae",
	'Æ': "AE",
	'ø': "o",
	'Ø': "O",
	'œ': "oe",
	'Œ': "OE",
	'đ': "d",
	'Đ': "D",
	'ł': "l",
	'Ł': "L",
	'þ': "th",
	'Þ': "TH",
	'ð': "d",
	'Ð': "D",
}

type options struct {
	separator    string
	maxLength    int
	lowercase    bool
	suffixLength int
	replacements map[string]string
	strip        string
}

// Option configures slug generation.
type Option func(*options)

// Separator sets the character(s) joining slug words. Default is "-".
func Separator(sep string) Option {
	return func(o *options) { o.separator = sep }
}

// MaxLength limits the slug to n runes, truncating on a rune boundary and
// trimming any trailing separator. Zero means unlimited.
func MaxLength(n int) Option {
	return func(o *options) { o.maxLength = n }
}

// Lowercase controls case folding. Default is true.
func Lowercase(enabled bool) Option {
	return func(o *options) { o.lowercase = enabled }
}

// WithSuffix appends a random n-character suffix for collision avoidance.
// When combined with MaxLength, the base is truncated so the full slug
// including the suffix fits the limit.
func WithSuffix(n int) Option {
	return func(o *options) { o.suffixLength = n }
}

// CustomReplace substitutes strings before normalization, useful for
// symbols that deserve words ("&" to "and"). Longer patterns are applied
// first so overlapping replacements behave predictably.
func CustomReplace(replacements map[string]string) Option {
	return func(o *options) { o.replacements = replacements }
}

// StripChars removes the listed characters entirely instead of converting
// them to separators.
func StripChars(chars string) Option {
	return func(o *options) { o.strip = chars }
}

// Make converts input into a URL-safe slug.
func Make(input string, opts ...Option) string {
	o := options{separator: "-", lowercase: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.separator == "" {
		o.separator = "-"
	}

	s := applyReplacements(input, o.replacements)
	if o.strip != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(o.strip, r) {
				return -1
			}
			return r
		}, s)
	}

	s = foldASCII(s)
	s = removeDiacritics(s)

	var b strings.Builder
	pendingSep := false
	for _, r := range s {
		if unicode.IsLetter(r) && r <= unicode.MaxASCII || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteString(o.separator)
			}
			pendingSep = false
			b.WriteRune(r)
		} else {
			pendingSep = true
		}
	}
	out := b.String()

	if o.lowercase {
		out = strings.ToLower(out)
	}

	if o.suffixLength > 0 {
		suffix := randomSuffix(o.suffixLength)
		if o.maxLength > 0 {
			budget := o.maxLength - o.suffixLength - len([]rune(o.separator))
			out = truncate(out, budget, o.separator)
		}
		if out == "" {
			return suffix
		}
		return out + o.separator + suffix
	}

	if o.maxLength > 0 {
		out = truncate(out, o.maxLength, o.separator)
	}
	return out
}

func applyReplacements(s string, replacements map[string]string) string {
	if len(replacements) == 0 {
		return s
	}
	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		s = strings.ReplaceAll(s, k, " "+replacements[k]+" ")
	}
	return s
}

func foldASCII(s string) string {
	var b strings.Builder
	for _, r := range s {
		if repl, ok := asciiFold[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func removeDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func truncate(s string, maxRunes int, separator string) string {
	if maxRunes <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > maxRunes {
		s = string(r[:maxRunes])
	}
	return strings.TrimSuffix(s, separator)
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand is documented never to fail on supported platforms
		panic(err)
	}
	for i, c := range buf {
		buf[i] = suffixAlphabet[int(c)%len(suffixAlphabet)]
	}
	return string(buf)
}
