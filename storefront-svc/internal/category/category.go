// Package category canonicalizes free-text Spanish category labels so that menu
// items and restaurants agree on names regardless of accents, case, number or
// common misspellings.
package category

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is the label for menu items whose category the restaurant does not declare.
const Fallback = "Otros"

var aliases = map[string]string{
	"hamburguesa":  "Hamburguesas",
	"hamburguesas": "Hamburguesas",
	"hamnurguesa":  "Hamburguesas",
	"hamnurguesas": "Hamburguesas",

	"pizza":  "Pizzas",
	"pizzas": "Pizzas",

	"empanada":  "Empanadas",
	"empanadas": "Empanadas",

	"ensalada":  "Ensaladas",
	"ensaladas": "Ensaladas",

	"carne":  "Carnes",
	"carnes": "Carnes",

	"bebida":  "Bebidas",
	"bebidas": "Bebidas",

	"postre":  "Postres",
	"postres": "Postres",

	"sandwich":    "Sandwiches",
	"sandwiches":  "Sandwiches",
	"sanguche":    "Sandwiches",
	"sanguches":   "Sandwiches",
	"sanguchito":  "Sandwiches",
	"sanguchitos": "Sandwiches",

	"pasta":  "Pastas",
	"pastas": "Pastas",

	"burrito":  "Burritos",
	"burritos": "Burritos",

	"taco":  "Tacos",
	"tacos": "Tacos",

	"wrap":  "Wraps",
	"wraps": "Wraps",

	"picada":  "Picadas",
	"picadas": "Picadas",

	"helado":  "Helados",
	"helados": "Helados",

	"milanesa":  "Milanesas",
	"milanesas": "Milanesas",

	"otros": "Otros",
}

// transform.Chain keeps state, so every call builds its own chain.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func normalizeKey(input string) string {
	lowered := stripMarks(strings.ToLower(strings.TrimSpace(input)))
	mapped := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, lowered)
	return strings.Join(strings.Fields(mapped), " ")
}

func toSingular(w string) string {
	switch {
	case len(w) <= 3:
		return w
	case strings.HasSuffix(w, "es") && len(w) > 4:
		return w[:len(w)-2]
	case strings.HasSuffix(w, "s"):
		return w[:len(w)-1]
	}
	return w
}

func toPlural(w string) string {
	switch {
	case len(w) <= 2:
		return w
	case strings.HasSuffix(w, "s"):
		return w
	case strings.HasSuffix(w, "z"):
		return w[:len(w)-1] + "ces"
	case strings.HasSuffix(w, "ion"):
		return w + "es"
	case strings.ContainsAny(w[len(w)-1:], "aeiou"):
		return w + "s"
	}
	return w + "es"
}

func mapLastToken(key string, fn func(string) string) string {
	tokens := strings.Split(key, " ")
	tokens[len(tokens)-1] = fn(tokens[len(tokens)-1])
	return strings.TrimSpace(strings.Join(tokens, " "))
}

func singularizeKey(key string) string {
	if len(key) <= 3 {
		return key
	}
	return mapLastToken(key, toSingular)
}

func pluralizeKey(key string) string {
	if key == "" {
		return ""
	}
	return mapLastToken(key, toPlural)
}

func titleCaseFirst(input string) string {
	collapsed := strings.ToLower(strings.Join(strings.Fields(input), " "))
	if collapsed == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(collapsed)
	return string(unicode.ToUpper(first)) + collapsed[size:]
}

// Label maps a free-text category onto its canonical display label. Unknown
// categories are pluralized and title-cased; blank input yields "".
func Label(input string) string {
	key := normalizeKey(input)
	if key == "" {
		return ""
	}
	if aliased, ok := aliases[key]; ok {
		return aliased
	}
	singular := singularizeKey(key)
	if aliased, ok := aliases[singular]; ok {
		return aliased
	}
	return titleCaseFirst(pluralizeKey(singular))
}

// Key is the comparison key of a category: inputs that share a canonical label
// share a key ("Hamburguesas", "hamburguesa" and "HAMNURGUESA" all agree).
func Key(input string) string {
	return singularizeKey(normalizeKey(Label(input)))
}

// CanonicalizeList labels every entry, drops blanks and keeps the first entry of
// each key, preserving input order.
func CanonicalizeList(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, raw := range list {
		label := Label(raw)
		if label == "" {
			continue
		}
		key := Key(label)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, label)
	}
	return out
}

// ParseText canonicalizes a comma separated list typed by a merchant.
func ParseText(input string) []string {
	return CanonicalizeList(strings.Split(input, ","))
}

// ResolveMenuCategory returns the restaurant category matching raw, or Fallback.
func ResolveMenuCategory(raw string, restaurantCategories []string) string {
	key := Key(raw)
	if key == "" {
		return Fallback
	}
	for _, c := range CanonicalizeList(restaurantCategories) {
		if Key(c) == key {
			return c
		}
	}
	return Fallback
}
