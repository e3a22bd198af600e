package gen

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titler capitalizes identifier segments without lowercasing the rest, so
// already-camel segments like "numArgs" keep their interior casing.
// strings.Title is deprecated in favor of x/text/cases.
var titler = cases.Title(language.English, cases.NoLower)

// camel converts a schema argument name (snake_case or lowerCamel) to a
// lowerCamel Go identifier: "lhs_id" becomes "lhsId", "numArgs" stays.
func camel(name string) string {
	parts := strings.Split(name, "_")
	for i := 1; i < len(parts); i++ {
		parts[i] = titler.String(parts[i])
	}
	return strings.Join(parts, "")
}

// lowerFirst unexports an identifier. Used for custom-writer encoder
// methods, which are private implementation details behind a hand-written
// exported wrapper.
func lowerFirst(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// argVar returns the decoded-value variable name for an argument: the
// camel form of its name plus the type's suffix ("objID", "shapeOffset").
func argVar(name, suffix string) string {
	return camel(name) + suffix
}
