// Package phrase holds the fixed greeting vocabulary. The tables are built once
// at package initialization and never modified, so they are safe for
// concurrent readers.
package phrase

import "github.com/secmon-lab/greetr/pkg/domain/model/lang"

var informal = map[lang.Lang]string{
	lang.English: "Hello",
	lang.Spanish: "Hola",
}

var formal = map[lang.Lang]string{
	lang.English: "Greetings",
	lang.Spanish: "Sauldos",
}

var login = map[lang.Lang]string{
	lang.English: "Logged in",
	lang.Spanish: "Inicio sesion",
}

// Informal returns the informal greeting word, or "" for an unsupported language.
func Informal(l lang.Lang) string { return informal[l] }

// Formal returns the formal greeting word, or "" for an unsupported language.
func Formal(l lang.Lang) string { return formal[l] }

// Login returns the login log phrase, or "" for an unsupported language.
func Login(l lang.Lang) string { return login[l] }
