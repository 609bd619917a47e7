package phrase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/greetr/pkg/domain/model/lang"
	"github.com/secmon-lab/greetr/pkg/domain/model/phrase"
)

func TestTables(t *testing.T) {
	testCases := []struct {
		lang     lang.Lang
		informal string
		formal   string
		login    string
	}{
		{lang: lang.English, informal: "Hello", formal: "Greetings", login: "Logged in"},
		{lang: lang.Spanish, informal: "Hola", formal: "Sauldos", login: "Inicio sesion"},
		{lang: lang.Lang("fr"), informal: "", formal: "", login: ""},
	}

	for _, tc := range testCases {
		t.Run(string(tc.lang), func(t *testing.T) {
			gt.Equal(t, phrase.Informal(tc.lang), tc.informal)
			gt.Equal(t, phrase.Formal(tc.lang), tc.formal)
			gt.Equal(t, phrase.Login(tc.lang), tc.login)
		})
	}
}

func TestEverySupportedLangHasPhrases(t *testing.T) {
	for _, l := range lang.Supported() {
		gt.NotEqual(t, phrase.Informal(l), "")
		gt.NotEqual(t, phrase.Formal(l), "")
		gt.NotEqual(t, phrase.Login(l), "")
	}
}
