// Package gorules holds the go-ruleguard checks run by golangci-lint (gocritic ruleguard).
package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Two guards in a row with the same return can be merged with ||.
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	m.Match(`if $c1 { continue }; if $c2 { continue }`).
		Report(`two consecutive continues; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { continue }`)

	m.Match(`for $*_ { for $*_ { $*_ } }`).
		Report(`nested for-loop; consider extracting inner loop logic or reducing algorithmic complexity`)
}

// errorWrapping keeps error chains intact so errors.Is/As still see
// *contacts.APIError, *googleapi.Error and *oauth2.RetrieveError.
func errorWrapping(m dsl.Matcher) {
	m.Match(`fmt.Errorf($f, $*_, $err)`, `fmt.Errorf($f, $err)`).
		Where(m["err"].Type.Is(`error`) && !m["f"].Text.Matches(`%w`)).
		Report(`error formatted without %w; wrap it so callers can inspect the cause`)

	m.Match(`errors.New($e.Error())`).
		Where(m["e"].Type.Is(`error`)).
		Report(`errors.New(err.Error()) drops the cause; return or wrap err instead`)
}

// peopleAPIBoundary keeps raw People API calls behind contacts.PeopleAPI so every
// failure goes through NormalizeError.
func peopleAPIBoundary(m dsl.Matcher) {
	m.Import(`google.golang.org/api/people/v1`)

	m.Match(`$s.People.$_($*_)`, `$s.ContactGroups.$_($*_)`, `$s.OtherContacts.$_($*_)`).
		Where(m["s"].Type.Is(`*people.Service`) && !m.File().PkgPath.Matches(`internal/domain/contacts$`)).
		Report(`call the People API through contacts.PeopleAPI`)
}

// httpClients forbids the shared default client; its requests carry no OAuth token and no timeout.
func httpClients(m dsl.Matcher) {
	m.Match(`http.DefaultClient`, `http.Get($*_)`, `http.Post($*_)`).
		Where(!m.File().Name.Matches(`_test\.go$`)).
		Report(`use an injected *http.Client (oauth2.NewClient or option.WithHTTPClient)`)
}
