package pipeline

import (
	"context"
	"fmt"

	"github.com/dbsmedya/nlplaces/internal/config"
	"github.com/dbsmedya/nlplaces/internal/fetch"
)

const (
	cbsURL     = "https://cbs.test/WijkenEnBuurten"
	wikiURL    = "https://wiki.test/gemeenten"
	capitalURL = "https://capital.test/buurten.csv"
)

const cbsFixture = `{"value": [
  {"Key": "GM0003", "Title": "Appingedam", "Municipality": "GM0003"},
  {"Key": "WK000300", "Title": "Wijk 00", "Municipality": "GM0003"},
  {"Key": "BU00030000", "Title": "Centrum", "Municipality": "GM0003"},
  {"Key": "GM0014", "Title": "Groningen", "Municipality": "GM0014"},
  {"Key": "BU00140000", "Title": "Binnenstad", "Municipality": "GM0014"},
  {"Key": "BU00140001", "Title": "binnenstad", "Municipality": "GM0014"},
  {"Key": "BU00140002", "Title": "Oosterpoort", "Municipality": "GM0014"},
  {"Key": "GM0599", "Title": "Rotterdam", "Municipality": "GM0599"},
  {"Key": "BU05990000", "Title": "Cool", "Municipality": "GM0599"},
  {"Key": "GM0344", "Title": "Utrecht", "Municipality": "GM0344"}
]}`

const wikiFixture = `<html><body>
<table class="wikitable sortable">
<tr><th>Gemeente</th><th>Provincie</th><th>Inwoners</th></tr>
<tr><td>Groningen</td><td>Groningen</td><td>238.000</td></tr>
<tr><td>Rotterdam<sup>[1]</sup></td><td>Zuid-Holland</td><td>655.000</td></tr>
<tr><td>Utrecht</td><td>Utrecht</td><td>367.000</td></tr>
</table>
</body></html>`

// fixtureFetcher serves canned bodies by URL.
type fixtureFetcher struct {
	bodies map[string]string
	calls  []string
}

var _ fetch.Fetcher = (*fixtureFetcher)(nil)

func newFixtureFetcher() *fixtureFetcher {
	return &fixtureFetcher{bodies: map[string]string{
		cbsURL:  cbsFixture,
		wikiURL: wikiFixture,
	}}
}

func (f *fixtureFetcher) Get(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	body, ok := f.bodies[url]
	if !ok {
		return nil, &fetch.TransportError{URL: url, StatusCode: 404, Err: fmt.Errorf("not found")}
	}
	return []byte(body), nil
}

func testConfig(root string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Sources.Neighbourhoods = cbsURL
	cfg.Sources.Municipalities = wikiURL
	cfg.Sources.Capital = capitalURL
	cfg.Output.Root = root
	return cfg
}
