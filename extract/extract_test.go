package extract_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablescrape/tablescrape/extract"
)

const tablePageHTML = `<!DOCTYPE html>
<html>
<body>
  <table>
    <tr><th>ID</th><th>Name</th></tr>
    <tr><td> T1059 </td><td>Command and Scripting Interpreter</td></tr>
    <tr><td>T1566</td><td>Phishing</td></tr>
  </table>
  <table>
    <tr><td>x</td></tr>
  </table>
  <table>
    <tr><th>Empty</th></tr>
  </table>
  <a href="/techniques/T1059/">qualifying relative</a>
  <a href="https://attack.mitre.org/groups/G0016/">qualifying absolute</a>
  <a href="/contact/">non-qualifying</a>
  <a href="#mainContent">fragment only</a>
  <a href="/techniques/T1566/#refs">qualifying with fragment</a>
  <a href="mailto:x@example.com?subject=/techniques/">non-http scheme</a>
</body>
</html>`

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestTables(t *testing.T) {
	t.Parallel()

	tables := extract.Tables(parseDoc(t, tablePageHTML))
	require.Len(t, tables, 3)

	assert.Equal(t, []string{"ID", "Name"}, tables[0].Headers)
	require.Len(t, tables[0].Rows, 2, "header-only rows are discarded")
	assert.Equal(t, []string{"T1059", "Command and Scripting Interpreter"}, tables[0].Rows[0], "cell text is trimmed")

	assert.Empty(t, tables[1].Headers)
	assert.Equal(t, [][]string{{"x"}}, tables[1].Rows)

	assert.Equal(t, []string{"Empty"}, tables[2].Headers)
	assert.Empty(t, tables[2].Rows)
}

func TestLinks_KeywordFilterAndResolution(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://attack.mitre.org/versions/v15/techniques/enterprise/")
	require.NoError(t, err)

	links := extract.Links(parseDoc(t, tablePageHTML), base, []string{"/techniques/", "/groups/"})

	assert.Equal(t, []string{
		"https://attack.mitre.org/techniques/T1059/",
		"https://attack.mitre.org/groups/G0016/",
		"https://attack.mitre.org/techniques/T1566/",
	}, links, "qualifying links resolved absolute, fragments stripped, others dropped")
}

func TestLinks_NoDedupHere(t *testing.T) {
	t.Parallel()

	html := `<a href="/groups/G1/">a</a><a href="/groups/G1/">b</a>`
	base, err := url.Parse("https://attack.mitre.org/")
	require.NoError(t, err)

	links := extract.Links(parseDoc(t, html), base, []string{"/groups/"})
	assert.Len(t, links, 2, "dedup is the ledger's job, not the extractor's")
}
