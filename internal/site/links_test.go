package site

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRewriteSourceLinks_RewritesPlaceholderHrefs(t *testing.T) {
	fragment := []byte(`<p><a href="/src/target/vm.go?s=1200:1260#L30">vm.go</a></p>`)

	out, err := RewriteSourceLinks(fragment, "https://github.com/cpmech/gofem", "master", "mdl/solid")
	require.NoError(t, err)
	require.Contains(t, string(out),
		`href="https://github.com/cpmech/gofem/blob/master/mdl/solid/vm.go?s=1200:1260#L30"`)
	require.NotContains(t, string(out), SourceLinkPlaceholder)
}

func TestRewriteSourceLinks_LeavesOtherLinksAlone(t *testing.T) {
	fragment := []byte(`<a href="/pkg/fmt/">fmt</a> <a href="https://example.com/src/other">x</a>`)

	out, err := RewriteSourceLinks(fragment, "https://github.com/cpmech/gofem", "master", "ana")
	require.NoError(t, err)
	require.Contains(t, string(out), `href="/pkg/fmt/"`)
	require.Contains(t, string(out), `href="https://example.com/src/other"`)
}

func TestRewriteSourceLinks_Idempotent(t *testing.T) {
	fragment := []byte(`<a href="/src/target/ana.go">ana.go</a>`)

	once, err := RewriteSourceLinks(fragment, "https://github.com/cpmech/gofem", "master", "ana")
	require.NoError(t, err)
	// The replacement must not reintroduce the placeholder pattern.
	require.NotContains(t, string(once), SourceLinkPlaceholder)

	twice, err := RewriteSourceLinks(once, "https://github.com/cpmech/gofem", "master", "ana")
	require.NoError(t, err)
	require.Equal(t, string(once), string(twice))
}

func TestRewriteSourceLinks_PlaceholderInTextIsUntouched(t *testing.T) {
	// The rewrite is attribute-scoped, not a blind text substitution.
	fragment := []byte(`<p>see /src/target/ana.go for details</p>`)

	out, err := RewriteSourceLinks(fragment, "https://github.com/cpmech/gofem", "master", "ana")
	require.NoError(t, err)
	require.Contains(t, string(out), "see /src/target/ana.go for details")
}

func TestRewriteSourceLinks_NoRepoURLIsPassthrough(t *testing.T) {
	fragment := []byte(`<a href="/src/target/ana.go">ana.go</a>`)

	out, err := RewriteSourceLinks(fragment, "", "master", "ana")
	require.NoError(t, err)
	require.Equal(t, fragment, out)
}
