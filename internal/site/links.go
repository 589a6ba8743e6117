package site

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SourceLinkPlaceholder is the link prefix the documentation tool emits for
// source file references.
const SourceLinkPlaceholder = "/src/target"

// RewriteSourceLinks parses an HTML fragment and rewrites every href/src
// attribute rooted at SourceLinkPlaceholder to an absolute repository-browser
// URL: <repoURL>/blob/<branch>/<pkgPath><rest>.
//
// Working on parsed attributes rather than raw text keeps the rewrite scoped
// to actual links, and the rewritten URLs no longer match the placeholder
// prefix, so applying the rewrite twice is a no-op.
func RewriteSourceLinks(fragment []byte, repoURL, branch, pkgPath string) ([]byte, error) {
	if repoURL == "" || len(fragment) == 0 {
		return fragment, nil
	}
	base := strings.TrimSuffix(repoURL, "/") + "/blob/" + branch + "/" + pkgPath

	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(fragment), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse documentation fragment: %w", err)
	}

	for _, n := range nodes {
		rewriteNode(n, base)
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return nil, fmt.Errorf("render documentation fragment: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func rewriteNode(n *html.Node, base string) {
	if n.Type == html.ElementNode {
		for i, attr := range n.Attr {
			if attr.Key != "href" && attr.Key != "src" {
				continue
			}
			if rest, ok := strings.CutPrefix(attr.Val, SourceLinkPlaceholder); ok {
				n.Attr[i].Val = base + rest
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, base)
	}
}
