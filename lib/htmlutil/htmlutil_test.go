package htmlutil

import (
	"bytes"
	"net/url"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestGetText(t *testing.T) {
	page := []byte(`<div id="target"><b>CSC</b> 1101 <span>Introduction to <i>Computing</i></span></div>`)
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(page))
	if err != nil {
		t.Fatal(err)
	}

	sel := doc.Find("#target")
	require.Equal(t, 1, len(sel.Nodes))
	require.Equal(t, "CSC 1101 Introduction to Computing", GetText(sel.Nodes[0]))
}

func TestCleanText(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"  CSC 1101  ", "CSC 1101"},
		{"CSC\n\t  1101", "CSC 1101"},
		{"\tIntroduction   to\n\nComputing ", "Introduction to Computing"},
		// a single newline is still a word separator
		{"INTRODUCTION TO\nPROGRAMMING", "INTRODUCTION TO PROGRAMMING"},
		{"", ""},
	}
	for _, test := range cases {
		require.Equal(t, test.expected, CleanText(test.input))
	}
}

func TestResolveRef(t *testing.T) {
	base, err := url.Parse("https://portal.aiub.edu/Student")
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(
		t,
		"https://portal.aiub.edu/Captcha/Image?id=xyz",
		ResolveRef(base, "/Captcha/Image?id=xyz"),
	)
	require.Equal(
		t,
		"https://cdn.example.com/image.png",
		ResolveRef(base, "https://cdn.example.com/image.png"),
	)
}
