package extract

import (
	"reflect"
	"testing"

	"github.com/vulnverified/subsweep/internal/engine"
)

func TestRegexExtractor_Extract(t *testing.T) {
	var e RegexExtractor

	got := e.Extract(engine.TextContent("bar.foo.com\nbaz.foo.com"), "foo.com")
	want := []string{"bar.foo.com", "baz.foo.com"}
	if !reflect.DeepEqual(got.Sorted(), want) {
		t.Errorf("got %v, want %v", got.Sorted(), want)
	}

	if got := e.Extract(engine.TextContent("foobarbaz"), "foo.com"); got.Len() != 0 {
		t.Errorf("expected no matches, got %v", got.Sorted())
	}
}

func TestRegexExtractor_IgnoresLookalikes(t *testing.T) {
	var e RegexExtractor
	text := "https://API.foo.com/v1 barfoo.com bar.foo.com.evil.org mail@mx.foo.com. foo.com"

	got := e.Extract(engine.TextContent(text), "foo.com").Sorted()
	want := []string{"api.foo.com", "foo.com", "mx.foo.com"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRegexExtractor_ExtractOne(t *testing.T) {
	var e RegexExtractor

	name, ok := e.ExtractOne("see www.example.com and bar.foo.com", "foo.com")
	if !ok || name != "bar.foo.com" {
		t.Errorf("got (%q, %v), want (bar.foo.com, true)", name, ok)
	}
	if _, ok := e.ExtractOne("nothing here", "foo.com"); ok {
		t.Error("expected no match")
	}
}

func TestHTMLExtractor_Removes(t *testing.T) {
	e, err := NewHTMLExtractor("div", []string{"<br>", "<br/>"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := e.Extract(engine.TextContent("<html><body><div><br>bar.foo.com</div></body></html>"), "foo.com")
	if !reflect.DeepEqual(got.Sorted(), []string{"bar.foo.com"}) {
		t.Errorf("got %v, want [bar.foo.com]", got.Sorted())
	}
}

func TestHTMLExtractor_SearchResults(t *testing.T) {
	page := `<html><body><ol>
<li><div><div><h3><a><span><b>bar</b>.foo.com</span></a></h3></div></div></li>
<li><div><div><h3><a><span>baz.foo.com › docs</span></a></h3></div></div></li>
<li><div><div><h3><a><span>www.other.com</span></a></h3></div></div></li>
</ol></body></html>`

	e := MustHTML("ol > li > div > div > h3 > a > span", "<b>", "</b>")
	got := e.Extract(engine.TextContent(page), "foo.com").Sorted()
	want := []string{"bar.foo.com", "baz.foo.com"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestHTMLExtractor_MalformedSelector(t *testing.T) {
	if _, err := NewHTMLExtractor("ol >>> [", nil); err == nil {
		t.Fatal("expected error for malformed selector")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustHTML should panic on malformed selector")
		}
	}()
	MustHTML("div[")
}

func TestJSONExtractor(t *testing.T) {
	e := NewJSONExtractor(func(c engine.Content, domain string) []string {
		var resp struct {
			Subdomains []string `json:"subdomains"`
		}
		if err := c.Decode(&resp); err != nil {
			return nil
		}
		return resp.Subdomains
	})

	got := e.Extract(engine.JSONContent([]byte(`{"subdomains":["Bar.foo.com","baz.foo.com","x.other.com"]}`)), "foo.com")
	want := []string{"bar.foo.com", "baz.foo.com"}
	if !reflect.DeepEqual(got.Sorted(), want) {
		t.Errorf("got %v, want %v", got.Sorted(), want)
	}

	if got := e.Extract(engine.Content{}, "foo.com"); got.Len() != 0 {
		t.Errorf("expected empty set for empty content, got %v", got.Sorted())
	}
}

func TestExtractors_AreIdempotent(t *testing.T) {
	content := engine.TextContent("<cite>a.foo.com</cite><cite>b.foo.com</cite>")
	extractors := []engine.Extractor{RegexExtractor{}, MustHTML("cite")}

	for _, e := range extractors {
		first := e.Extract(content, "foo.com")
		second := e.Extract(content, "foo.com")
		if !first.Equal(second) || first.Len() != 2 {
			t.Errorf("%T: got %v then %v", e, first.Sorted(), second.Sorted())
		}
	}
}
