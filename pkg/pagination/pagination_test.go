package pagination

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(target string) Params {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor("/")
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected default offset 0, got %d", p.Offset)
	}
}

func TestFromContext_Values(t *testing.T) {
	p := paramsFor("/?limit=10&offset=30")
	if p.Limit != 10 || p.Offset != 30 {
		t.Errorf("unexpected params %+v", p)
	}
}

func TestFromContext_Clamps(t *testing.T) {
	p := paramsFor("/?limit=100000&offset=-4")
	if p.Limit != MaxLimit {
		t.Errorf("expected limit capped at %d, got %d", MaxLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected negative offset reset, got %d", p.Offset)
	}

	p = paramsFor("/?limit=abc")
	if p.Limit != DefaultLimit {
		t.Errorf("expected default for garbage limit, got %d", p.Limit)
	}
}

func TestPreviousOffset(t *testing.T) {
	if got := (Params{Limit: 20, Offset: 10}).PreviousOffset(); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := (Params{Limit: 20, Offset: 50}).PreviousOffset(); got != 30 {
		t.Errorf("expected 30, got %d", got)
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	r := NewResponse([]int{1, 2}, 5, Params{Limit: 2, Offset: 0})
	if !r.HasMore {
		t.Error("expected more pages")
	}
	r = NewResponse([]int{5}, 5, Params{Limit: 2, Offset: 4})
	if r.HasMore {
		t.Error("expected last page")
	}
}

func TestLinks(t *testing.T) {
	p := Params{Limit: 10, Offset: 10}
	links := p.Links("/api/v1/patients", url.Values{"q": {"rahim"}}, 35)
	if len(links) != 3 {
		t.Fatalf("expected self, next, previous; got %+v", links)
	}
	for _, l := range links {
		if !strings.Contains(l.URL, "q=rahim") {
			t.Errorf("link %s lost the search term", l.URL)
		}
	}
	if links[1].Relation != "next" || !strings.Contains(links[1].URL, "offset=20") {
		t.Errorf("unexpected next link %+v", links[1])
	}
	if links[2].Relation != "previous" || !strings.Contains(links[2].URL, "offset=0") {
		t.Errorf("unexpected previous link %+v", links[2])
	}
}
