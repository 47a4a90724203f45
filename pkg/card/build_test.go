package card

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stakpak/paks-og/pkg/format"
	"github.com/stakpak/paks-og/pkg/pak"
)

func TestBuildScenario(t *testing.T) {
	desc := "A widget toolkit. More detail follows that is not needed."
	l := Build(pak.Summary{
		Name:        "widgets",
		Owner:       "acme",
		Description: desc,
		Visibility:  pak.VisibilityPublic,
		Downloads:   15000,
	})

	if l.Width != 1200 || l.Height != 630 {
		t.Errorf("canvas = %dx%d, want 1200x630", l.Width, l.Height)
	}

	tests := []struct {
		id   string
		want string
	}{
		{IDOwner, "acme"},
		{IDName, "widgets"},
		{IDDescription, format.Summary(desc, DescriptionLimit)},
		{IDBadge, "PUBLIC"},
		{IDDownloads, "15.0K downloads"},
		{IDWordmark, "Paks"},
	}
	for _, tt := range tests {
		n, ok := l.Find(tt.id)
		if !ok {
			t.Errorf("node %q missing", tt.id)
			continue
		}
		if n.Text != tt.want {
			t.Errorf("node %q text = %q, want %q", tt.id, n.Text, tt.want)
		}
	}
}

func TestBuildDescriptionSummarized(t *testing.T) {
	long := ""
	for len(long) < 400 {
		long += "lorem ipsum dolor sit amet "
	}
	l := Build(pak.Summary{Name: "n", Owner: "o", Description: long, Visibility: pak.VisibilityPublic})

	n, _ := l.Find(IDDescription)
	if n.Text != format.Summary(long, 200) {
		t.Errorf("description = %q", n.Text)
	}
	if len([]rune(n.Text)) > 203 {
		t.Errorf("description has %d runes, want <= 203", len([]rune(n.Text)))
	}
}

func TestBuildDefaultsRenderEveryField(t *testing.T) {
	l := Build(pak.Default("acme", "ghost"))

	for _, id := range []string{IDLogo, IDWordmark, IDOwner, IDName, IDDescription, IDBadge, IDDownloads} {
		n, ok := l.Find(id)
		if !ok {
			t.Errorf("node %q missing", id)
			continue
		}
		if n.Text == "" {
			t.Errorf("node %q has empty text", id)
		}
	}
	if n, _ := l.Find(IDDownloads); n.Text != "0 downloads" {
		t.Errorf("downloads = %q, want %q", n.Text, "0 downloads")
	}
}

func TestBuildBadgeUppercase(t *testing.T) {
	for _, v := range []pak.Visibility{pak.VisibilityPublic, pak.VisibilityUnlisted, pak.VisibilityPrivate, ""} {
		l := Build(pak.Summary{Name: "n", Owner: "o", Description: "d", Visibility: v})
		n, _ := l.Find(IDBadge)
		want := v.String()
		if n.Text != want {
			t.Errorf("badge for %q = %q, want %q", v, n.Text, want)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	s := pak.Summary{Name: "widgets", Owner: "acme", Description: "d", Visibility: pak.VisibilityPrivate, Downloads: 2_340_000}
	if !reflect.DeepEqual(Build(s), Build(s)) {
		t.Error("Build() is not deterministic")
	}
}

func TestLayoutJSONRoundTrip(t *testing.T) {
	l := Build(pak.Default("acme", "widgets"))

	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back Layout
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(l, back) {
		t.Error("layout changed across JSON round trip")
	}
}

func TestWalkVisitsChildren(t *testing.T) {
	l := Build(pak.Default("acme", "widgets"))
	seen := map[string]bool{}
	l.Walk(func(n Node) { seen[n.ID] = true })

	for _, id := range []string{"header", IDLogo, "footer", IDBadge} {
		if !seen[id] {
			t.Errorf("Walk did not visit %q", id)
		}
	}
}
