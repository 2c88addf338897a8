package registry

import (
	"testing"

	"github.com/vovakirdan/siege-arcade/internal/core"
)

type stubGame struct {
	id   string
	refs []core.AssetRef
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

type assetGame struct{ stubGame }

func (g *assetGame) Assets() []core.AssetRef { return g.refs }

func init() {
	Register("zz-plain", func() Game { return &stubGame{id: "zz-plain"} })
	Register("zz-a", func() Game {
		return &assetGame{stubGame{id: "zz-a", refs: []core.AssetRef{
			{Name: "shared"},
			{Name: "only-a", Required: true},
		}}}
	})
	Register("zz-b", func() Game {
		return &assetGame{stubGame{id: "zz-b", refs: []core.AssetRef{
			{Name: "shared", Required: true},
		}}}
	})
}

func TestCreateAndExists(t *testing.T) {
	if !Exists("zz-a") || Exists("missing") {
		t.Fatal("Exists disagrees with Register")
	}
	g, err := Create("zz-plain")
	if err != nil || g.ID() != "zz-plain" {
		t.Fatalf("Create = %v, %v", g, err)
	}
	if _, err := Create("missing"); err == nil {
		t.Error("unknown game should fail")
	}
}

func TestListSortedWithTitles(t *testing.T) {
	games := List()
	for i := 1; i < len(games); i++ {
		if games[i-1].ID >= games[i].ID {
			t.Fatalf("List not sorted: %v", games)
		}
	}
	for _, g := range games {
		if g.ID == "zz-b" && g.Title != "Stub zz-b" {
			t.Errorf("title = %q", g.Title)
		}
	}
}

func TestAllAssetsMergesDuplicates(t *testing.T) {
	got := map[string]core.AssetRef{}
	count := 0
	for _, ref := range AllAssets() {
		if ref.Name == "shared" || ref.Name == "only-a" {
			count++
			got[ref.Name] = ref
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 merged refs, got %d", count)
	}
	if !got["shared"].Required {
		t.Error("shared should be required because one game requires it")
	}
	if !got["only-a"].Required {
		t.Error("only-a lost its required flag")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz-plain", func() Game { return &stubGame{id: "zz-plain"} })
}
