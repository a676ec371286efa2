package skilltree

import (
	"errors"
	"strings"
	"testing"

	"github.com/learnquest/learnquest/internal/progress"
)

func TestValidate_SeedTreesPass(t *testing.T) {
	if err := Validate(seed); err != nil {
		t.Fatalf("seed trees failed validation: %v", err)
	}
}

func TestValidate_Violations(t *testing.T) {
	tree := func(nodes ...Node) []Tree {
		return []Tree{{Domain: progress.DomainAnglais, Branches: []Branch{{ID: "b", Nodes: nodes}}}}
	}
	tests := []struct {
		name    string
		trees   []Tree
		wantMsg string
	}{
		{
			"duplicate id",
			tree(Node{ID: "a", Cost: 1, CostType: sp}, Node{ID: "a", Cost: 1, CostType: sp}),
			"duplicate node ID",
		},
		{
			"dangling parent",
			tree(Node{ID: "a", Cost: 1, CostType: sp, ParentID: "ghost"}),
			"nonexistent parent",
		},
		{
			"cycle",
			tree(Node{ID: "a", Cost: 1, CostType: sp, ParentID: "b"}, Node{ID: "b", Cost: 1, CostType: sp, ParentID: "a"}),
			"cycle",
		},
		{
			"zero cost",
			tree(Node{ID: "a", Cost: 0, CostType: bp}),
			"cost must be > 0",
		},
		{
			"bad cost type",
			tree(Node{ID: "a", Cost: 1, CostType: "XP"}),
			"unknown cost type",
		},
		{
			"unmapped domain",
			[]Tree{{Domain: "Cuisine", Branches: []Branch{{ID: "b", Nodes: []Node{{ID: "a", Cost: 1, CostType: sp}}}}}},
			"no skill key",
		},
		{
			"parent in another tree",
			[]Tree{
				{Domain: progress.DomainAnglais, Branches: []Branch{{ID: "x", Nodes: []Node{{ID: "a", Cost: 1, CostType: sp}}}}},
				{Domain: progress.DomainWebDev, Branches: []Branch{{ID: "y", Nodes: []Node{{ID: "b", Cost: 1, CostType: sp, ParentID: "a"}}}}},
			},
			"in another tree",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.trees)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var inv *InvariantError
			if !errors.As(err, &inv) {
				t.Fatalf("error type = %T, want *InvariantError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestNewCatalog_RejectsInvalid(t *testing.T) {
	_, err := NewCatalog([]Tree{{Domain: progress.DomainAI, Branches: []Branch{{ID: "b", Nodes: []Node{{ID: "a"}}}}}})
	if err == nil {
		t.Fatal("expected error for invalid trees")
	}
}

func mustNode(t *testing.T, id string) Node {
	t.Helper()
	n, err := GetNode(id)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestCanUnlock(t *testing.T) {
	withSP := func(k progress.SkillKey, n int) progress.State {
		s := progress.Initial()
		s.SkillPoints[k] = n
		return s
	}
	tests := []struct {
		name  string
		state progress.State
		node  string
		want  bool
	}{
		{"root SP node with balance", withSP(progress.SkillAnglais, 1), "en_lex_1", true},
		{"root SP node without balance", progress.Initial(), "en_lex_1", false},
		{"SP from another domain does not count", withSP(progress.SkillWebDev, 5), "en_lex_1", false},
		{"web SP pays for web node", withSP(progress.SkillWebDev, 1), "co_fun_1", true},
		{"ai SP pays for ai node", withSP(progress.SkillAIEngineering, 1), "ai_pro_1", true},
		{"cost above balance", withSP(progress.SkillAnglais, 1), "en_com_2", false},
		{"parent missing despite currency", withSP(progress.SkillAnglais, 9), "en_lex_2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanUnlock(tt.state, mustNode(t, tt.node)); got != tt.want {
				t.Errorf("CanUnlock(%s) = %v, want %v", tt.node, got, tt.want)
			}
		})
	}
}

func TestCanUnlock_ParentGateWithBuildPoints(t *testing.T) {
	s := progress.Initial()
	s.BuildPoints = 10
	s.UnlockedNodes = []string{"co_fun_1"}
	if CanUnlock(s, mustNode(t, "co_fun_3")) {
		t.Fatal("co_fun_3 should need co_fun_2 unlocked")
	}
	s.UnlockedNodes = append(s.UnlockedNodes, "co_fun_2")
	if !CanUnlock(s, mustNode(t, "co_fun_3")) {
		t.Fatal("co_fun_3 should be unlockable once its parent is owned")
	}
}

func TestCanUnlock_AlreadyUnlocked(t *testing.T) {
	s := progress.Initial()
	s.SkillPoints[progress.SkillAnglais] = 3
	s.UnlockedNodes = []string{"en_lex_1"}
	if CanUnlock(s, mustNode(t, "en_lex_1")) {
		t.Fatal("owned node must not be unlockable again")
	}
}

func TestUnlock(t *testing.T) {
	s := progress.Initial()
	s.SkillPoints[progress.SkillAnglais] = 2

	s, ok := Unlock(s, "en_lex_1")
	if !ok {
		t.Fatal("first unlock rejected")
	}
	s, ok = Unlock(s, "en_lex_2")
	if !ok {
		t.Fatal("child unlock rejected")
	}
	if s.SkillPoints[progress.SkillAnglais] != 0 {
		t.Errorf("anglais SP = %d, want 0", s.SkillPoints[progress.SkillAnglais])
	}

	// en_lex_3 costs 1 BP; Initial grants exactly one.
	s, ok = Unlock(s, "en_lex_3")
	if !ok || s.BuildPoints != 0 {
		t.Fatalf("BP unlock: ok=%v buildPoints=%d", ok, s.BuildPoints)
	}

	before, _ := progress.Encode(s)
	after, ok := Unlock(s, "en_lex_3")
	if ok {
		t.Fatal("re-unlocking an owned node succeeded")
	}
	if got, _ := progress.Encode(after); string(got) != string(before) {
		t.Fatal("rejected unlock changed the state")
	}
	if _, ok := Unlock(s, "does_not_exist"); ok {
		t.Fatal("unknown node unlocked")
	}
}

func TestStatus(t *testing.T) {
	s := progress.Initial()
	s.SkillPoints[progress.SkillWebDev] = 1
	s.UnlockedNodes = []string{"co_fun_1"}
	c := Default()

	tests := []struct {
		node string
		want Status
	}{
		{"co_fun_1", StatusUnlocked},
		{"co_fun_2", StatusAvailable},
		{"co_fun_3", StatusLocked},
		{"en_lex_1", StatusLocked},
	}
	for _, tt := range tests {
		if got := c.Status(s, mustNode(t, tt.node)); got != tt.want {
			t.Errorf("Status(%s) = %s, want %s", tt.node, got, tt.want)
		}
	}
}

func TestCatalogLookups(t *testing.T) {
	c := Default()
	if len(c.Nodes()) != 16 {
		t.Errorf("catalog has %d nodes, want 16", len(c.Nodes()))
	}
	d, ok := c.DomainOf("ai_rag_2")
	if !ok || d != progress.DomainAI {
		t.Errorf("DomainOf(ai_rag_2) = %q, %v", d, ok)
	}
	tree, ok := TreeFor(progress.DomainWebDev)
	if !ok || len(tree.Branches) != 2 {
		t.Errorf("TreeFor(web) = %+v, %v", tree, ok)
	}
	if _, ok := TreeFor(progress.DomainHorlogerie); ok {
		t.Error("horlogerie has no tree")
	}
	if _, err := GetNode("nope"); err == nil {
		t.Error("expected error for unknown node")
	}
}

func TestSearch(t *testing.T) {
	if got := Search("co_fun_2"); len(got) != 1 || got[0].ID != "co_fun_2" {
		t.Errorf("exact id search = %+v", got)
	}
	got := Search("clean")
	if len(got) == 0 || got[0].ID != "co_fun_1" {
		t.Errorf("Search(clean) = %+v, want co_fun_1 first", got)
	}
	if got := Search("   "); got != nil {
		t.Errorf("blank query returned %+v", got)
	}
	if got := Search("zzzqqq"); len(got) != 0 {
		t.Errorf("Search(zzzqqq) = %+v, want none", got)
	}
}

func TestView(t *testing.T) {
	s := progress.Initial()
	s.SkillPoints[progress.SkillAnglais] = 1
	s.UnlockedNodes = []string{"co_fun_1"}

	views := Default().View(s)
	if len(views) != len(Default().Trees()) {
		t.Fatalf("views = %d, want %d", len(views), len(Default().Trees()))
	}
	statuses := map[string]Status{}
	for _, tv := range views {
		for _, bv := range tv.Branches {
			for _, nv := range bv.Nodes {
				statuses[nv.ID] = nv.Status
			}
		}
	}
	want := map[string]Status{
		"en_lex_1": StatusAvailable,
		"en_lex_2": StatusLocked,
		"co_fun_1": StatusUnlocked,
	}
	for id, st := range want {
		if statuses[id] != st {
			t.Errorf("%s status = %s, want %s", id, statuses[id], st)
		}
	}
}
