package town

import (
	"errors"
	"strings"
	"testing"

	"github.com/learnquest/learnquest/internal/progress"
)

func ladder(exigences ...int) Building {
	b := Building{Domain: progress.DomainAnglais}
	for i, e := range exigences {
		b.Tiers = append(b.Tiers, Tier{Niveau: i + 1, Titre: "t", Exigence: e})
	}
	return b
}

func TestResolve_Boundaries(t *testing.T) {
	b := ladder(0, 50, 200)
	tests := []struct {
		metric        int
		wantNiveau    int
		wantNext      int // 0 means none
		wantProgress  float64
		wantRemaining int
	}{
		{0, 1, 2, 0, 50},
		{49, 1, 2, 0.98, 1},
		{50, 2, 3, 0, 150},
		{125, 2, 3, 0.5, 75},
		{200, 3, 0, 1, 0},
		{9000, 3, 0, 1, 0},
		{-3, 1, 2, 0, 53},
	}
	for _, tt := range tests {
		r := Resolve(b, tt.metric)
		if r.Current.Niveau != tt.wantNiveau {
			t.Errorf("metric %d: niveau = %d, want %d", tt.metric, r.Current.Niveau, tt.wantNiveau)
		}
		switch {
		case tt.wantNext == 0 && r.Next != nil:
			t.Errorf("metric %d: next = %+v, want none", tt.metric, r.Next)
		case tt.wantNext != 0 && (r.Next == nil || r.Next.Niveau != tt.wantNext):
			t.Errorf("metric %d: next = %+v, want niveau %d", tt.metric, r.Next, tt.wantNext)
		}
		if r.Progress != tt.wantProgress {
			t.Errorf("metric %d: progress = %v, want %v", tt.metric, r.Progress, tt.wantProgress)
		}
		if r.Remaining != tt.wantRemaining {
			t.Errorf("metric %d: remaining = %d, want %d", tt.metric, r.Remaining, tt.wantRemaining)
		}
	}
}

func TestValidate_SeedPasses(t *testing.T) {
	if err := Validate(seed); err != nil {
		t.Fatalf("seed buildings failed validation: %v", err)
	}
	if len(Buildings()) != len(progress.AllDomains()) {
		t.Errorf("catalog has %d buildings, want one per domain", len(Buildings()))
	}
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name      string
		buildings []Building
		wantMsg   string
	}{
		{"empty catalog", nil, "no buildings"},
		{"first tier not free", []Building{ladder(5, 50)}, "first tier exigence must be 0"},
		{"equal thresholds", []Building{ladder(0, 50, 50)}, "not above previous"},
		{"decreasing thresholds", []Building{ladder(0, 200, 50)}, "not above previous"},
		{"no tiers", []Building{{Domain: progress.DomainWebDev}}, "has no tiers"},
		{"duplicate domain", []Building{ladder(0, 1), ladder(0, 2)}, "duplicate building"},
		{"unmapped domain", []Building{{Domain: "Cuisine", Tiers: []Tier{{Niveau: 1}}}}, "no stats counter"},
		{"niveau gap", []Building{{Domain: progress.DomainAI, Tiers: []Tier{{Niveau: 1}, {Niveau: 3, Exigence: 10}}}}, "niveau must be 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.buildings)
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

func TestMustLoad_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustLoad did not panic on invalid data")
		}
	}()
	MustLoad([]Building{ladder(0, 0)})
}

func TestMetric(t *testing.T) {
	stats := progress.Stats{CodeQuestsCompleted: 12, WordsMastered: 3, WatchesFixed: 7}
	tests := []struct {
		domain progress.Domain
		want   int
	}{
		{progress.DomainWebDev, 12},
		{progress.DomainAnglais, 3},
		{progress.DomainHorlogerie, 7},
		{progress.DomainAI, 0},
	}
	for _, tt := range tests {
		got, err := Metric(stats, tt.domain)
		if err != nil || got != tt.want {
			t.Errorf("Metric(%s) = %d, %v; want %d", tt.domain, got, err, tt.want)
		}
	}
	if _, err := Metric(stats, "Cuisine"); err == nil {
		t.Error("expected error for unmapped domain")
	}
}

func TestView(t *testing.T) {
	views := View(progress.Stats{WordsMastered: 60, PromptsTested: 150})
	byDomain := make(map[progress.Domain]BuildingView, len(views))
	for _, v := range views {
		byDomain[v.Domain] = v
	}

	en := byDomain[progress.DomainAnglais]
	if en.Current.Titre != "Bibliothèque Technique" || en.Metric != 60 || en.Unit != "Mots Maîtrisés" {
		t.Errorf("anglais view = %+v", en)
	}
	ai := byDomain[progress.DomainAI]
	if ai.Current.Niveau != 3 || ai.Next != nil || ai.Progress != 1 {
		t.Errorf("ia view = %+v", ai)
	}
	web := byDomain[progress.DomainWebDev]
	if web.Current.Niveau != 1 || web.Remaining != 100 {
		t.Errorf("web view = %+v", web)
	}
}
