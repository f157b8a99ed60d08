package scraper

import (
	"strings"
	"testing"
)

func TestAllTargets(t *testing.T) {
	targets := AllTargets("http://example.test/clasificaciones25")

	// 4 absoluta + 4 autonomos + 18 equipos combinations.
	if len(targets) != 26 {
		t.Fatalf("targets=%d, want 26", len(targets))
	}

	byCategory := make(map[string]int)
	for _, target := range targets {
		byCategory[target.Categoria]++

		if target.Paginated && target.Categoria != "absoluta" {
			t.Fatalf("unexpected paginated target: %s", target.Label())
		}
		if target.IsTeam() != strings.HasPrefix(target.Categoria, "equipos_") {
			t.Fatalf("team flag mismatch for %s", target.Label())
		}
		if !strings.HasPrefix(target.URL, "http://example.test/clasificaciones25/") {
			t.Fatalf("unexpected URL: %s", target.URL)
		}
	}

	if byCategory["absoluta"] != 4 {
		t.Fatalf("absoluta targets=%d, want 4", byCategory["absoluta"])
	}
	if byCategory["autonomos"] != 4 {
		t.Fatalf("autonomos targets=%d, want 4", byCategory["autonomos"])
	}
	for _, cat := range []string{"equipos_2", "equipos_3", "equipos_4"} {
		if byCategory[cat] != 6 {
			t.Fatalf("%s targets=%d, want 6", cat, byCategory[cat])
		}
	}
}

func TestAllTargetsURLShapes(t *testing.T) {
	targets := AllTargets("http://example.test/clasificaciones25")

	var sawAbsoluta, sawAutonomos, sawEquipos bool
	for _, target := range targets {
		switch {
		case target.URL == "http://example.test/clasificaciones25/absoluta.php?sexo=M&carrera=5":
			sawAbsoluta = true
		case target.URL == "http://example.test/clasificaciones25/autonomos.php?sexo=F&carrera=10":
			sawAutonomos = true
		case target.URL == "http://example.test/clasificaciones25/equipos.php?tipoEquipo=10k3mixto&carrera=10":
			sawEquipos = true
			if target.Sexo != "X" || target.NumCorredores != 3 || target.Distancia != "10K" {
				t.Fatalf("mixto team target malformed: %+v", target)
			}
		}
	}

	if !sawAbsoluta || !sawAutonomos || !sawEquipos {
		t.Fatalf("expected URL shapes missing: absoluta=%v autonomos=%v equipos=%v",
			sawAbsoluta, sawAutonomos, sawEquipos)
	}
}
