package parser

import "testing"

const individualPage = `<html><body>
<table>
	<tr><th>Puesto</th><th>Nombre</th><th>Empresa</th><th>Tiempo</th></tr>
	<tr><td>1</td><td>Ana Garcia</td><td>ACME SL</td><td>19:30</td></tr>
	<tr><td>X</td><td>Luis Perez</td><td>Globex</td><td>20:01.5</td></tr>
	<tr><td>3</td><td>Eva Ruiz</td><td>Initech</td><td>-</td></tr>
	<tr><td>truncated</td><td>row</td></tr>
</table>
</body></html>`

func TestParseIndividual(t *testing.T) {
	results := ParseIndividual([]byte(individualPage), "absoluta", "5K", "F")

	if len(results) != 3 {
		t.Fatalf("records=%d, want 3", len(results))
	}

	first := results[0]
	if first.Puesto == nil || *first.Puesto != 1 {
		t.Fatalf("puesto=%v, want 1", first.Puesto)
	}
	if first.Nombre != "Ana Garcia" || first.Empresa != "ACME SL" || first.Tiempo != "19:30" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.TiempoSegundos == nil || *first.TiempoSegundos != 1170 {
		t.Fatalf("tiempo_segundos=%v, want 1170", first.TiempoSegundos)
	}
	if first.Categoria != "absoluta" || first.Distancia != "5K" || first.Sexo != "F" {
		t.Fatalf("target context not propagated: %+v", first)
	}
	if first.NumCorredores != 1 {
		t.Fatalf("num_corredores=%d, want 1", first.NumCorredores)
	}
	if first.NombreEquipo != "" || first.TiempoAcumulado != "" {
		t.Fatalf("individual record carries team fields: %+v", first)
	}

	// A non-numeric rank token drops the rank, never the row.
	second := results[1]
	if second.Puesto != nil {
		t.Fatalf("puesto=%v, want absent for non-numeric token", *second.Puesto)
	}
	if second.Nombre != "Luis Perez" || second.Empresa != "Globex" || second.Tiempo != "20:01.5" {
		t.Fatalf("unexpected second record: %+v", second)
	}
	if second.TiempoSegundos == nil || *second.TiempoSegundos != 1201.5 {
		t.Fatalf("tiempo_segundos=%v, want 1201.5", second.TiempoSegundos)
	}

	// The "-" placeholder keeps the raw value but no seconds.
	third := results[2]
	if third.Tiempo != "-" || third.TiempoSegundos != nil {
		t.Fatalf("placeholder time mishandled: %+v", third)
	}
}

func TestParseIndividualNoTable(t *testing.T) {
	results := ParseIndividual([]byte("<html><body><p>sin resultados</p></body></html>"), "absoluta", "5K", "M")
	if len(results) != 0 {
		t.Fatalf("records=%d, want 0", len(results))
	}
}

func TestParseIndividualHeaderOnly(t *testing.T) {
	body := `<table><tr><th>Puesto</th><th>Nombre</th><th>Empresa</th><th>Tiempo</th></tr></table>`
	results := ParseIndividual([]byte(body), "autonomos", "10K", "M")
	if len(results) != 0 {
		t.Fatalf("records=%d, want 0", len(results))
	}
}
