package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aluiziolira/go-scrape-carrera/models"
)

var accumulatedPattern = regexp.MustCompile(`Tiempo Acumulado:\s*(\d+)`)

// ParseTeams extracts rows from a team classification page. Each
// tbody.equipo block yields one record per member; the block's rank,
// accumulated time, and team name are replicated onto every member row.
func ParseTeams(body []byte, categoria, distancia, sexo string, numCorredores int) []models.Result {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var results []models.Result
	doc.Find("tbody.equipo").Each(func(_ int, block *goquery.Selection) {
		nombreEquipo := strings.ToUpper(block.AttrOr("data-equipo", ""))
		rows := block.Find("tr")
		if rows.Length() == 0 {
			return
		}

		// First row: rank (rowspan cell), team-info cell, then the
		// first member's name and time.
		cells := rows.First().Find("td")
		if cells.Length() < 4 {
			return
		}

		puesto := parseRank(cells.Eq(0).Text())
		acumulado := parseAccumulated(cells.Eq(1).Text())

		emit := func(nombre, tiempo string) {
			results = append(results, models.Result{
				Puesto:          puesto,
				Nombre:          nombre,
				Empresa:         nombreEquipo,
				Tiempo:          tiempo,
				TiempoSegundos:  durationOrNil(tiempo),
				Categoria:       categoria,
				Distancia:       distancia,
				Sexo:            sexo,
				NumCorredores:   numCorredores,
				NombreEquipo:    nombreEquipo,
				TiempoAcumulado: acumulado,
			})
		}

		emit(strings.TrimSpace(cells.Eq(2).Text()), strings.TrimSpace(cells.Eq(3).Text()))

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			memberCells := row.Find("td")
			if memberCells.Length() < 2 {
				return
			}
			emit(strings.TrimSpace(memberCells.Eq(0).Text()), strings.TrimSpace(memberCells.Eq(1).Text()))
		})
	})
	return results
}

// parseAccumulated pulls the "Tiempo Acumulado: <milliseconds>" marker
// out of the team-info cell and formats it as zero-padded HH:MM:SS.
// Blocks without the marker keep an empty accumulated time.
func parseAccumulated(text string) string {
	match := accumulatedPattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	ms, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil || ms == 0 {
		return ""
	}

	totalSeconds := ms / 1000
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
