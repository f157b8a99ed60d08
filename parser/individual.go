package parser

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aluiziolira/go-scrape-carrera/models"
)

var allDigits = regexp.MustCompile(`^\d+$`)

// ParseIndividual extracts rows from an individual classification table
// (absoluta/autonomos). The first table row is a header and is skipped;
// rows with fewer than four cells are dropped silently.
func ParseIndividual(body []byte, categoria, distancia, sexo string) []models.Result {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil
	}

	var results []models.Result
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}

		tiempo := strings.TrimSpace(cells.Eq(3).Text())
		results = append(results, models.Result{
			Puesto:         parseRank(cells.Eq(0).Text()),
			Nombre:         strings.TrimSpace(cells.Eq(1).Text()),
			Empresa:        strings.TrimSpace(cells.Eq(2).Text()),
			Tiempo:         tiempo,
			TiempoSegundos: durationOrNil(tiempo),
			Categoria:      categoria,
			Distancia:      distancia,
			Sexo:           sexo,
			NumCorredores:  1,
		})
	})
	return results
}

// parseRank converts a rank cell to an int, or nil when the token is
// not all-digits (DNF markers and the like).
func parseRank(text string) *int {
	text = strings.TrimSpace(text)
	if !allDigits.MatchString(text) {
		return nil
	}
	rank, err := strconv.Atoi(text)
	if err != nil {
		return nil
	}
	return &rank
}

func durationOrNil(tiempo string) *float64 {
	seconds, ok := ParseDuration(tiempo)
	if !ok {
		return nil
	}
	return &seconds
}
