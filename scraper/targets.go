package scraper

import (
	"fmt"
	"strings"

	"github.com/aluiziolira/go-scrape-carrera/models"
)

// AllTargets enumerates the fixed set of classification targets the
// site exposes: individual categories by distance and sex, and team
// categories by distance, team size, and composition. Only the
// absoluta category paginates.
func AllTargets(baseURL string) []models.Target {
	var targets []models.Target

	for _, carrera := range []string{"5", "10"} {
		for _, sexo := range []string{"M", "F"} {
			targets = append(targets, models.Target{
				Categoria: "absoluta",
				Distancia: carrera + "K",
				Sexo:      sexo,
				URL:       fmt.Sprintf("%s/absoluta.php?sexo=%s&carrera=%s", baseURL, sexo, carrera),
				Paginated: true,
			})
		}
	}

	for _, carrera := range []string{"5", "10"} {
		for _, sexo := range []string{"M", "F"} {
			targets = append(targets, models.Target{
				Categoria: "autonomos",
				Distancia: carrera + "K",
				Sexo:      sexo,
				URL:       fmt.Sprintf("%s/autonomos.php?sexo=%s&carrera=%s", baseURL, sexo, carrera),
			})
		}
	}

	// tipoEquipo keys follow the site's {5k,10k}{2,3,4}{masc,fem,mixto}
	// naming.
	tipos := []struct {
		key  string
		sexo string
	}{
		{"masc", "M"},
		{"fem", "F"},
		{"mixto", "X"},
	}
	for _, distancia := range []string{"5k", "10k"} {
		carrera := "5"
		if distancia == "10k" {
			carrera = "10"
		}
		for num := 2; num <= 4; num++ {
			for _, tipo := range tipos {
				tipoEquipo := fmt.Sprintf("%s%d%s", distancia, num, tipo.key)
				targets = append(targets, models.Target{
					Categoria:     fmt.Sprintf("equipos_%d", num),
					Distancia:     strings.ToUpper(distancia),
					Sexo:          tipo.sexo,
					NumCorredores: num,
					URL:           fmt.Sprintf("%s/equipos.php?tipoEquipo=%s&carrera=%s", baseURL, tipoEquipo, carrera),
				})
			}
		}
	}

	return targets
}
