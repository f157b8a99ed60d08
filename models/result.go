// Package models defines data structures for the downloader.
package models

import (
	"fmt"
	"time"
)

// Result is one normalized classification row: a single runner's
// participation and timing, individual or team-member.
type Result struct {
	Puesto          *int     `csv:"puesto" json:"puesto" db:"puesto"`
	Nombre          string   `csv:"nombre" json:"nombre" db:"nombre"`
	Empresa         string   `csv:"empresa" json:"empresa" db:"empresa"`
	Tiempo          string   `csv:"tiempo" json:"tiempo" db:"tiempo"`
	TiempoSegundos  *float64 `csv:"tiempo_segundos" json:"tiempo_segundos" db:"tiempo_segundos"`
	Categoria       string   `csv:"categoria" json:"categoria" db:"categoria"`
	Distancia       string   `csv:"distancia" json:"distancia" db:"distancia"`
	Sexo            string   `csv:"sexo" json:"sexo" db:"sexo"`
	NumCorredores   int      `csv:"num_corredores" json:"num_corredores" db:"num_corredores"`
	NombreEquipo    string   `csv:"nombre_equipo" json:"nombre_equipo" db:"nombre_equipo"`
	TiempoAcumulado string   `csv:"tiempo_acumulado" json:"tiempo_acumulado" db:"tiempo_acumulado"`
}

// Target identifies one logical fetch unit before pagination expansion.
type Target struct {
	Categoria     string
	Distancia     string
	Sexo          string
	NumCorredores int // 0 for individual categories
	URL           string
	Paginated     bool
}

// IsTeam reports whether the target points at a team classification.
func (t Target) IsTeam() bool {
	return t.NumCorredores > 0
}

// Label renders a stable identifier used in logs and the run summary.
func (t Target) Label() string {
	if t.IsTeam() {
		return fmt.Sprintf("%s %s %s x%d", t.Categoria, t.Distancia, t.Sexo, t.NumCorredores)
	}
	return fmt.Sprintf("%s %s %s", t.Categoria, t.Distancia, t.Sexo)
}

// SkippedTarget records a target abandoned after retry exhaustion.
type SkippedTarget struct {
	Label string
	Err   error
}

// RunResult holds the overall outcome of a download run.
type RunResult struct {
	StartTime    time.Time
	EndTime      time.Time
	TotalRecords int
	RequestCount int
	ErrorCount   int
	RetryCount   int
	Skipped      []SkippedTarget
}
