package pipeline

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aluiziolira/go-scrape-carrera/models"
)

func sampleRecords() []models.Result {
	puesto := 1
	segundos := 1170.0
	return []models.Result{
		{
			Puesto:         &puesto,
			Nombre:         "Ana Garcia",
			Empresa:        "ACME SL",
			Tiempo:         "19:30",
			TiempoSegundos: &segundos,
			Categoria:      "absoluta",
			Distancia:      "5K",
			Sexo:           "F",
			NumCorredores:  1,
		},
		{
			Nombre:          "Luis Perez",
			Empresa:         "TRAIL CORP",
			Tiempo:          "-",
			Categoria:       "equipos_2",
			Distancia:       "10K",
			Sexo:            "M",
			NumCorredores:   2,
			NombreEquipo:    "TRAIL CORP",
			TiempoAcumulado: "01:30:00",
		},
	}
}

func TestCSVWriterWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clasificaciones.csv")

	writer, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("create csv writer: %v", err)
	}

	if err := writer.Write(sampleRecords()); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := writer.Validate(); err != nil {
		t.Fatalf("validate csv: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close csv: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows=%d, want 3", len(rows))
	}
	if rows[0][0] != "puesto" || rows[0][1] != "nombre" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "1" || rows[1][1] != "Ana Garcia" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	// Absent rank and seconds serialize as empty cells.
	if rows[2][0] != "" || rows[2][4] != "" {
		t.Fatalf("absent optionals should be empty cells: %v", rows[2])
	}
}

func TestJSONWriterWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clasificaciones.jsonl")

	writer, err := NewJSONWriter(path)
	if err != nil {
		t.Fatalf("create json writer: %v", err)
	}

	if err := writer.Write(sampleRecords()); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close json: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open json: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	count := 0
	for scanner.Scan() {
		var decoded models.Result
		if err := json.Unmarshal(scanner.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid json line: %v", err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan json: %v", err)
	}
	if count != 2 {
		t.Fatalf("json lines=%d, want 2", count)
	}
}

func TestDualWriterWrite(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "clasificaciones.csv")
	jsonPath := filepath.Join(dir, "clasificaciones.jsonl")

	writer, err := NewDualWriter(csvPath, jsonPath)
	if err != nil {
		t.Fatalf("create dual writer: %v", err)
	}

	if err := writer.Write(sampleRecords()); err != nil {
		t.Fatalf("write dual: %v", err)
	}
	if err := writer.Validate(); err != nil {
		t.Fatalf("validate dual: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close dual: %v", err)
	}

	if info, err := os.Stat(csvPath); err != nil || info.Size() == 0 {
		t.Fatalf("csv file missing or empty")
	}
	if info, err := os.Stat(jsonPath); err != nil || info.Size() == 0 {
		t.Fatalf("json file missing or empty")
	}
}

func TestCSVWriterCreatesOutputDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "clasificaciones.csv")

	writer, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("create csv writer: %v", err)
	}
	defer writer.Close()

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("output dir not created: %v", err)
	}
}
