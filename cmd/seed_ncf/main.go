// seed_ncf genera un script SQL para registrar rangos de NCF autorizados por
// la DGII a partir del CSV que exporta la Oficina Virtual (una fila por rango:
// rnc;autorizacion;tipo;desde;hasta;vence).
//
// Uso: go run ./cmd/seed_ncf [ruta/rangos.csv]
// Por defecto busca rangos.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/900_seed_ncf_sequences.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type rango struct {
	rnc           string
	authorization string
	ncfType       string
	from, to      int64
	expiresOn     string
}

func main() {
	csvPath := "rangos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// La Oficina Virtual exporta en ISO-8859-1 y separa con punto y coma.
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.FieldsPerRecord = 6

	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var rangos []rango
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "rnc") {
			continue // encabezado
		}
		from, err1 := strconv.ParseInt(strings.TrimSpace(rec[3]), 10, 64)
		to, err2 := strconv.ParseInt(strings.TrimSpace(rec[4]), 10, 64)
		if err1 != nil || err2 != nil || from < 1 || to < from {
			fmt.Fprintf(os.Stderr, "Fila %d: rango inválido (%s..%s)\n", i+1, rec[3], rec[4])
			os.Exit(1)
		}
		expires := strings.TrimSpace(rec[5])
		if _, err := time.Parse("2006-01-02", expires); err != nil {
			fmt.Fprintf(os.Stderr, "Fila %d: fecha de vencimiento inválida %q\n", i+1, expires)
			os.Exit(1)
		}
		rangos = append(rangos, rango{
			rnc:           strings.TrimSpace(rec[0]),
			authorization: strings.TrimSpace(rec[1]),
			ncfType:       strings.ToUpper(strings.TrimSpace(rec[2])),
			from:          from,
			to:            to,
			expiresOn:     expires,
		})
	}
	if len(rangos) == 0 {
		fmt.Fprintln(os.Stderr, "El CSV no contiene rangos")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "900_seed_ncf_sequences.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Rangos NCF autorizados por la DGII\n")
	out.WriteString("-- Generado desde el CSV de la Oficina Virtual\n\n")
	for _, r := range rangos {
		fmt.Fprintf(out, "INSERT INTO ncf_sequences (id, company_id, authorization_number, ncf_type, range_from, range_to, current, expires_on, exhausted, is_active, created_at, updated_at)\n")
		fmt.Fprintf(out, "SELECT '%s', id, '%s', '%s', %d, %d, %d, '%s', false, true, now(), now() FROM companies WHERE rnc = '%s'\n",
			uuid.New().String(), escapeSQL(r.authorization), r.ncfType, r.from, r.to, r.from, r.expiresOn, escapeSQL(r.rnc))
		out.WriteString("ON CONFLICT (company_id, ncf_type, range_from) DO NOTHING;\n")
	}

	fmt.Printf("Generado %s: %d rangos\n", outPath, len(rangos))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
