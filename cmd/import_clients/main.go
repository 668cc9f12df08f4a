// import_clients genera un script SQL para migrar la cartera de clientes desde
// un CSV exportado de sistemas legados (codificación ISO-8859-1, típica de
// exportes viejos de Excel/Access en Latinoamérica).
//
// Formato esperado del CSV (con encabezado): nombre;email;telefono;origen
//
// Uso: go run ./cmd/import_clients <company_id> [ruta/clientes.csv]
// Por defecto busca clientes.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/900_seed_clients.sql
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: import_clients <company_id> [clientes.csv]")
		os.Exit(1)
	}
	companyID := os.Args[1]
	csvPath := "clientes.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) < 2 {
		fmt.Fprintln(os.Stderr, "CSV vacío o solo encabezado")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "900_seed_clients.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Clientes migrados desde sistema legado\n")
	out.WriteString("-- Generado por cmd/import_clients\n\n")

	count := 0
	for _, rec := range records[1:] { // saltar encabezado
		if len(rec) < 1 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		name := strings.TrimSpace(rec[0])
		email, phone, source := "", "", "migracion"
		if len(rec) > 1 {
			email = strings.ToLower(strings.TrimSpace(rec[1]))
		}
		if len(rec) > 2 {
			phone = strings.TrimSpace(rec[2])
		}
		if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
			source = strings.TrimSpace(rec[3])
		}

		phones := "[]"
		if phone != "" {
			b, _ := json.Marshal([]map[string]string{{"number": phone, "label": "principal"}})
			phones = string(b)
		}

		fmt.Fprintf(out, "INSERT INTO clients (id, company_id, name, email, phones, observations, source, created_at, updated_at)\n")
		fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', '%s', '%s', '[]', '%s', NOW(), NOW())\n",
			uuid.New().String(), escapeSQL(companyID), escapeSQL(name),
			escapeSQL(email), escapeSQL(phones), escapeSQL(source))
		out.WriteString("ON CONFLICT (company_id, email) WHERE email <> '' DO NOTHING;\n")
		count++
	}

	fmt.Printf("Generado %s: %d clientes\n", outPath, count)
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
