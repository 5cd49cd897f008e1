// seed_suppliers.go is a standalone script to read a supplier CSV and seed records via the SupplyRank API.
//
// The first row names the columns using the API field names (name, quantity_units,
// price_per_unit, deforestation_risk, reusable, ...). Unknown columns are skipped.
//
// Usage:
//
//	go run scripts/seed_suppliers.go -csv suppliers.csv -api http://localhost:8700 -token secret
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

var textColumns = map[string]bool{
	"name":               true,
	"location_city":      true,
	"location_country":   true,
	"deforestation_risk": true,
}

var boolColumns = map[string]bool{
	"reusable":           true,
	"recyclability":      true,
	"recycled_materials": true,
}

var numberColumns = map[string]bool{
	"quantity_units":          true,
	"price_per_unit":          true,
	"unit_weight_kg":          true,
	"delivery_cost_sea":       true,
	"delivery_cost_road":      true,
	"end_of_life_cost_per_kg": true,
	"distance_sea_km":         true,
	"distance_road_km":        true,
	"distance_air_km":         true,
	"emission_factor_prod":    true,
	"emission_factor_sea":     true,
	"emission_factor_road":    true,
	"emission_factor_air":     true,
	"emission_factor_eol":     true,
	"reuse_count":             true,
	"return_km":               true,
}

func main() {
	csvPath := flag.String("csv", "suppliers.csv", "path to supplier CSV file")
	apiURL := flag.String("api", "http://localhost:8700", "SupplyRank API base URL")
	token := flag.String("token", "", "admin bearer token")
	dryRun := flag.Bool("dry-run", false, "print records without posting")
	flag.Parse()

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	records, err := readSuppliers(f)
	if err != nil {
		log.Fatalf("read csv: %v", err)
	}
	log.Printf("parsed %d suppliers from %s", len(records), *csvPath)

	if *dryRun {
		for i, rec := range records {
			body, _ := json.Marshal(rec)
			fmt.Printf("[%d] %s\n", i+1, body)
		}
		return
	}

	client := &http.Client{}
	created, skipped := 0, 0
	for _, rec := range records {
		name, _ := rec["name"].(string)
		body, _ := json.Marshal(rec)
		req, err := http.NewRequest("POST", *apiURL+"/api/v1/suppliers", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %q: %v", name, err)
			skipped++
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		if *token != "" {
			req.Header.Set("Authorization", "Bearer "+*token)
		}

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %q: %v", name, err)
			skipped++
			continue
		}
		msg, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusCreated {
			created++
		} else {
			log.Printf("skip %q: status %d: %s", name, resp.StatusCode, strings.TrimSpace(string(msg)))
			skipped++
		}
	}

	log.Printf("done: %d created, %d skipped", created, skipped)
}

func readSuppliers(r io.Reader) ([]map[string]any, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var out []map[string]any
	for line, row := range rows[1:] {
		rec := make(map[string]any, len(header))
		for i, col := range header {
			if i >= len(row) || row[i] == "" {
				continue
			}
			v := strings.TrimSpace(row[i])
			switch {
			case textColumns[col]:
				rec[col] = v
			case boolColumns[col]:
				b, err := parseYesNo(v)
				if err != nil {
					return nil, fmt.Errorf("line %d, %s: %w", line+2, col, err)
				}
				rec[col] = b
			case numberColumns[col]:
				n, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, fmt.Errorf("line %d, %s: %w", line+2, col, err)
				}
				rec[col] = n
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// parseYesNo accepts the Yes/No answers of the supplier form as well as Go booleans.
func parseYesNo(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return strconv.ParseBool(v)
}
