package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed fixtures/seed.json
var seedData []byte

// Fixtures returns the bundled demo catalog: a small set of vendors and
// products used to seed in-memory stores for development and tests.
func Fixtures() ([]Vendor, []Product, error) {
	var seed struct {
		Vendors  []Vendor  `json:"vendors"`
		Products []Product `json:"products"`
	}
	if err := json.Unmarshal(seedData, &seed); err != nil {
		return nil, nil, fmt.Errorf("catalog: decode seed fixtures: %w", err)
	}
	return seed.Vendors, seed.Products, nil
}
