package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfgkit/mrplan/pkg/domain/entities"
)

// Loader reads planning scenarios from CSV files.
type Loader struct{}

// NewLoader creates a new CSV loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadItems loads inventory items from a CSV file.
func (l *Loader) LoadItems(filename string) ([]*entities.Item, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("items CSV: %w", err)
	}

	expectedHeader := []string{"item_id", "item_code", "name", "uom", "quantity_on_hand", "reorder_point", "lead_time_days"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("items CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var items []*entities.Item
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("items CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		item, err := parseItem(record)
		if err != nil {
			return nil, fmt.Errorf("items CSV row %d: %w", i+2, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// LoadBOMs loads bills of materials from a CSV file with one row per
// component. Rows sharing a bom_id form one BOM; they must agree on the
// product and appear in position order.
func (l *Loader) LoadBOMs(filename string) ([]*entities.BOM, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("BOM CSV: %w", err)
	}

	expectedHeader := []string{"bom_id", "product_id", "component_id", "quantity", "uom", "position"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("BOM CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	components := make(map[entities.BOMID][]entities.BOMComponent)
	products := make(map[entities.BOMID]entities.ItemID)
	var order []entities.BOMID

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("BOM CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		bomID, productID, component, err := parseBOMComponent(record)
		if err != nil {
			return nil, fmt.Errorf("BOM CSV row %d: %w", i+2, err)
		}

		if existing, seen := products[bomID]; seen {
			if existing != productID {
				return nil, fmt.Errorf("BOM CSV row %d: bom %d has conflicting products %d and %d", i+2, bomID, existing, productID)
			}
		} else {
			products[bomID] = productID
			order = append(order, bomID)
		}
		components[bomID] = append(components[bomID], *component)
	}

	var boms []*entities.BOM
	for _, bomID := range order {
		bom, err := entities.NewBOM(bomID, fmt.Sprintf("BOM %d", bomID), products[bomID], "1.0", components[bomID])
		if err != nil {
			return nil, fmt.Errorf("BOM CSV: %w", err)
		}
		boms = append(boms, bom)
	}

	return boms, nil
}

// LoadScheduleLines loads the demand lines of one MPS from a CSV file.
func (l *Loader) LoadScheduleLines(filename string, mpsID entities.MPSID) ([]*entities.ScheduleLine, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("schedule CSV: %w", err)
	}

	expectedHeader := []string{"line_id", "product_id", "quantity", "required_date"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("schedule CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var lines []*entities.ScheduleLine
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("schedule CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		line, err := parseScheduleLine(record, mpsID)
		if err != nil {
			return nil, fmt.Errorf("schedule CSV row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// Helper functions for parsing CSV records

func readAll(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s must have a header and at least one data row", filename)
	}
	return records, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

func parseItem(record []string) (*entities.Item, error) {
	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid item_id: %s", record[0])
	}

	item, err := entities.NewItem(entities.ItemID(id), record[1], record[2], entities.UnitOfMeasure(record[3]))
	if err != nil {
		return nil, err
	}

	if item.OnHand, err = decimal.NewFromString(record[4]); err != nil {
		return nil, fmt.Errorf("invalid quantity_on_hand: %s", record[4])
	}
	if item.ReorderPoint, err = decimal.NewFromString(record[5]); err != nil {
		return nil, fmt.Errorf("invalid reorder_point: %s", record[5])
	}
	if item.LeadTimeDays, err = strconv.Atoi(record[6]); err != nil {
		return nil, fmt.Errorf("invalid lead_time_days: %s", record[6])
	}

	return item, nil
}

func parseBOMComponent(record []string) (entities.BOMID, entities.ItemID, *entities.BOMComponent, error) {
	bomID, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("invalid bom_id: %s", record[0])
	}

	productID, err := strconv.ParseInt(record[1], 10, 64)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("invalid product_id: %s", record[1])
	}

	componentID, err := strconv.ParseInt(record[2], 10, 64)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("invalid component_id: %s", record[2])
	}

	quantity, err := decimal.NewFromString(record[3])
	if err != nil {
		return 0, 0, nil, fmt.Errorf("invalid quantity: %s", record[3])
	}

	position, err := strconv.Atoi(record[5])
	if err != nil {
		return 0, 0, nil, fmt.Errorf("invalid position: %s", record[5])
	}

	component, err := entities.NewBOMComponent(entities.ItemID(componentID), quantity, entities.UnitOfMeasure(record[4]), position)
	if err != nil {
		return 0, 0, nil, err
	}

	return entities.BOMID(bomID), entities.ItemID(productID), component, nil
}

func parseScheduleLine(record []string, mpsID entities.MPSID) (*entities.ScheduleLine, error) {
	lineID, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid line_id: %s", record[0])
	}

	productID, err := strconv.ParseInt(record[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %s", record[1])
	}

	quantity, err := decimal.NewFromString(record[2])
	if err != nil {
		return nil, fmt.Errorf("invalid quantity: %s", record[2])
	}

	requiredDate, err := time.Parse("2006-01-02", record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid required_date format: %s (expected YYYY-MM-DD)", record[3])
	}

	return entities.NewScheduleLine(entities.ScheduleLineID(lineID), mpsID, entities.ItemID(productID), quantity, requiredDate)
}
