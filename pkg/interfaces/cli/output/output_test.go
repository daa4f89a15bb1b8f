package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfgkit/mrplan/pkg/application/dto"
)

func sampleResult() *dto.RunResult {
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return &dto.RunResult{
		ID:             uuid.New(),
		Name:           "march explosion",
		MPSID:          1,
		LeadTimeFactor: 1.0,
		RunDate:        date,
		Items: []dto.ResultNode{
			{
				ID: 1, ItemID: 1, ItemCode: "TBL-100",
				RequiredDate: date, OrderReleaseDate: date.AddDate(0, 0, -3),
				GrossRequirement: decimal.NewFromInt(50),
				ProjectedOnHand:  decimal.NewFromInt(10),
				NetRequirement:   decimal.NewFromInt(40),
				IsCritical:       true,
				Level:            0, HasChildren: true,
			},
			{
				ID: 2, ItemID: 2, ItemCode: "LEG-200",
				RequiredDate: date, OrderReleaseDate: date.AddDate(0, 0, -2),
				GrossRequirement: decimal.NewFromInt(160),
				ProjectedOnHand:  decimal.NewFromInt(200),
				NetRequirement:   decimal.Zero,
				Level:            1,
			},
		},
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer

	err := Render(&buf, sampleResult(), Config{Format: "text"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	got := buf.String()
	for _, want := range []string{"march explosion", "TBL-100", "LEG-200", "critical"} {
		if !strings.Contains(got, want) {
			t.Errorf("text output missing %q:\n%s", want, got)
		}
	}

	// Child rows are indented under their parent.
	if !strings.Contains(got, "  LEG-200") {
		t.Errorf("level 1 row not indented:\n%s", got)
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	result := sampleResult()

	err := Render(&buf, result, Config{Format: "json"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var decoded dto.RunResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Name != result.Name || len(decoded.Items) != 2 {
		t.Errorf("decoded result = %+v", decoded)
	}
	if !decoded.Items[0].HasChildren {
		t.Error("hierarchy annotations must survive the round trip")
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer

	err := Render(&buf, sampleResult(), Config{Format: "xml"})
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}
