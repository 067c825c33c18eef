package mirrorimport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"dealerops/internal/domain"
)

func TestLocationForSheet(t *testing.T) {
	tests := []struct {
		name string
		want domain.MirrorLocation
		ok   bool
	}{
		{"garage", domain.MirrorGarage, true},
		{"Showroom Floor 1", domain.MirrorShowroomFloor1, true},
		{" inventory-floor-2 ", domain.MirrorInventoryFloor2, true},
		{"REAL_CAR_DATA", domain.MirrorRealCarData, true},
		{"Sheet1", "", false},
	}
	for _, tt := range tests {
		loc, ok := LocationForSheet(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		if tt.ok {
			assert.Equal(t, tt.want, loc)
		}
	}
}

func TestReadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Garage"))
	require.NoError(t, f.SetSheetRow("Garage", "A1", &[]any{"carCode", "carModel", "kmDriven", ""}))
	require.NoError(t, f.SetSheetRow("Garage", "A2", &[]any{"GAR-12", "Ioniq 5", 1520, "ignored"}))
	require.NoError(t, f.SetSheetRow("Garage", "A4", &[]any{"GAR-13", " "}))

	_, err := f.NewSheet("Pricing notes")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Pricing notes", "A1", "internal"))

	_, err = f.NewSheet("showroom floor 1")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("showroom floor 1", "A1", &[]any{"vin", "color"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	snap, err := ReadWorkbook(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, []map[string]any{
		{"carCode": "GAR-12", "carModel": "Ioniq 5", "kmDriven": "1520"},
		{"carCode": "GAR-13"},
	}, snap.Locations[domain.MirrorGarage])
	assert.Contains(t, snap.Locations, domain.MirrorShowroomFloor1)
	assert.Empty(t, snap.Locations[domain.MirrorShowroomFloor1])
	assert.Equal(t, []string{"Pricing notes"}, snap.Skipped)
}

func TestReadWorkbook_NotAWorkbook(t *testing.T) {
	_, err := ReadWorkbook(bytes.NewReader([]byte("vin,color\n")))
	assert.Error(t, err)
}
