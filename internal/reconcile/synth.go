package reconcile

import (
	"sort"
	"strings"
	"time"

	"dealerops/internal/domain"
)

const (
	// DefaultArrivalLocation is used for the synthesized arrival entry when
	// no source names a location.
	DefaultArrivalLocation = "Main Inventory"

	assumedArrivalAge = 30 * 24 * time.Hour
)

// synthesizeLocationHistory builds a minimal placeholder history for a
// vehicle with no recorded movements. arrivalAt is where the vehicle was
// first seen; an empty value falls back to the current location.
func synthesizeLocationHistory(f domain.VehicleFields, arrivalAt string, now time.Time) []domain.LocationEntry {
	if arrivalAt == "" {
		arrivalAt = f.CurrentLocation
	}
	if arrivalAt == "" {
		arrivalAt = DefaultArrivalLocation
	}

	arrived := now.Add(-assumedArrivalAge)
	if f.ArrivalDate != nil {
		arrived = *f.ArrivalDate
	}

	history := []domain.LocationEntry{{
		Location:    arrivalAt,
		Date:        arrived,
		Description: "Initial arrival at " + arrivalAt,
	}}
	if f.PDIDate != nil {
		history = append(history, domain.LocationEntry{
			Location:    arrivalAt,
			Date:        *f.PDIDate,
			Description: "Pre-delivery inspection completed",
		})
	}
	if f.CurrentLocation != "" && !strings.EqualFold(f.CurrentLocation, arrivalAt) {
		history = append(history, domain.LocationEntry{
			Location:    f.CurrentLocation,
			Date:        now,
			Description: "Currently at " + f.CurrentLocation,
		})
	}
	return history
}

func synthesizeSoftwareHistory(f domain.VehicleFields) []domain.SoftwareUpdateEntry {
	if f.LastSoftwareUpdate == nil {
		return []domain.SoftwareUpdateEntry{}
	}
	version := f.SoftwareVersion
	if version == "" {
		version = "unknown"
	}
	return []domain.SoftwareUpdateEntry{{
		Version:     version,
		Date:        *f.LastSoftwareUpdate,
		Description: "Software update installed",
	}}
}

// partsChanged flattens the parts lists of repairs, stamping each part with
// the date and technician of its repair.
func partsChanged(repairs []domain.RepairEntry) []domain.PartChange {
	parts := []domain.PartChange{}
	for _, r := range repairs {
		technician := r.AssignedMechanic
		if technician == "" {
			technician = strings.Join(r.AssignedEmployees, ", ")
		}
		for _, p := range r.PartsUsed {
			parts = append(parts, domain.PartChange{
				PartName:   p.Name,
				PartNumber: p.Number,
				Supplier:   p.Supplier,
				Cost:       p.Cost,
				Quantity:   p.Quantity,
				RepairDate: r.Date,
				Technician: technician,
			})
		}
	}
	return parts
}

// mechanicsWorked returns the sorted set of everyone assigned to repairs.
func mechanicsWorked(repairs []domain.RepairEntry) []string {
	seen := make(map[string]struct{})
	add := func(name string) {
		if name = strings.TrimSpace(name); name != "" {
			seen[name] = struct{}{}
		}
	}
	for _, r := range repairs {
		add(r.AssignedMechanic)
		for _, e := range r.AssignedEmployees {
			add(e)
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
