package domain

// Category is the powertrain category of a vehicle.
type Category string

const (
	CategoryEV   Category = "EV"
	CategoryREV  Category = "REV"
	CategoryICEV Category = "ICEV"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryEV, CategoryREV, CategoryICEV:
		return true
	}
	return false
}

// CarStatus represents the lifecycle of an inventory row.
type CarStatus string

const (
	CarStatusOrdered   CarStatus = "ordered"
	CarStatusInTransit CarStatus = "in_transit"
	CarStatusInStock   CarStatus = "in_stock"
	CarStatusReserved  CarStatus = "reserved"
	CarStatusSold      CarStatus = "sold"
	CarStatusDelivered CarStatus = "delivered"
)

// MirrorLocation names a flat local mirror of vehicle records kept for one
// physical location.
type MirrorLocation string

const (
	MirrorMainInventory   MirrorLocation = "main_inventory"
	MirrorShowroomFloor1  MirrorLocation = "showroom_floor_1"
	MirrorShowroomFloor2  MirrorLocation = "showroom_floor_2"
	MirrorGarage          MirrorLocation = "garage"
	MirrorInventoryFloor2 MirrorLocation = "inventory_floor_2"
	MirrorRealCarData     MirrorLocation = "real_car_data"
)

// Valid reports whether l is one of the known mirror locations.
func (l MirrorLocation) Valid() bool {
	switch l {
	case MirrorMainInventory, MirrorShowroomFloor1, MirrorShowroomFloor2,
		MirrorGarage, MirrorInventoryFloor2, MirrorRealCarData:
		return true
	}
	return false
}

// DisplayName returns the human readable location label used in synthesized
// location history.
func (l MirrorLocation) DisplayName() string {
	switch l {
	case MirrorMainInventory:
		return "Main Inventory"
	case MirrorShowroomFloor1:
		return "Showroom Floor 1"
	case MirrorShowroomFloor2:
		return "Showroom Floor 2"
	case MirrorGarage:
		return "Garage"
	case MirrorInventoryFloor2:
		return "Inventory Floor 2"
	case MirrorRealCarData:
		return "Real Car Data"
	}
	return string(l)
}

// Keys that identify a location mirror record, in lookup order. Mirror
// storage and the reconciler read identity through these lists only.
var (
	MirrorVINKeys      = []string{"vin", "vinNumber", "vin_number"}
	MirrorCarCodeKeys  = []string{"carCode", "car_code"}
	MirrorVINAliasKeys = []string{"vinAlias", "vin_alias"}
	MirrorIDKeys       = []string{"id"}
)

// SourceShape tags the upstream shape of a loosely typed vehicle record.
type SourceShape string

const (
	// ShapeCar is a typed inventory row from the cars table.
	ShapeCar SourceShape = "car"
	// ShapeBackendRow is a snake_case row as returned by the hosted backend.
	ShapeBackendRow SourceShape = "backend_row"
	// ShapeMirror is a camelCase record from a local location mirror.
	ShapeMirror SourceShape = "mirror"
)
