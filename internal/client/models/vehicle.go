package models

const (
	VehicleTypeCar        = "Car"
	VehicleTypeMotorcycle = "Motorcycle"
	VehicleTypeTruck      = "Truck"
	VehicleTypeBus        = "Bus"
)

// VehicleTypes lists the choices offered by the registration form, default first.
var VehicleTypes = []string{VehicleTypeCar, VehicleTypeMotorcycle, VehicleTypeTruck, VehicleTypeBus}

type Vehicle struct {
	VehicleID    int64  `json:"VehicleID,omitempty"`
	OwnerName    string `json:"OwnerName"`
	LicensePlate string `json:"LicensePlate"`
	VehicleType  string `json:"VehicleType"`
	Contact      string `json:"Contact"`
	Address      string `json:"Address"`
}

// MissingFields names the required registration fields left blank.
func (v Vehicle) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"OwnerName", v.OwnerName},
		{"LicensePlate", v.LicensePlate},
		{"VehicleType", v.VehicleType},
		{"Contact", v.Contact},
		{"Address", v.Address},
	} {
		if isBlank(f.value) {
			missing = append(missing, f.name)
		}
	}
	return missing
}
