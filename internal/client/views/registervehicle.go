package views

import (
	"context"
	"slices"
	"strings"

	"github.com/dmitrijs2005/traffichub/internal/client/gate"
	"github.com/dmitrijs2005/traffichub/internal/client/models"
)

type RegisterVehicleView struct {
	base
}

func NewRegisterVehicle(d Deps) *RegisterVehicleView {
	v := &RegisterVehicleView{}
	v.init(string(gate.ViewRegisterVehicle), d)
	return v
}

// Submit registers veh. An empty type means Car. After success the view
// sends the shell to the vehicle list once the redirect delay has passed.
func (v *RegisterVehicleView) Submit(ctx context.Context, veh models.Vehicle) {
	veh.OwnerName = strings.TrimSpace(veh.OwnerName)
	veh.LicensePlate = strings.TrimSpace(veh.LicensePlate)
	veh.Contact = strings.TrimSpace(veh.Contact)
	veh.Address = strings.TrimSpace(veh.Address)
	if strings.TrimSpace(veh.VehicleType) == "" {
		veh.VehicleType = models.VehicleTypeCar
	}

	if missing := veh.MissingFields(); len(missing) > 0 {
		v.reject(invalid(missing[0], "Please fill in all fields: "+strings.Join(missing, ", ")))
		return
	}
	if !slices.Contains(models.VehicleTypes, veh.VehicleType) {
		v.reject(invalid("VehicleType", "Vehicle type must be one of "+strings.Join(models.VehicleTypes, ", ")))
		return
	}

	v.mu.Lock()
	seq, ok := v.startLocked()
	v.mu.Unlock()
	if !ok {
		return
	}

	msg, err := v.deps.API.RegisterVehicle(ctx, veh)
	v.finish(ctx, seq, err, "Failed to register vehicle", func() {
		if err != nil {
			return
		}
		v.msg = msg
		if v.msg == "" {
			v.msg = "Vehicle registered successfully!"
		}
		v.redirectLocked(gate.ViewVehicles)
	})
}
