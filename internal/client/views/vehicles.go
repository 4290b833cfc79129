package views

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/traffichub/internal/client/gate"
	"github.com/dmitrijs2005/traffichub/internal/client/models"
)

// Confirm asks the user a yes/no question.
type Confirm func(prompt string) bool

type VehiclesView struct {
	base
	vehicles []models.Vehicle
}

func NewVehicles(d Deps) *VehiclesView {
	v := &VehiclesView{}
	v.init(string(gate.ViewVehicles), d)
	return v
}

// Load fetches the list. It doubles as the retry action after a failure.
func (v *VehiclesView) Load(ctx context.Context) {
	v.mu.Lock()
	seq, ok := v.startLocked()
	v.mu.Unlock()
	if !ok {
		return
	}

	list, err := v.deps.API.ListVehicles(ctx)
	v.finish(ctx, seq, err, "Failed to fetch vehicles. Please try again later.", func() {
		if err != nil {
			v.vehicles = nil
			return
		}
		v.vehicles = list
	})
}

func (v *VehiclesView) Vehicles() []models.Vehicle {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]models.Vehicle(nil), v.vehicles...)
}

// CanDelete decides whether the delete control is offered at all.
func (v *VehiclesView) CanDelete() bool {
	return v.deps.Session.IsAdmin()
}

func DeletePrompt(plate string) string {
	return fmt.Sprintf("Are you sure you want to delete vehicle %s? This action cannot be undone.", plate)
}

// Delete removes a vehicle after confirm agrees. Declining sends nothing and
// leaves the view as it was. A failed delete keeps the list untouched.
func (v *VehiclesView) Delete(ctx context.Context, plate string, confirm Confirm) {
	if !v.CanDelete() {
		v.reject(invalid("plate", "Only administrators can delete vehicles"))
		return
	}
	if plate == "" {
		v.reject(invalid("plate", "Please choose a vehicle to delete"))
		return
	}
	if confirm == nil || !confirm(DeletePrompt(plate)) {
		return
	}
	if v.Closed() {
		return
	}

	msg, err := v.deps.API.DeleteVehicle(ctx, plate)
	v.settle(ctx, err, "Failed to delete vehicle.", func() {
		if err != nil {
			return
		}
		kept := v.vehicles[:0:0]
		for _, veh := range v.vehicles {
			if veh.LicensePlate != plate {
				kept = append(kept, veh)
			}
		}
		v.vehicles = kept
		v.msg = msg
		if v.msg == "" {
			v.msg = fmt.Sprintf("Vehicle %s deleted", plate)
		}
	})
}
