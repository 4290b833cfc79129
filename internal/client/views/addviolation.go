package views

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/traffichub/internal/client/gate"
	"github.com/dmitrijs2005/traffichub/internal/client/models"
)

type AddViolationView struct {
	base
	plates []string
	loaded bool
}

func NewAddViolation(d Deps) *AddViolationView {
	v := &AddViolationView{}
	v.init(string(gate.ViewAddViolation), d)
	return v
}

// Load fills the plate choices from the registered vehicles.
func (v *AddViolationView) Load(ctx context.Context) {
	v.mu.Lock()
	seq, ok := v.startLocked()
	v.mu.Unlock()
	if !ok {
		return
	}

	list, err := v.deps.API.ListVehicles(ctx)
	v.finish(ctx, seq, err, "Failed to load vehicles", func() {
		if err != nil {
			v.plates, v.loaded = nil, false
			return
		}
		v.plates = make([]string, 0, len(list))
		for _, veh := range list {
			v.plates = append(v.plates, veh.LicensePlate)
		}
		v.loaded = true
	})
}

// Plates returns the choices loaded for the plate dropdown.
func (v *AddViolationView) Plates() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.plates...)
}

func (v *AddViolationView) Submit(ctx context.Context, nv models.NewViolation) {
	nv.LicensePlate = strings.TrimSpace(nv.LicensePlate)
	nv.Location = strings.TrimSpace(nv.Location)

	v.mu.Lock()
	plates, loaded := v.plates, v.loaded
	v.mu.Unlock()

	switch {
	case nv.LicensePlate == "":
		v.reject(invalid("LicensePlate", "Please select a license plate"))
		return
	case loaded && !slices.Contains(plates, nv.LicensePlate):
		v.reject(invalid("LicensePlate", fmt.Sprintf("Vehicle %s is not registered", nv.LicensePlate)))
		return
	case !slices.Contains(models.ViolationTypes, nv.ViolationType):
		v.reject(invalid("ViolationType", "Please select a violation type"))
		return
	case nv.FineAmount < models.MinFineAmount:
		v.reject(invalid("FineAmount", fmt.Sprintf("Fine amount must be at least %.0f", models.MinFineAmount)))
		return
	case nv.Location == "":
		v.reject(invalid("Location", "Please enter a location"))
		return
	}

	v.mu.Lock()
	seq, ok := v.startLocked()
	v.mu.Unlock()
	if !ok {
		return
	}

	msg, err := v.deps.API.AddViolation(ctx, nv)
	v.finish(ctx, seq, err, "Failed to add violation", func() {
		if err != nil {
			return
		}
		v.msg = msg
		if v.msg == "" {
			v.msg = "Violation recorded successfully!"
		}
		v.redirectLocked(gate.ViewViolations)
	})
}
