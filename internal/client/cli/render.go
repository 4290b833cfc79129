package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/traffichub/internal/client/models"
	"github.com/dmitrijs2005/traffichub/internal/client/views"
)

func (a *App) table(header string, rows func(w *tabwriter.Writer)) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, header)
	rows(w)
	_ = w.Flush()
}

func (a *App) renderVehicles(list []models.Vehicle) {
	if len(list) == 0 {
		a.println("No vehicles registered.")
		return
	}
	a.table("ID\tPLATE\tOWNER\tTYPE\tCONTACT\tADDRESS", func(w *tabwriter.Writer) {
		for _, v := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				v.VehicleID, v.LicensePlate, v.OwnerName, v.VehicleType, v.Contact, v.Address)
		}
	})
}

func (a *App) renderViolations(v *views.ViolationsView, list []models.Violation) {
	a.printf("Violations for %s:\n", v.Plate())
	a.table("ID\tTYPE\tFINE\tLOCATION\tDATE\tSTATUS\tEVIDENCE", func(w *tabwriter.Writer) {
		for _, viol := range list {
			link := v.EvidenceLink(viol)
			if link == "" {
				link = "-"
			}
			fmt.Fprintf(w, "%d\t%s\t₹%.2f\t%s\t%s\t%s\t%s\n",
				viol.ViolationID, viol.ViolationType, viol.FineAmount, viol.Location, viol.DateTime, viol.Status, link)
		}
	})
}

func (a *App) renderDashboard(d *models.DashboardStats) {
	a.table("TOTAL VEHICLES\tTOTAL VIOLATIONS\tPAID\tUNPAID\tTOP VIOLATION", func(w *tabwriter.Writer) {
		top := d.TopViolation
		if top == "" {
			top = "-"
		}
		fmt.Fprintf(w, "%d\t%d\t₹%.2f\t₹%.2f\t%s\n",
			d.TotalVehicles, d.TotalViolations, d.TotalPaid, d.TotalUnpaid, top)
	})
}

func (a *App) renderProfile(p *models.ProfileStats) {
	a.printf("Username:             %s\n", p.Username)
	a.printf("Role:                 %s\n", p.Role)
	a.printf("Violations reported:  %d\n", p.ViolationsReported)
	a.printf("Vehicles registered:  %d\n", p.VehiclesRegistered)
}
