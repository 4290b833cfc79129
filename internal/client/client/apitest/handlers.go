package apitest

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/traffichub/internal/client/models"
	"github.com/gorilla/mux"
)

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var in models.Credentials
	if !decodeBody(r, &in) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "No data provided"})
		return
	}
	if in.Username == "" || in.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Username and password required"})
		return
	}

	b.mu.Lock()
	u, ok := b.users[in.Username]
	omitRole := b.OmitLoginRole
	b.mu.Unlock()

	if !ok || u.password != in.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid credentials"})
		return
	}

	resp := map[string]any{
		"success":  true,
		"token":    b.IssueToken(in.Username, u.role),
		"username": in.Username,
	}
	if !omitRole {
		resp["role"] = u.role
	}
	writeJSON(w, http.StatusOK, resp)
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var in models.Credentials
	if !decodeBody(r, &in) || in.Username == "" || in.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Username and password required"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.users[in.Username]; exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Username already exists"})
		return
	}
	b.users[in.Username] = user{password: in.Password, role: "officer"}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

func (b *Backend) getVehicles(w http.ResponseWriter, _ *http.Request, _ ctxUser) {
	writeJSON(w, http.StatusOK, b.Vehicles())
}

func (b *Backend) registerVehicle(w http.ResponseWriter, r *http.Request) {
	var v models.Vehicle
	if !decodeBody(r, &v) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	b.AddVehicle(v)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Vehicle registered successfully!"})
}

func (b *Backend) deleteVehicle(w http.ResponseWriter, r *http.Request, u ctxUser) {
	if u.role != "admin" {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Unauthorized: Only admins can perform this action"})
		return
	}
	plate := mux.Vars(r)["plate"]

	b.mu.Lock()
	kept := b.vehicles[:0]
	for _, v := range b.vehicles {
		if v.LicensePlate != plate {
			kept = append(kept, v)
		}
	}
	b.vehicles = kept
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Vehicle %s deleted successfully", plate)})
}

func (b *Backend) getViolations(w http.ResponseWriter, r *http.Request) {
	plate := mux.Vars(r)["plate"]

	b.mu.Lock()
	defer b.mu.Unlock()

	known := false
	for _, v := range b.vehicles {
		if v.LicensePlate == plate {
			known = true
		}
	}
	if !known {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Vehicle not found"})
		return
	}

	var out []models.Violation
	for _, v := range b.violations {
		if v.LicensePlate == plate {
			v.LicensePlate = ""
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "No violations found for this vehicle."})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) findViolationLocked(id int64) int {
	for i, v := range b.violations {
		if v.ViolationID == id {
			return i
		}
	}
	return -1
}

func (b *Backend) getViolation(w http.ResponseWriter, r *http.Request, _ ctxUser) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	b.mu.Lock()
	defer b.mu.Unlock()
	i := -1
	if err == nil {
		i = b.findViolationLocked(id)
	}
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Violation not found"})
		return
	}
	v := b.violations[i]
	writeJSON(w, http.StatusOK, map[string]any{
		"ViolationID": v.ViolationID,
		"FineAmount":  v.FineAmount,
		"Status":      v.Status,
	})
}

func (b *Backend) addViolation(w http.ResponseWriter, r *http.Request) {
	var in models.NewViolation
	if !decodeBody(r, &in) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	known := false
	for _, v := range b.vehicles {
		if v.LicensePlate == in.LicensePlate {
			known = true
		}
	}
	if !known {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Vehicle not found"})
		return
	}
	b.addViolationLocked(in.LicensePlate, models.Violation{
		ViolationType: in.ViolationType,
		FineAmount:    in.FineAmount,
		Location:      in.Location,
	})
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Violation recorded successfully!"})
}

func (b *Backend) payFine(w http.ResponseWriter, r *http.Request, _ ctxUser) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	var in models.PayFineRequest
	if !decodeBody(r, &in) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findViolationLocked(id)
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Violation not found"})
		return
	}
	b.violations[i].Status = models.StatusPaid
	b.payments = append(b.payments, Payment{ViolationID: id, Request: in})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Fine paid successfully!"})
}

func (b *Backend) autodetect(w http.ResponseWriter, r *http.Request, _ ctxUser) {
	file, hdr, err := r.FormFile("image_file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No image file provided"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid image file"})
		return
	}

	b.mu.Lock()
	b.uploads = append(b.uploads, Upload{Filename: hdr.Filename, Size: len(data)})
	msg := b.AutoDetectMessage
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{"message": msg})
}

func (b *Backend) dashboardStats(w http.ResponseWriter, _ *http.Request, _ ctxUser) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stats := models.DashboardStats{
		TotalVehicles:   int64(len(b.vehicles)),
		TotalViolations: int64(len(b.violations)),
		TopViolation:    "N/A",
	}
	counts := map[string]int{}
	best := 0
	for _, v := range b.violations {
		if v.Paid() {
			stats.TotalPaid += v.FineAmount
		} else {
			stats.TotalUnpaid += v.FineAmount
		}
		counts[v.ViolationType]++
		if counts[v.ViolationType] > best {
			best = counts[v.ViolationType]
			stats.TopViolation = v.ViolationType
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (b *Backend) profileStats(w http.ResponseWriter, _ *http.Request, u ctxUser) {
	b.mu.Lock()
	defer b.mu.Unlock()

	role := "N/A"
	if known, ok := b.users[u.name]; ok {
		role = known.role
	}
	writeJSON(w, http.StatusOK, models.ProfileStats{
		Username:           u.name,
		Role:               role,
		ViolationsReported: int64(len(b.violations)),
		VehiclesRegistered: int64(len(b.vehicles)),
	})
}

func (b *Backend) serveEvidence(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	b.mu.Lock()
	data, ok := b.evidence[name]
	b.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found"})
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	_, _ = w.Write(data)
}
