package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/CAPRI-CORP/desinfec-backend/internal/scheduling"
)

func createSchedulingHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeSchedulingInput(w, r)
		if !ok {
			return
		}

		if _, err := svc.Create(r.Context(), in); err != nil {
			handleSchedulingError(w, err)
			return
		}

		writeMessage(w, http.StatusCreated, "scheduling created successfully")
	}
}

// listSchedulingsHandler returns all schedulings with joined detail, or,
// when both initialDate and finalDate are given, the status-bucketed
// service report for that range.
func listSchedulingsHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fromParam := r.URL.Query().Get("initialDate")
		toParam := r.URL.Query().Get("finalDate")

		if fromParam == "" && toParam == "" {
			details, err := svc.List(r.Context())
			if err != nil {
				handleSchedulingError(w, err)
				return
			}

			resp := make([]SchedulingResponse, 0, len(details))
			for i := range details {
				resp = append(resp, toSchedulingResponse(&details[i]))
			}
			writeJSON(w, http.StatusOK, resp)
			return
		}

		if fromParam == "" || toParam == "" {
			writeError(w, http.StatusBadRequest, "invalid_range", "initialDate and finalDate must be given together")
			return
		}

		from, _, err := parseDateParam(fromParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_initial_date", "initialDate must be YYYY-MM-DD or RFC 3339")
			return
		}
		to, dateOnly, err := parseDateParam(toParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_final_date", "finalDate must be YYYY-MM-DD or RFC 3339")
			return
		}
		if dateOnly {
			// A bare end date is inclusive: cover the whole day.
			to = to.Add(24*time.Hour - time.Second)
		}

		report, err := svc.Report(r.Context(), from, to)
		if err != nil {
			handleSchedulingError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func getSchedulingHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_scheduling_id", "id must be a valid UUID")
			return
		}

		detail, err := svc.Get(r.Context(), id)
		if err != nil {
			handleSchedulingError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSchedulingResponse(detail))
	}
}

func updateSchedulingHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_scheduling_id", "id must be a valid UUID")
			return
		}

		in, ok := decodeSchedulingInput(w, r)
		if !ok {
			return
		}

		if err := svc.Update(r.Context(), id, in); err != nil {
			handleSchedulingError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "scheduling updated successfully")
	}
}

func deleteSchedulingHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_scheduling_id", "id must be a valid UUID")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			handleSchedulingError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "scheduling deleted successfully")
	}
}

// decodeSchedulingInput parses and validates the shared create/update body.
// It writes the error response itself and reports ok=false on failure.
func decodeSchedulingInput(w http.ResponseWriter, r *http.Request) (scheduling.SchedulingInput, bool) {
	var req SchedulingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return scheduling.SchedulingInput{}, false
	}

	required := []struct {
		field string
		value string
	}{
		{"customerId", req.CustomerID},
		{"userId", req.UserID},
		{"statusId", req.StatusID},
		{"cost", req.Cost},
		{"date", req.Date},
		{"initialTime", req.InitialTime},
		{"conclusionTime", req.ConclusionTime},
	}
	for _, f := range required {
		if f.value == "" {
			writeError(w, http.StatusBadRequest, "missing_required_field", f.field+" is required")
			return scheduling.SchedulingInput{}, false
		}
	}
	if len(req.ServiceIDs) == 0 {
		writeError(w, http.StatusBadRequest, "missing_required_field", "serviceId must be a non-empty array")
		return scheduling.SchedulingInput{}, false
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_customer_id", "customerId must be a valid UUID")
		return scheduling.SchedulingInput{}, false
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_user_id", "userId must be a valid UUID")
		return scheduling.SchedulingInput{}, false
	}
	statusID, err := uuid.Parse(req.StatusID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_status_id", "statusId must be a valid UUID")
		return scheduling.SchedulingInput{}, false
	}

	serviceIDs := make([]uuid.UUID, 0, len(req.ServiceIDs))
	for _, raw := range req.ServiceIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_service_id", "serviceId entries must be valid UUIDs")
			return scheduling.SchedulingInput{}, false
		}
		serviceIDs = append(serviceIDs, id)
	}

	date, _, err := parseDateParam(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD or RFC 3339")
		return scheduling.SchedulingInput{}, false
	}

	return scheduling.SchedulingInput{
		CustomerID:     customerID,
		ServiceIDs:     serviceIDs,
		UserID:         userID,
		StatusID:       statusID,
		Cost:           req.Cost,
		Observations:   req.Observations,
		PaymentMethod:  req.PaymentMethod,
		Date:           date,
		InitialTime:    req.InitialTime,
		ConclusionTime: req.ConclusionTime,
	}, true
}

// parseDateParam accepts a bare date or a full RFC 3339 timestamp.
func parseDateParam(raw string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), true, nil
	}
	if t, err = time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, err
}

func handleSchedulingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scheduling.ErrSchedulingNotFound):
		writeError(w, http.StatusNotFound, "scheduling_not_found", err.Error())
	case errors.Is(err, scheduling.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound, "customer_not_found", err.Error())
	case errors.Is(err, scheduling.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, scheduling.ErrStatusNotFound):
		writeError(w, http.StatusNotFound, "status_not_found", err.Error())
	case errors.Is(err, scheduling.ErrServiceNotFound):
		writeError(w, http.StatusNotFound, "service_not_found", err.Error())
	case errors.Is(err, scheduling.ErrMalformedTime):
		writeError(w, http.StatusBadRequest, "malformed_time", err.Error())
	case errors.Is(err, scheduling.ErrInvalidWindow):
		writeError(w, http.StatusBadRequest, "invalid_window", err.Error())
	case errors.Is(err, scheduling.ErrSchedulingBusy):
		writeError(w, http.StatusConflict, "scheduling_busy", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
