package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/CAPRI-CORP/desinfec-backend/internal/catalog"
)

// Categories

func createCategoryHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "name is required")
			return
		}

		if _, err := mgr.CreateCategory(r.Context(), catalog.CategoryInput{Name: req.Name}); err != nil {
			handleCatalogError(w, err)
			return
		}
		writeMessage(w, http.StatusCreated, "category created successfully")
	}
}

func listCategoriesHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := mgr.ListCategories(r.Context())
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		resp := make([]CategoryResponse, 0, len(categories))
		for i := range categories {
			resp = append(resp, *toCategoryResponse(&categories[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func getCategoryHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		c, err := mgr.GetCategory(r.Context(), id)
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCategoryResponse(c))
	}
}

func updateCategoryHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		var req CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "name is required")
			return
		}
		if err := mgr.UpdateCategory(r.Context(), id, catalog.CategoryInput{Name: req.Name}); err != nil {
			handleCatalogError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "category updated successfully")
	}
}

func deleteCategoryHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		if err := mgr.DeleteCategory(r.Context(), id); err != nil {
			handleCatalogError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "category deleted successfully")
	}
}

// Customers

func decodeCustomerInput(w http.ResponseWriter, r *http.Request) (catalog.CustomerInput, bool) {
	var req CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return catalog.CustomerInput{}, false
	}

	required := []struct {
		field string
		value string
	}{
		{"firstname", req.FirstName},
		{"lastname", req.LastName},
		{"email", req.Email},
		{"phone", req.Phone},
		{"state", req.State},
		{"city", req.City},
		{"zipcode", req.Zipcode},
		{"neighborhood", req.Neighborhood},
		{"street", req.Street},
		{"number", req.Number},
	}
	for _, f := range required {
		if f.value == "" {
			writeError(w, http.StatusBadRequest, "missing_required_field", f.field+" is required")
			return catalog.CustomerInput{}, false
		}
	}

	var categoryID *uuid.UUID
	if req.CategoryID != nil && *req.CategoryID != "" {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_category_id", "categoryId must be a valid UUID")
			return catalog.CustomerInput{}, false
		}
		categoryID = &id
	}

	return catalog.CustomerInput{
		CategoryID:   categoryID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		State:        req.State,
		City:         req.City,
		Zipcode:      req.Zipcode,
		Neighborhood: req.Neighborhood,
		Street:       req.Street,
		Number:       req.Number,
		Complement:   req.Complement,
		Reference:    req.Reference,
	}, true
}

func createCustomerHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeCustomerInput(w, r)
		if !ok {
			return
		}
		if _, err := mgr.CreateCustomer(r.Context(), in); err != nil {
			handleCatalogError(w, err)
			return
		}
		writeMessage(w, http.StatusCreated, "customer created successfully")
	}
}

func listCustomersHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := parsePagination(r)
		name := r.URL.Query().Get("name")

		result, err := mgr.ListCustomers(r.Context(), page, limit, name)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		customers := make([]CustomerResponse, 0, len(result.Customers))
		for i := range result.Customers {
			customers = append(customers, *toCustomerResponse(&result.Customers[i]))
		}
		writeJSON(w, http.StatusOK, CustomerPageResponse{
			Customers:   customers,
			TotalCount:  result.TotalCount,
			TotalPages:  result.TotalPages,
			CurrentPage: result.CurrentPage,
		})
	}
}

func getCustomerHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		c, err := mgr.GetCustomer(r.Context(), id)
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCustomerResponse(c))
	}
}

func updateCustomerHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		in, ok := decodeCustomerInput(w, r)
		if !ok {
			return
		}
		if err := mgr.UpdateCustomer(r.Context(), id, in); err != nil {
			handleCatalogError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "customer updated successfully")
	}
}

func deleteCustomerHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		if err := mgr.DeleteCustomer(r.Context(), id); err != nil {
			handleCatalogError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "customer deleted successfully")
	}
}

// Staff users

func createStaffUserHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StaffUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "missing_required_field", "firstname, lastname, email, phone and password are required")
			return
		}
		if req.Password != req.ConfirmPassword {
			writeError(w, http.StatusBadRequest, "password_mismatch", "password and confirmPassword must match")
			return
		}

		_, err := mgr.CreateStaffUser(r.Context(), catalog.StaffUserInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			Password:  req.Password,
		})
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		writeMessage(w, http.StatusCreated, "staff user created successfully")
	}
}

func listStaffUsersHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := mgr.ListStaffUsers(r.Context())
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		resp := make([]StaffUserResponse, 0, len(users))
		for i := range users {
			resp = append(resp, *toStaffUserResponse(&users[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func getStaffUserHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		u, err := mgr.GetStaffUser(r.Context(), id)
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toStaffUserResponse(u))
	}
}

func updateStaffUserHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		var req StaffUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if req.Password != "" && req.Password != req.ConfirmPassword {
			writeError(w, http.StatusBadRequest, "password_mismatch", "password and confirmPassword must match")
			return
		}

		err := mgr.UpdateStaffUser(r.Context(), id, catalog.StaffUserInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			Password:  req.Password,
		})
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "staff user updated successfully")
	}
}

func deleteStaffUserHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		if err := mgr.DeleteStaffUser(r.Context(), id); err != nil {
			handleCatalogError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "staff user deleted successfully")
	}
}

// Services

func createServiceHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ServiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Cost == "" {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "name and cost are required")
			return
		}
		if _, err := mgr.CreateService(r.Context(), catalog.ServiceInput{Name: req.Name, Cost: req.Cost}); err != nil {
			handleCatalogError(w, err)
			return
		}
		writeMessage(w, http.StatusCreated, "service created successfully")
	}
}

func listServicesHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := parsePagination(r)
		name := r.URL.Query().Get("name")

		result, err := mgr.ListServices(r.Context(), page, limit, name)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		services := make([]ServiceResponse, 0, len(result.Services))
		for _, s := range result.Services {
			services = append(services, toServiceResponse(s))
		}
		writeJSON(w, http.StatusOK, ServicePageResponse{
			Services:    services,
			TotalCount:  result.TotalCount,
			TotalPages:  result.TotalPages,
			CurrentPage: result.CurrentPage,
		})
	}
}

func getServiceHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		s, err := mgr.GetService(r.Context(), id)
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toServiceResponse(*s))
	}
}

func updateServiceHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		var req ServiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Cost == "" {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "name and cost are required")
			return
		}
		if err := mgr.UpdateService(r.Context(), id, catalog.ServiceInput{Name: req.Name, Cost: req.Cost}); err != nil {
			handleCatalogError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "service updated successfully")
	}
}

func deleteServiceHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		if err := mgr.DeleteService(r.Context(), id); err != nil {
			handleCatalogError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "service deleted successfully")
	}
}

// Statuses

func createStatusHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "name is required")
			return
		}
		if _, err := mgr.CreateStatus(r.Context(), catalog.StatusInput{Name: req.Name, Position: req.Position}); err != nil {
			handleCatalogError(w, err)
			return
		}
		writeMessage(w, http.StatusCreated, "status created successfully")
	}
}

func listStatusesHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses, err := mgr.ListStatuses(r.Context())
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		resp := make([]StatusResponse, 0, len(statuses))
		for i := range statuses {
			resp = append(resp, *toStatusResponse(&statuses[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func getStatusHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		s, err := mgr.GetStatus(r.Context(), id)
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toStatusResponse(s))
	}
}

func updateStatusHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		var req StatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "name is required")
			return
		}
		if err := mgr.UpdateStatus(r.Context(), id, catalog.StatusInput{Name: req.Name, Position: req.Position}); err != nil {
			handleCatalogError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "status updated successfully")
	}
}

func deleteStatusHandler(mgr *catalog.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		if err := mgr.DeleteStatus(r.Context(), id); err != nil {
			handleCatalogError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "status deleted successfully")
	}
}

// Shared helpers

func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

func handleCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrCategoryNotFound),
		errors.Is(err, catalog.ErrCustomerNotFound),
		errors.Is(err, catalog.ErrStaffUserNotFound),
		errors.Is(err, catalog.ErrServiceNotFound),
		errors.Is(err, catalog.ErrStatusNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, catalog.ErrEmailTaken),
		errors.Is(err, catalog.ErrPhoneTaken),
		errors.Is(err, catalog.ErrNameTaken):
		writeError(w, http.StatusConflict, "already_registered", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
