package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/geoattend/attendance-backend-go/internal/domain/organization"
	"github.com/geoattend/attendance-backend-go/internal/handler/http/response"
)

type OrganizationHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateGeofence(w http.ResponseWriter, r *http.Request)
}

type organizationHandlerImpl struct {
	organizationService organization.OrganizationService
}

func NewOrganizationHandler(organizationService organization.OrganizationService) OrganizationHandler {
	return &organizationHandlerImpl{
		organizationService: organizationService,
	}
}

// Get implements OrganizationHandler.
func (h *organizationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	_, orgID, err := identityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.organizationService.Get(r.Context(), orgID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements OrganizationHandler.
func (h *organizationHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	_, orgID, err := identityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req organization.UpdateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode organization update request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.organizationService.Update(r.Context(), orgID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Organization updated", result)
}

// UpdateGeofence implements OrganizationHandler.
func (h *organizationHandlerImpl) UpdateGeofence(w http.ResponseWriter, r *http.Request) {
	_, orgID, err := identityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req organization.UpdateGeofenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode geofence update request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.organizationService.UpdateGeofence(r.Context(), orgID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office geofence updated", result)
}
