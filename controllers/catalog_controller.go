package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"
)

// CatalogController exposes the manager-side CRUD for destinations,
// properties, rooms and room dependents.
type CatalogController struct {
	Svc *services.CatalogService
}

func NewCatalogController(svc *services.CatalogService) *CatalogController {
	return &CatalogController{Svc: svc}
}

// ---- Destinations ----

func (ctrl *CatalogController) ListDestinations(c *gin.Context) {
	destinations, err := ctrl.Svc.ListDestinations()
	if err != nil {
		utils.JSONFail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, destinations)
}

func (ctrl *CatalogController) CreateDestination(c *gin.Context) {
	var destination models.Destination
	if err := c.ShouldBindJSON(&destination); err != nil {
		utils.JSONBadRequest(c, "invalid destination payload")
		return
	}
	if destination.Name == "" {
		utils.JSONFail(c, services.ErrMissingField)
		return
	}
	if err := ctrl.Svc.CreateDestination(&destination); err != nil {
		utils.JSONFail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, destination)
}

// ---- Properties ----

func (ctrl *CatalogController) CreateProperty(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		utils.JSONBadRequest(c, "invalid property payload")
		return
	}
	if property.Name == "" || property.DestinationID == 0 {
		utils.JSONFail(c, services.ErrMissingField)
		return
	}
	if err := ctrl.Svc.CreateProperty(&property); err != nil {
		utils.JSONFail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, property)
}

func (ctrl *CatalogController) UpdateProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSONFail(c, services.ErrNotFound)
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONBadRequest(c, "invalid update payload")
		return
	}
	if err := ctrl.Svc.UpdateProperty(id, updates); err != nil {
		utils.JSONFail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": id})
}

func (ctrl *CatalogController) DeleteProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSONFail(c, services.ErrNotFound)
		return
	}
	if err := ctrl.Svc.DeleteProperty(id); err != nil {
		utils.JSONFail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// ---- Rooms ----

func (ctrl *CatalogController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONBadRequest(c, "invalid room payload")
		return
	}
	if room.RoomNumber == "" || room.PropertyID == 0 {
		utils.JSONFail(c, services.ErrMissingField)
		return
	}
	if err := ctrl.Svc.CreateRoom(&room); err != nil {
		utils.JSONFail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctrl *CatalogController) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSONFail(c, services.ErrRoomNotFound)
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONBadRequest(c, "invalid update payload")
		return
	}
	if err := ctrl.Svc.UpdateRoom(id, updates); err != nil {
		utils.JSONFail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": id})
}

func (ctrl *CatalogController) DeleteRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSONFail(c, services.ErrRoomNotFound)
		return
	}
	if err := ctrl.Svc.DeleteRoom(id); err != nil {
		utils.JSONFail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// ---- Prices ----

type SetPriceRequest struct {
	Period string  `json:"period" binding:"required"`
	Price  float64 `json:"price" binding:"required"`
}

func (ctrl *CatalogController) SetRoomPrice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSONFail(c, services.ErrRoomNotFound)
		return
	}
	var req SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONBadRequest(c, "period and price are required")
		return
	}
	entry, err := ctrl.Svc.SetRoomPrice(id, models.Period(req.Period), req.Price)
	if err != nil {
		utils.JSONFail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, entry)
}

func (ctrl *CatalogController) DeleteRoomPrice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSONFail(c, services.ErrRoomNotFound)
		return
	}
	period := models.Period(c.Param("period"))
	if err := ctrl.Svc.DeleteRoomPrice(id, period); err != nil {
		utils.JSONFail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": period})
}

// ---- Photos ----

type AddPhotoRequest struct {
	URL string `json:"url" binding:"required"`
}

func (ctrl *CatalogController) AddRoomPhoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSONFail(c, services.ErrRoomNotFound)
		return
	}
	var req AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONBadRequest(c, "url is required")
		return
	}
	photo, err := ctrl.Svc.AddRoomPhoto(id, req.URL)
	if err != nil {
		utils.JSONFail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, photo)
}

func (ctrl *CatalogController) DeleteRoomPhoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSONFail(c, services.ErrNotFound)
		return
	}
	if err := ctrl.Svc.DeleteRoomPhoto(id); err != nil {
		utils.JSONFail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// ---- Features ----

type CreateFeatureRequest struct {
	Name string `json:"name" binding:"required"`
}

func (ctrl *CatalogController) CreateFeature(c *gin.Context) {
	var req CreateFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONBadRequest(c, "name is required")
		return
	}
	feature, err := ctrl.Svc.CreateFeature(req.Name)
	if err != nil {
		utils.JSONFail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, feature)
}

type AttachFeatureRequest struct {
	FeatureID uint `json:"featureId" binding:"required"`
}

func (ctrl *CatalogController) AddRoomFeature(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSONFail(c, services.ErrRoomNotFound)
		return
	}
	var req AttachFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONBadRequest(c, "featureId is required")
		return
	}
	link, err := ctrl.Svc.AddRoomFeature(id, req.FeatureID)
	if err != nil {
		utils.JSONFail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, link)
}

func (ctrl *CatalogController) RemoveRoomFeature(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSONFail(c, services.ErrRoomNotFound)
		return
	}
	featureID, ok := parseParamID(c, "featureId")
	if !ok {
		utils.JSONFail(c, services.ErrNotFound)
		return
	}
	if err := ctrl.Svc.RemoveRoomFeature(id, featureID); err != nil {
		utils.JSONFail(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"detached": featureID})
}
