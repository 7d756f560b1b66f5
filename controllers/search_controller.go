package controllers

import (
	"log"

	"github.com/gin-gonic/gin"

	"rental-backend/services"
	"rental-backend/utils"
)

type SearchRequest struct {
	DestinationID *uint    `json:"destinationId"`
	Gender        string   `json:"gender"`
	MoveDate      string   `json:"moveDate"`
	StayDuration  int      `json:"stayDuration" binding:"required"`
	Lat           *float64 `json:"lat"`
	Lon           *float64 `json:"lon"`
	RadiusKm      float64  `json:"radiusKm"`
}

type SearchController struct {
	Svc *services.SearchService
}

func NewSearchController(svc *services.SearchService) *SearchController {
	return &SearchController{Svc: svc}
}

// Search handles POST /search.
func (ctrl *SearchController) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ search: invalid payload: %v", err)
		utils.JSONBadRequest(c, "stayDuration is required")
		return
	}

	results, err := ctrl.Svc.Search(services.SearchQuery{
		StayDuration:  req.StayDuration,
		DestinationID: req.DestinationID,
		Gender:        req.Gender,
		MoveDate:      req.MoveDate,
		Latitude:      req.Lat,
		Longitude:     req.Lon,
		RadiusKm:      req.RadiusKm,
	})
	if err != nil {
		utils.JSONFail(c, err)
		return
	}

	utils.JSONResults(c, results)
}
