package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backend/services"
	"rental-backend/utils"
)

type SubmitProposalRequest struct {
	RoomID         uint    `json:"roomId" binding:"required"`
	StayInPeriod   int     `json:"stayInPeriod" binding:"required"`
	Email          string  `json:"email" binding:"required"`
	FullName       string  `json:"fullName" binding:"required"`
	CPF            string  `json:"cpf"`
	BirthDate      string  `json:"birthDate"`
	Gender         string  `json:"gender"`
	MoveDate       string  `json:"moveDate" binding:"required"`
	SuggestedPrice float64 `json:"suggestedPrice"`
	Message        string  `json:"message"`
}

type ReviewProposalRequest struct {
	Decision          string `json:"decision" binding:"required"`
	ReviewerProfileID *uint  `json:"reviewerProfileId"`
}

type ProposalController struct {
	Svc *services.ProposalService
}

func NewProposalController(svc *services.ProposalService) *ProposalController {
	return &ProposalController{Svc: svc}
}

// Submit handles POST /proposal.
func (ctrl *ProposalController) Submit(c *gin.Context) {
	var req SubmitProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONBadRequest(c, "roomId, stayInPeriod, email, fullName and moveDate are required")
		return
	}

	proposal, err := ctrl.Svc.Submit(services.SubmitInput{
		RoomID:         req.RoomID,
		StayInPeriod:   req.StayInPeriod,
		Email:          req.Email,
		FullName:       req.FullName,
		CPF:            req.CPF,
		BirthDate:      req.BirthDate,
		Gender:         req.Gender,
		MoveDate:       req.MoveDate,
		SuggestedPrice: req.SuggestedPrice,
		Message:        req.Message,
	})
	if err != nil {
		utils.JSONFail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "proposal_id": proposal.ID})
}

// Get handles GET /proposal/:id.
func (ctrl *ProposalController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSONFail(c, services.ErrProposalNotFound)
		return
	}

	detail, err := ctrl.Svc.GetProposal(id)
	if err != nil {
		utils.JSONFail(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, detail)
}

// Review handles POST /api/proposals/:id/review.
func (ctrl *ProposalController) Review(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.JSONFail(c, services.ErrProposalNotFound)
		return
	}

	var req ReviewProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONBadRequest(c, "decision is required")
		return
	}

	decision, ok := services.ParseDecision(req.Decision)
	if !ok {
		utils.JSONFail(c, services.ErrInvalidDecision)
		return
	}

	proposal, err := ctrl.Svc.Review(id, decision, req.ReviewerProfileID)
	if err != nil {
		utils.JSONFail(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"proposal_id": proposal.ID,
		"status":      proposal.Status,
	})
}
