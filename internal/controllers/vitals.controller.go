package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthrecord/internal/services"
)

type VitalsController struct {
	vitals     *services.VitalsService
	production bool
}

func NewVitalsController(vitals *services.VitalsService, production bool) *VitalsController {
	return &VitalsController{vitals: vitals, production: production}
}

// AddVitals godoc
// @Summary Record a vitals snapshot
// @Description At least one of bp, sugar or weight is required; date defaults to now
// @Tags vitals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vitals body services.VitalsInput true "Vitals data"
// @Success 201 {object} map[string]interface{} "Vital added successfully"
// @Failure 400 {object} map[string]interface{} "At least one vital is required"
// @Failure 500 {object} map[string]interface{} "Server error while adding vitals"
// @Router /vitals/add [post]
func (vc *VitalsController) AddVitals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.VitalsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	vitals, err := vc.vitals.Add(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err, vc.production)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Vital added successfully",
		"vitals":  vitals,
	})
}

// MyVitals godoc
// @Summary List my vitals
// @Description Newest first by date
// @Tags vitals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Vitals"
// @Failure 500 {object} map[string]interface{} "Server error while fetching vitals"
// @Router /vitals/myvitals [get]
func (vc *VitalsController) MyVitals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	vitals, err := vc.vitals.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, vc.production)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"vitals":  vitals,
	})
}

// DeleteVitals godoc
// @Summary Delete a vitals snapshot
// @Tags vitals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vitals ID"
// @Success 200 {object} map[string]interface{} "Vital deleted successfully"
// @Failure 400 {object} map[string]interface{} "Invalid vitals ID"
// @Failure 404 {object} map[string]interface{} "Vital not found"
// @Router /vitals/{id} [delete]
func (vc *VitalsController) DeleteVitals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "Invalid vitals ID")
	if !ok {
		return
	}

	if err := vc.vitals.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err, vc.production)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Vital deleted successfully",
	})
}
