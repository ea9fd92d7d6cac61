package venue

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tunislock/tunislock-api/internal/models"
	"github.com/tunislock/tunislock-api/pkg/apperrors"
	"github.com/tunislock/tunislock-api/pkg/utils"
	pkgvalidator "github.com/tunislock/tunislock-api/pkg/validator"
)

// VenueController handles venue-related HTTP requests
type VenueController struct {
	repo VenueRepository
}

// NewVenueController creates a new venue controller
func NewVenueController(repo VenueRepository) *VenueController {
	return &VenueController{repo: repo}
}

// VenueInput defines the request payload for creating or updating a venue
type VenueInput struct {
	Name        string             `json:"name" binding:"required,min=3,max=100"`
	Address     string             `json:"address" binding:"required"`
	City        string             `json:"city" binding:"required"`
	PitchType   string             `json:"pitch_type" binding:"omitempty,oneof=grass turf indoor"`
	Capacity    int                `json:"capacity" binding:"omitempty,min=0"`
	Amenities   models.StringSlice `json:"amenities"`
	Coordinates models.Coordinates `json:"coordinates"`
	ContactInfo string             `json:"contact_info"`
}

// CreateVenue godoc
// @Summary Create a new venue
// @Description Create a new venue with the provided details
// @Tags venues
// @Accept json
// @Produce json
// @Param venue body VenueInput true "Venue information"
// @Success 201 {object} Venue "Venue created successfully"
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Failure 409 {object} utils.ErrorResponse "Name already taken"
// @Router /venues [post]
// @Security Bearer
func (c *VenueController) CreateVenue(ctx *gin.Context) {
	var input VenueInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": pkgvalidator.ParseError(err)})
		return
	}

	venue := &Venue{
		Name:        input.Name,
		Address:     input.Address,
		City:        input.City,
		PitchType:   input.PitchType,
		Capacity:    input.Capacity,
		Amenities:   input.Amenities,
		Coordinates: input.Coordinates,
		ContactInfo: input.ContactInfo,
	}

	if err := c.repo.CreateVenue(venue); err != nil {
		if apperrors.KindOf(err) == apperrors.KindConflict {
			utils.ConflictJSON(ctx, err.Error())
			return
		}
		utils.InternalErrorJSON(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, venue)
}

// GetVenueByID godoc
// @Summary Get venue by ID
// @Tags venues
// @Produce json
// @Param venue_id path int true "Venue ID"
// @Success 200 {object} Venue "Venue details"
// @Failure 404 {object} utils.ErrorResponse "Venue not found"
// @Router /venues/{venue_id} [get]
func (c *VenueController) GetVenueByID(ctx *gin.Context) {
	venueID, err := strconv.ParseUint(ctx.Param("venue_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid venue ID")
		return
	}

	venue, err := c.repo.GetVenueByID(uint(venueID))
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}
	if venue == nil {
		utils.NotFoundJSON(ctx, "Venue")
		return
	}

	ctx.JSON(http.StatusOK, venue)
}

// GetAllVenues godoc
// @Summary Get all venues
// @Description Get a paginated list of venues with optional filters
// @Tags venues
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Number of items per page (default: 10, max: 100)"
// @Param city query string false "Filter by city"
// @Param pitch_type query string false "Filter by pitch type"
// @Param verified query boolean false "Filter by verified status"
// @Success 200 {object} utils.PaginatedResponse
// @Router /venues [get]
func (c *VenueController) GetAllVenues(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filters := make(map[string]interface{})
	if city := ctx.Query("city"); city != "" {
		filters["city"] = city
	}
	if pitchType := ctx.Query("pitch_type"); pitchType != "" {
		filters["pitch_type"] = pitchType
	}
	if verified := ctx.Query("verified"); verified != "" {
		filters["verified"] = verified == "true"
	}
	if minCapacity := ctx.Query("min_capacity"); minCapacity != "" {
		if v, err := strconv.Atoi(minCapacity); err == nil {
			filters["min_capacity"] = v
		}
	}

	venues, total, err := c.repo.GetAllVenues(page, limit, filters)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	utils.PaginatedJSON(ctx, venues, page, limit, total)
}

// UpdateVenue godoc
// @Summary Update a venue
// @Tags venues
// @Accept json
// @Produce json
// @Param venue_id path int true "Venue ID"
// @Param venue body VenueInput true "Venue information"
// @Success 200 {object} Venue
// @Router /venues/{venue_id} [put]
// @Security Bearer
func (c *VenueController) UpdateVenue(ctx *gin.Context) {
	venueID, err := strconv.ParseUint(ctx.Param("venue_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid venue ID")
		return
	}

	venue, err := c.repo.GetVenueByID(uint(venueID))
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}
	if venue == nil {
		utils.NotFoundJSON(ctx, "Venue")
		return
	}

	var input VenueInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": pkgvalidator.ParseError(err)})
		return
	}

	venue.Name = input.Name
	venue.Address = input.Address
	venue.City = input.City
	venue.PitchType = input.PitchType
	venue.Capacity = input.Capacity
	venue.Amenities = input.Amenities
	venue.Coordinates = input.Coordinates
	venue.ContactInfo = input.ContactInfo

	if err := c.repo.UpdateVenue(venue); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, venue)
}

// DeleteVenue godoc
// @Summary Delete a venue
// @Tags venues
// @Produce json
// @Param venue_id path int true "Venue ID"
// @Success 200 {object} utils.SuccessResponse
// @Router /venues/{venue_id} [delete]
// @Security Bearer
func (c *VenueController) DeleteVenue(ctx *gin.Context) {
	venueID, err := strconv.ParseUint(ctx.Param("venue_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid venue ID")
		return
	}

	if err := c.repo.DeleteVenue(uint(venueID)); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	utils.SuccessJSON(ctx, http.StatusOK, "Venue deleted successfully", nil)
}

// VerifyVenue godoc
// @Summary Verify a venue
// @Description Mark a venue as verified (admin only)
// @Tags venues
// @Produce json
// @Param venue_id path int true "Venue ID"
// @Success 200 {object} Venue
// @Router /admin/venues/{venue_id}/verify [post]
// @Security Bearer
func (c *VenueController) VerifyVenue(ctx *gin.Context) {
	venueID, err := strconv.ParseUint(ctx.Param("venue_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid venue ID")
		return
	}

	venue, err := c.repo.VerifyVenue(uint(venueID))
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			utils.NotFoundJSON(ctx, "Venue")
			return
		}
		utils.InternalErrorJSON(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, venue)
}
