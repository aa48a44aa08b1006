package handlers

import (
	"errors"
	"net/http"
	"time"

	catalogRepo "washbook/database/repository/catalog"
	"washbook/services/booking"
	"washbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VendorHandler serves calendar availability and slot lists.
type VendorHandler struct {
	Catalog catalogRepo.CatalogRepository
	Now     func() time.Time
}

func NewVendorHandler(catalog catalogRepo.CatalogRepository) *VendorHandler {
	return &VendorHandler{Catalog: catalog, Now: time.Now}
}

// Availability handles GET /api/vendors/:id/availability?month=YYYY-MM.
func (h *VendorHandler) Availability(c *gin.Context) {
	month := h.Now()
	if m := c.Query("month"); m != "" {
		parsed, err := time.Parse(booking.MonthLayout, m)
		if err != nil {
			utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_month", "Invalid month", "expected YYYY-MM")
			return
		}
		month = parsed
	}

	vendorID := c.Param("id")
	vendor, err := h.Catalog.GetVendor(c.Request.Context(), vendorID)
	if err != nil {
		h.writeVendorError(c, vendorID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"vendorId": vendor.ID,
		"month":    month.Format(booking.MonthLayout),
		"days":     booking.MonthAvailability(month, vendor.OperatingHours),
	})
}

// Slots handles GET /api/vendors/:id/slots?date=YYYY-MM-DD.
func (h *VendorHandler) Slots(c *gin.Context) {
	date, err := booking.ParseDate(c.Query("date"))
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_date", "Invalid date", "expected YYYY-MM-DD")
		return
	}

	vendorID := c.Param("id")
	vendor, err := h.Catalog.GetVendor(c.Request.Context(), vendorID)
	if err != nil {
		h.writeVendorError(c, vendorID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"vendorId":  vendor.ID,
		"date":      date.Format(booking.DateLayout),
		"available": booking.IsAvailable(date, vendor.OperatingHours),
		"slots":     booking.Slots(date, vendor.OperatingHours),
	})
}

func (h *VendorHandler) writeVendorError(c *gin.Context, vendorID string, err error) {
	if errors.Is(err, catalogRepo.ErrNotFound) {
		utils.JSONErrorCode(c, http.StatusNotFound, "not_found", booking.MsgVendorNotFound, "")
		return
	}
	getLogger(c).Error("Failed to load vendor", zap.String("vendorId", vendorID), zap.Error(err))
	utils.JSONErrorCode(c, http.StatusInternalServerError, "internal", "Internal Server Error", "")
}
