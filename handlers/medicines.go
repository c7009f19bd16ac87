package handlers

import (
	"context"
	"strconv"

	"medlink/models"
	"medlink/utils"

	"github.com/gin-gonic/gin"
)

// MedicineCatalogue is the read side of the medicine list.
type MedicineCatalogue interface {
	Page(ctx context.Context, page, limit int) (*models.MedicinePage, error)
	Get(ctx context.Context, id string) (*models.Medicine, error)
}

// MedicineLookup enriches a catalogue entry with the public drug label.
type MedicineLookup interface {
	Details(ctx context.Context, id string) (*models.MedicineDetails, error)
}

type MedicineHandler struct {
	Catalogue MedicineCatalogue
	Lookup    MedicineLookup
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

func (h *MedicineHandler) List(c *gin.Context) {
	page, err := h.Catalogue.Page(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{
		"data":       page.Data,
		"page":       page.Page,
		"limit":      page.Limit,
		"totalItems": page.TotalItems,
		"totalPages": page.TotalPages,
	})
}

func (h *MedicineHandler) Get(c *gin.Context) {
	m, err := h.Catalogue.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"data": m})
}

func (h *MedicineHandler) Online(c *gin.Context) {
	details, err := h.Lookup.Details(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"data": details})
}
