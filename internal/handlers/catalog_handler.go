package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
)

const uploadField = "image"

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(catalog *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name  string `json:"name" binding:"required"`
	Title string `json:"title"`
	Bio   string `json:"bio"`
}

type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	DurationMin int             `json:"duration_min" binding:"required"`
	Category    string          `json:"category"`
	BarberID    *uint           `json:"barber_id"`
}

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

// --------- Barbers ---------

func (h *CatalogHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.catalog.Barbers(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, barbers)
}

func (h *CatalogHandler) CreateBarber(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "name is required.")
		return
	}

	b, err := h.catalog.CreateBarber(c.Request.Context(), catalog.BarberInput{
		Name:  req.Name,
		Title: req.Title,
		Bio:   req.Bio,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *CatalogHandler) DeactivateBarber(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	b, err := h.catalog.SetBarberActive(c.Request.Context(), id, false)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *CatalogHandler) UploadBarberPhoto(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	file, err := c.FormFile(uploadField)
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Upload the image in the \"image\" form field.")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer f.Close()

	b, err := h.catalog.UploadBarberPhoto(c.Request.Context(), id, f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, b)
}

// --------- Services ---------

func (h *CatalogHandler) ListServices(c *gin.Context) {
	barberID, err := queryBarberID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	services, err := h.catalog.Services(c.Request.Context(), barberID, false)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "name and duration_min are required.")
		return
	}

	svc, err := h.catalog.CreateService(c.Request.Context(), catalog.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		Category:    req.Category,
		BarberID:    req.BarberID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *CatalogHandler) DeactivateService(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	svc, err := h.catalog.SetServiceActive(c.Request.Context(), id, false)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, svc)
}

func (h *CatalogHandler) UploadServiceImage(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	file, err := c.FormFile(uploadField)
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Upload the image in the \"image\" form field.")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer f.Close()

	svc, err := h.catalog.UploadServiceImage(c.Request.Context(), id, f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, svc)
}

// --------- Barber clients ---------

func (h *CatalogHandler) ListClients(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	clients, err := h.catalog.Clients(c.Request.Context(), id, c.Query("query"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, clients)
}

func (h *CatalogHandler) CreateClient(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "name and phone are required.")
		return
	}

	client, err := h.catalog.AddClient(c.Request.Context(), catalog.ClientInput{
		BarberID: id,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Notes:    req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}
