package handler

import (
	"strconv"

	"github.com/bitfantasy/nimo-orders/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	repo *repository.ProductRepository
}

func NewProductHandler(repo *repository.ProductRepository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// List GET /api/products?list_id=
func (h *ProductHandler) List(c *gin.Context) {
	listID := 0
	if v := c.Query("list_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			BadRequest(c, "list_id 无效")
			return
		}
		listID = id
	}
	products, err := h.repo.List(listID)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, products)
}

// Create POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req struct {
		ListID int             `json:"list_id"`
		Name   string          `json:"name"`
		Unit   string          `json:"unit"`
		Price  decimal.Decimal `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "无数据")
		return
	}
	p, err := h.repo.Create(req.ListID, req.Name, req.Unit, req.Price)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, p)
}

// Update PUT /api/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Name  *string          `json:"name"`
		Unit  *string          `json:"unit"`
		Price *decimal.Decimal `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "无数据")
		return
	}
	p, err := h.repo.Update(id, repository.UpdateProductParams{
		Name:  req.Name,
		Unit:  req.Unit,
		Price: req.Price,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, p)
}

// Delete DELETE /api/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(id); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}
