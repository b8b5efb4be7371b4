package handler

import (
	"github.com/bitfantasy/nimo-orders/internal/repository"
	"github.com/gin-gonic/gin"
)

type PriceListHandler struct {
	repo *repository.PriceListRepository
}

func NewPriceListHandler(repo *repository.PriceListRepository) *PriceListHandler {
	return &PriceListHandler{repo: repo}
}

// List GET /api/pricelists
func (h *PriceListHandler) List(c *gin.Context) {
	lists, err := h.repo.List()
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, lists)
}

// Create POST /api/pricelists
func (h *PriceListHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "无数据")
		return
	}
	pl, err := h.repo.Create(req.Name)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, pl)
}

// Update PUT /api/pricelists/:id
func (h *PriceListHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Name *string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "无数据")
		return
	}
	pl, err := h.repo.Update(id, req.Name)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, pl)
}

// Delete DELETE /api/pricelists/:id 级联删除清单下货物
func (h *PriceListHandler) Delete(c *gin.Context) {
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

// Copy POST /api/pricelists/:id/copy
func (h *PriceListHandler) Copy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	pl, err := h.repo.Copy(id)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, pl)
}
