package handler

import (
	"github.com/bitfantasy/nimo-orders/internal/repository"
	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	repo *repository.CustomerRepository
}

func NewCustomerHandler(repo *repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{repo: repo}
}

// List GET /api/customers
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.repo.List()
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, customers)
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req struct {
		Name   string `json:"name"`
		ListID int    `json:"list_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "无数据")
		return
	}
	customer, err := h.repo.Create(req.Name, req.ListID)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, customer)
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Name   *string `json:"name"`
		ListID *int    `json:"list_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "无数据")
		return
	}
	customer, err := h.repo.Update(id, repository.UpdateCustomerParams{
		Name:   req.Name,
		ListID: req.ListID,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, customer)
}

// Delete DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
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
