package handler

import (
	"path/filepath"
	"strings"

	"github.com/bitfantasy/nimo-orders/internal/repository"
	"github.com/bitfantasy/nimo-orders/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type OrderHandler struct {
	repo     *repository.OrderRepository
	query    *service.OrderService
	importer *service.ImportService
	exporter *service.ExportService
}

func NewOrderHandler(repo *repository.OrderRepository, services *service.Services) *OrderHandler {
	return &OrderHandler{
		repo:     repo,
		query:    services.Order,
		importer: services.Import,
		exporter: services.Export,
	}
}

// List GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.repo.List()
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, orders)
}

// Create POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req struct {
		Date     string           `json:"date"`
		Customer string           `json:"customer"`
		Product  string           `json:"product"`
		Unit     string           `json:"unit"`
		Price    decimal.Decimal  `json:"price"`
		Quantity *decimal.Decimal `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "无数据")
		return
	}
	order, err := h.repo.Create(repository.CreateOrderParams{
		Date:     req.Date,
		Customer: req.Customer,
		Product:  req.Product,
		Unit:     req.Unit,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, order)
}

// Update PUT /api/orders/:id 总价由服务端重算，不接受请求中的 total
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Date     *string          `json:"date"`
		Customer *string          `json:"customer"`
		Product  *string          `json:"product"`
		Unit     *string          `json:"unit"`
		Price    *decimal.Decimal `json:"price"`
		Quantity *decimal.Decimal `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "无数据")
		return
	}
	order, err := h.repo.Update(id, repository.UpdateOrderParams{
		Date:     req.Date,
		Customer: req.Customer,
		Product:  req.Product,
		Unit:     req.Unit,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, order)
}

// Delete DELETE /api/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
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

func searchParams(c *gin.Context) service.SearchParams {
	return service.SearchParams{
		Customer: c.Query("customer"),
		Product:  c.Query("product"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}
}

// Search GET /api/orders/search
func (h *OrderHandler) Search(c *gin.Context) {
	orders, total, err := h.query.Search(searchParams(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"orders": orders, "total": total})
}

// ExportCSV GET /api/orders/export/csv 导出与搜索条件一致的订单
func (h *OrderHandler) ExportCSV(c *gin.Context) {
	data, filename, err := h.exporter.OrdersCSV(searchParams(c))
	if err != nil {
		Fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "text/csv; charset=utf-8", data)
}

// ExportExcel GET /api/orders/export/excel
func (h *OrderHandler) ExportExcel(c *gin.Context) {
	f, filename, err := h.exporter.OrdersExcel(searchParams(c))
	if err != nil {
		Fail(c, err)
		return
	}
	defer f.Close()
	writeExcel(c, f, filename)
}

// ExportAll GET /api/data/export 四张表各占一个工作表
func (h *OrderHandler) ExportAll(c *gin.Context) {
	f, filename, err := h.exporter.AllData()
	if err != nil {
		Fail(c, err)
		return
	}
	defer f.Close()
	writeExcel(c, f, filename)
}

func writeExcel(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Type", excelContentType)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Transfer-Encoding", "binary")
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}

// Import POST /api/orders/import 表单文件上传，按扩展名识别格式
func (h *OrderHandler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "请选择文件")
		return
	}
	defer file.Close()

	var format string
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".csv":
		format = service.FormatCSV
	case ".xlsx":
		format = service.FormatExcel
	}

	count, err := h.importer.Import(file, format)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"count": count})
}
