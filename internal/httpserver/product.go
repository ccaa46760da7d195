package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stockroom/inventory-api/internal/logging"
	"github.com/stockroom/inventory-api/internal/service"
)

type ProductHTTP struct {
	Svc *service.StockService
}

func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return uint(id), nil
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("list_products_failed", "status", 500, "error", err)
		return httpError(err, "product not found")
	}

	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML) {
		return renderProductTable(c, items)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := paramID(c)
	if err != nil {
		return err
	}

	product, err := h.Svc.Get(ctx, id)
	if err != nil {
		l.Warn("get_product_failed", "product_id", id, "error", err)
		return httpError(err, "product not found")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Stock == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "sku, name and stock (>= 0) are required")
	}

	prod, err := h.Svc.Create(ctx, req.SKU, req.Name, *req.Stock)
	if err != nil {
		l.Warn("create_product_failed", "sku", req.SKU, "error", err)
		return httpError(err, "product not found")
	}

	l.Info("create_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHTTP) ReplaceProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.replace")

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req replaceProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("replace_product_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Stock == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "sku, name and stock (>= 0) are required")
	}

	prod, err := h.Svc.Replace(ctx, id, req.SKU, req.Name, *req.Stock)
	if err != nil {
		l.Warn("replace_product_failed", "product_id", id, "error", err)
		return httpError(err, "product not found")
	}

	l.Info("replace_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHTTP) SetStock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.set_stock")

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req setStockRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("set_stock_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Stock == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "stock must be an integer >= 0")
	}

	prod, err := h.Svc.SetStock(ctx, id, *req.Stock)
	if err != nil {
		l.Warn("set_stock_failed", "product_id", id, "error", err)
		return httpError(err, "product not found")
	}

	l.Info("set_stock_success", "product_id", prod.ID, "stock", prod.Stock)
	return c.JSON(http.StatusOK, stockView{ID: prod.ID, SKU: prod.SKU, Stock: prod.Stock})
}

func (h *ProductHTTP) AdjustStock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.adjust_stock")

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req adjustStockRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("adjust_stock_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Delta == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "delta must be an integer")
	}

	prod, err := h.Svc.AdjustStock(ctx, id, *req.Delta)
	if err != nil {
		l.Warn("adjust_stock_failed", "product_id", id, "delta", *req.Delta, "error", err)
		return httpError(err, "product not found")
	}

	l.Info("adjust_stock_success", "product_id", prod.ID, "stock", prod.Stock)
	return c.JSON(http.StatusOK, stockView{ID: prod.ID, SKU: prod.SKU, Stock: prod.Stock})
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		l.Warn("delete_product_failed", "product_id", id, "error", err)
		return httpError(err, "product not found")
	}

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "product deleted",
		"id":      id,
	})
}

// GetStock answers the stock lookup query. Exactly one of sku/id must be
// supplied; sku wins when both are present.
func (h *ProductHTTP) GetStock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "stock.lookup")

	prod, err := h.Svc.Lookup(ctx, c.QueryParam("sku"), c.QueryParam("id"))
	if err != nil {
		l.Warn("stock_lookup_failed", "error", err)
		return httpError(err, "product not found")
	}

	return c.JSON(http.StatusOK, stockView{ID: prod.ID, SKU: prod.SKU, Stock: prod.Stock})
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	size := 20
	if v, err := strconv.Atoi(c.QueryParam("size")); err == nil && v > 0 {
		size = v
	}

	total, products, err := h.Svc.Search(ctx, q, size)
	if err != nil {
		l.Error("search_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search unavailable")
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
