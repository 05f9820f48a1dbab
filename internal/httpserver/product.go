package httpserver

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/abu-huda81/shop_backend/internal/apperr"
	"github.com/abu-huda81/shop_backend/internal/logging"
	"github.com/abu-huda81/shop_backend/internal/service"
	"github.com/abu-huda81/shop_backend/internal/transport"
	"github.com/abu-huda81/shop_backend/internal/util"
)

type ProductHTTP struct {
	Svc *service.CatalogService
}

// bindProductForm reads the multipart fields and image files of a product
// create/update request.
func bindProductForm(c echo.Context) (transport.ProductRequest, []*multipart.FileHeader, error) {
	var req transport.ProductRequest

	req.Name = c.FormValue("name")
	req.Description = c.FormValue("description")

	var err error
	if v := c.FormValue("price"); v != "" {
		if req.Price, err = strconv.ParseFloat(v, 64); err != nil {
			return req, nil, errors.New("price is not a number")
		}
	}
	if v := c.FormValue("new_price"); v != "" {
		if req.NewPrice, err = strconv.ParseFloat(v, 64); err != nil {
			return req, nil, errors.New("new_price is not a number")
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		// fields without files is a legal update request
		return req, nil, nil
	}
	return req, form.File["files"], nil
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	req, files, err := bindProductForm(c)
	if err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid form", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.Svc.CreateProduct(ctx, req, files)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			l.Warn("product_create_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("product_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product to db")
	}

	l.Info("create_product_success", "product_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *ProductHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	product, err := h.Svc.GetProduct(ctx, uint(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "product_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListProducts(ctx, offset, limit)
	if err != nil {
		l.Error("list_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	req, files, err := bindProductForm(c)
	if err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "invalid form", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.Svc.UpdateProduct(ctx, uint(id), req, files)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			l.Warn("product_update_error", "status", 404, "product_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		case errors.Is(err, apperr.ErrValidation):
			l.Warn("product_update_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		default:
			l.Error("product_update_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
		}
	}

	l.Info("update_product_success", "product_id", updated.ID)
	return c.JSON(http.StatusOK, updated)
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("product_delete_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteProduct(ctx, uint(id)); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			l.Warn("product_delete_error", "status", 404, "product_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("product_delete_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
