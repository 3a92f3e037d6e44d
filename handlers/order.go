package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"courtdesk/db"
	"courtdesk/middleware"
	"courtdesk/models"
	"courtdesk/services"

	"github.com/labstack/echo/v4"
)

type draftOrderRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DraftOrderHandler creates a draft order on a case
func DraftOrderHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req draftOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	order, err := services.NewOrderService(db.DB).Draft(user, c.Param("ident"), req.Title, req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, order)
}

// ListCaseOrdersHandler lists a case's orders, newest first
func ListCaseOrdersHandler(c echo.Context) error {
	caseRecord, err := services.ResolveCase(db.DB, c.Param("ident"))
	if err != nil {
		return respondError(c, err)
	}

	orders, err := services.NewOrderService(db.DB).ListForCase(caseRecord.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}

// SignOrderHandler finalizes a draft order with the judge's signature
func SignOrderHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid order ID")
	}

	order, svcErr := services.NewOrderService(db.DB).Sign(user, uint(orderID))
	if svcErr != nil {
		return respondError(c, svcErr)
	}

	return c.JSON(http.StatusOK, order)
}

// DownloadOrderPDFHandler renders a signed order as a PDF document
func DownloadOrderPDFHandler(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid order ID")
	}

	var order models.Order
	if err := db.DB.Preload("Case").Preload("SignedBy").First(&order, uint(orderID)).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	}

	pdfBytes, err := services.GenerateOrderPDF(&order, order.Case, order.SignedBy)
	if err != nil {
		return respondError(c, err)
	}

	filename := services.OrderPDFFilename(&order, order.Case)
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}
