package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Shalinisinha22/Ewa-admin/internal/model"
	"github.com/Shalinisinha22/Ewa-admin/pkg/database"
	"github.com/Shalinisinha22/Ewa-admin/pkg/logger"
	"github.com/Shalinisinha22/Ewa-admin/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var orderStatuses = map[string]bool{
	model.OrderStatusPending:    true,
	model.OrderStatusProcessing: true,
	model.OrderStatusShipped:    true,
	model.OrderStatusDelivered:  true,
	model.OrderStatusCancelled:  true,
}

// ListOrders returns a paginated, store-scoped order listing with status
// filtering and customer search
func ListOrders(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	page, limit, offset := parsePagination(c)

	query := scoped(database.GetDB().Model(&model.Order{}), storeID)

	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ? OR LOWER(order_number) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	query.Count(&total)

	var orders []model.Order
	result := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders)
	if result.Error != nil {
		log.Error("Failed to list orders", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve orders"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"orders": orders,
		"page":   page,
		"pages":  totalPages(total, limit),
		"total":  total,
	})
}

// GetOrder returns one store-scoped order
func GetOrder(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var order model.Order
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&order)
	if result.Error != nil {
		log.Warn("Order not found", zap.String("order_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Order not found"})
	}

	return c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus transitions an order to a new fulfillment status.
// Delivered orders get their delivery timestamp stamped once.
func UpdateOrderStatus(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var req struct {
		Status string `json:"status"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse order status update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	if !orderStatuses[req.Status] {
		log.Warn("Invalid order status", zap.String("status", req.Status))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid order status"})
	}

	var order model.Order
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&order)
	if result.Error != nil {
		log.Warn("Order not found for status update", zap.String("order_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Order not found"})
	}

	order.Status = req.Status
	if req.Status == model.OrderStatusDelivered && !order.IsDelivered {
		now := time.Now()
		order.IsDelivered = true
		order.DeliveredAt = &now
	}

	if result := database.GetDB().Save(&order); result.Error != nil {
		log.Error("Failed to update order status", zap.Uint("order_id", order.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Order update failed"})
	}

	log.Info("Order status updated",
		zap.Uint("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("status", order.Status))
	prometheus.RecordResourceOperation("orders", "status")

	return c.JSON(http.StatusOK, order)
}

// MarkOrderPaid stamps an order as paid
func MarkOrderPaid(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var order model.Order
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&order)
	if result.Error != nil {
		log.Warn("Order not found for payment update", zap.String("order_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Order not found"})
	}

	if !order.IsPaid {
		now := time.Now()
		order.IsPaid = true
		order.PaidAt = &now
		if result := database.GetDB().Save(&order); result.Error != nil {
			log.Error("Failed to mark order paid", zap.Uint("order_id", order.ID), zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Order update failed"})
		}
	}

	log.Info("Order marked paid", zap.Uint("order_id", order.ID), zap.String("order_number", order.OrderNumber))
	prometheus.RecordResourceOperation("orders", "paid")

	return c.JSON(http.StatusOK, order)
}

// DeleteOrder removes a store-scoped order
func DeleteOrder(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var order model.Order
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&order)
	if result.Error != nil {
		log.Warn("Order not found for deletion", zap.String("order_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Order not found"})
	}

	if result := database.GetDB().Delete(&order); result.Error != nil {
		log.Error("Failed to delete order", zap.Uint("order_id", order.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Order deletion failed"})
	}

	log.Info("Order deleted", zap.Uint("order_id", order.ID), zap.String("order_number", order.OrderNumber))
	prometheus.RecordResourceOperation("orders", "delete")

	return c.JSON(http.StatusOK, echo.Map{"message": "Order deleted successfully"})
}
