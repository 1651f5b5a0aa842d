package orders

import (
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

func toOrderResponse(o *entity.Order, items []*entity.OrderItem, notes []*entity.OrderNote) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		CustomerID:         o.CustomerID,
		Status:             string(o.Status),
		OrderType:          o.OrderType,
		DeliveryAddressID:  o.DeliveryAddressID,
		Subtotal:           o.Subtotal,
		Tax:                o.Tax,
		DeliveryFee:        o.DeliveryFee,
		Total:              o.Total,
		ActualDeliveryTime: o.ActualDeliveryTime,
		CreatedAt:          o.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			MenuItemID:          it.MenuItemID,
			Quantity:            it.Quantity,
			UnitPrice:           it.UnitPrice,
			TotalPrice:          it.TotalPrice,
			SpecialInstructions: it.SpecialInstructions,
		})
	}
	for _, n := range notes {
		resp.Notes = append(resp.Notes, dto.OrderNoteResponse{
			ActorID:   n.ActorID,
			ActorRole: n.ActorRole,
			Note:      n.Note,
			CreatedAt: n.CreatedAt,
		})
	}
	return resp
}
