package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskOrderPlacedNotify = "orders.notify.placed"

const TaskOrderStatusNotify = "orders.notify.status"

// OrderPlacedPayload carries everything the placed-order emails render.
type OrderPlacedPayload struct {
	OrderID      string `json:"orderId"`
	OrderNumber  string `json:"orderNumber"`
	CompanyName  string `json:"companyName"`
	ContactEmail string `json:"contactEmail,omitempty"`
	ItemCount    int    `json:"itemCount"`
	Total        string `json:"total"`
	Channel      string `json:"channel"`
}

type OrderStatusPayload struct {
	OrderID      string `json:"orderId"`
	OrderNumber  string `json:"orderNumber"`
	CompanyName  string `json:"companyName"`
	ContactEmail string `json:"contactEmail,omitempty"`
	OldStatus    string `json:"oldStatus"`
	NewStatus    string `json:"newStatus"`
}

func NewOrderPlacedTask(payload OrderPlacedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlacedNotify, data), nil
}

func ParseOrderPlacedPayload(task *asynq.Task) (OrderPlacedPayload, error) {
	var payload OrderPlacedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return OrderPlacedPayload{}, err
	}
	return payload, nil
}

func NewOrderStatusTask(payload OrderStatusPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusNotify, data), nil
}

func ParseOrderStatusPayload(task *asynq.Task) (OrderStatusPayload, error) {
	var payload OrderStatusPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return OrderStatusPayload{}, err
	}
	return payload, nil
}
