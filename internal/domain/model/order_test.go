package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionOrder(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"pending to confirmed", OrderStatusPending, OrderStatusConfirmed, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"pending to shipped", OrderStatusPending, OrderStatusShipped, false},
		{"pending to delivered", OrderStatusPending, OrderStatusDelivered, false},
		{"confirmed to shipped", OrderStatusConfirmed, OrderStatusShipped, true},
		{"confirmed to processing", OrderStatusConfirmed, OrderStatusProcessing, true},
		{"processing to shipped", OrderStatusProcessing, OrderStatusShipped, true},
		{"shipped to delivered", OrderStatusShipped, OrderStatusDelivered, true},
		{"shipped to confirmed", OrderStatusShipped, OrderStatusConfirmed, false},
		{"delivered to refunded", OrderStatusDelivered, OrderStatusRefunded, true},
		{"delivered to cancelled", OrderStatusDelivered, OrderStatusCancelled, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusRefunded, false},
		{"refunded is terminal", OrderStatusRefunded, OrderStatusPending, false},
		{"same status rejected", OrderStatusPending, OrderStatusPending, false},
		{"unknown status", OrderStatus("bogus"), OrderStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionOrder(tt.from, tt.to))
		})
	}
}

func TestGenerateOrderCode(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 100; i++ {
		code := GenerateOrderCode()

		assert.Len(t, code, 10)
		assert.True(t, strings.HasPrefix(code, "SF"))
		for _, c := range code[2:] {
			assert.Contains(t, orderCodeChars, string(c))
		}

		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}
