package order

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewOrder(t *testing.T) {
	items := []OrderItem{
		{BookID: 1, Quantity: 2, Price: price("9.99")},
		{BookID: 2, Quantity: 1, Price: price("5.00")},
	}

	o, err := NewOrder("ORD1", 7, "  123 Main St ", items)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "123 Main St", o.ShippingAddress)
	assert.True(t, price("24.98").Equal(o.Total), "total=%s", o.Total)
	assert.Len(t, o.Items, 2)
	assert.False(t, o.OrderDate.IsZero())
	assert.True(t, o.IsOwnedBy(7))
}

func TestNewOrderValidation(t *testing.T) {
	ok := []OrderItem{{BookID: 1, Quantity: 1, Price: price("1")}}

	_, err := NewOrder("ORD", 1, "   ", ok)
	assert.ErrorIs(t, err, ErrInvalidShippingAddress)

	_, err = NewOrder("ORD", 1, strings.Repeat("a", 256), ok)
	assert.ErrorIs(t, err, ErrInvalidShippingAddress)

	_, err = NewOrder("ORD", 1, strings.Repeat("上", 256), ok)
	assert.ErrorIs(t, err, ErrInvalidShippingAddress)

	_, err = NewOrder("ORD", 1, "addr", nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = NewOrder("ORD", 1, "addr", []OrderItem{{BookID: 1, Quantity: 0, Price: price("1")}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewOrder("ORD", 1, "addr", []OrderItem{{BookID: 1, Quantity: 1, Price: decimal.Zero}})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestShippingAddressCountsCharacters(t *testing.T) {
	address := strings.Repeat("上", MaxShippingAddressLength)
	got, err := NormalizeShippingAddress("  " + address + " ")
	require.NoError(t, err)
	assert.Equal(t, address, got)

	got, err = NormalizeShippingAddress(strings.Repeat("上", 100))
	require.NoError(t, err)
	assert.Len(t, got, 300)
}

func TestNewOrderAmountLimit(t *testing.T) {
	_, err := NewOrder("ORD", 1, "addr", []OrderItem{{BookID: 1, Quantity: 1, Price: price("100000000.00")}})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = NewOrder("ORD", 1, "addr", []OrderItem{{BookID: 1, Quantity: 2, Price: price("50000000.00")}})
	assert.ErrorIs(t, err, ErrTotalTooLarge)

	o, err := NewOrder("ORD", 1, "addr", []OrderItem{{BookID: 1, Quantity: 1, Price: MaxAmount}})
	require.NoError(t, err)
	assert.True(t, MaxAmount.Equal(o.Total))
}

func TestCalculateTotalOrderIndependent(t *testing.T) {
	items := []OrderItem{
		{Quantity: 3, Price: price("0.10")},
		{Quantity: 1, Price: price("0.20")},
		{Quantity: 7, Price: price("19.99")},
		{Quantity: 2, Price: price("0.01")},
	}
	reversed := make([]OrderItem, len(items))
	for i := range items {
		reversed[len(items)-1-i] = items[i]
	}

	assert.True(t, CalculateTotal(items).Equal(CalculateTotal(reversed)))
	assert.Equal(t, "140.45", CalculateTotal(items).StringFixed(2))
	assert.True(t, CalculateTotal(nil).IsZero())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" delivered ")
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, s)
	assert.Equal(t, "已送达", s.Label())

	_, err = ParseStatus("LOST")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, "未知状态", OrderStatus("LOST").Label())
}

func TestChangeStatusAllowsAnyKnownStatus(t *testing.T) {
	o := &Order{Status: StatusDelivered}

	require.NoError(t, o.ChangeStatus(StatusPending))
	assert.Equal(t, StatusPending, o.Status)

	assert.ErrorIs(t, o.ChangeStatus("LOST"), ErrInvalidStatus)
	assert.Equal(t, StatusPending, o.Status)
}

func TestNewCreatedEvent(t *testing.T) {
	o, err := NewOrder("ORD9", 3, "addr", []OrderItem{{BookID: 5, Quantity: 2, Price: price("9.9")}})
	require.NoError(t, err)
	o.ID = 11

	evt := NewCreatedEvent(o)
	assert.Equal(t, uint(11), evt.OrderID)
	assert.Equal(t, "19.80", evt.Total)
	require.Len(t, evt.Items, 1)
	assert.Equal(t, "9.90", evt.Items[0].Price)
}

func TestGenerateOrderNo(t *testing.T) {
	no := GenerateOrderNo()
	assert.True(t, strings.HasPrefix(no, "ORD"))
	assert.Len(t, no, 3+10+6)
}
