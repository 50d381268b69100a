package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(15000), IDR)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(15000)))
		assert.Equal(t, IDR, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("add same currency", func(t *testing.T) {
		a := NewMoneyIDR(decimal.NewFromInt(20000))
		b := NewMoneyIDR(decimal.NewFromInt(1000))

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(21000)))
	})

	t.Run("add different currencies fails", func(t *testing.T) {
		a := NewMoneyIDR(decimal.NewFromInt(100))
		b, _ := NewMoney(decimal.NewFromInt(100), USD)

		_, err := a.Add(b)
		assert.Error(t, err)
	})

	t.Run("subtract can go negative", func(t *testing.T) {
		a := NewMoneyIDR(decimal.NewFromInt(500))
		b := NewMoneyIDR(decimal.NewFromInt(800))

		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.True(t, diff.IsNegative())
	})

	t.Run("multiply by quantity", func(t *testing.T) {
		price := NewMoneyIDR(decimal.NewFromInt(10000))
		total := price.MultiplyByInt(2)
		assert.True(t, total.Amount().Equal(decimal.NewFromInt(20000)))
	})
}

func TestMoney_Comparison(t *testing.T) {
	a := NewMoneyIDR(decimal.NewFromInt(100))
	b := NewMoneyIDR(decimal.NewFromInt(200))

	less, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, less)

	gte, err := b.GreaterThanOrEqual(a)
	require.NoError(t, err)
	assert.True(t, gte)

	assert.True(t, a.Equals(NewMoneyIDR(decimal.NewFromInt(100))))
	assert.False(t, a.Equals(b))
}

func TestMoney_JSON(t *testing.T) {
	m := NewMoneyIDR(decimal.NewFromInt(20500))

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}
