package categorize

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/cashflow/internal/model"
)

func TestCategorize_Examples(t *testing.T) {
	e := Default()

	tests := []struct {
		desc       string
		category   string
		confidence float64
	}{
		{"Salary Deposit", "Income", 0.8},
		{"Starbucks Coffee", "Food & Dining", 0.8},
		{"Amazon Purchase", "Shopping", 0.7},
		{"NETFLIX.COM", "Entertainment", 0.4},
		{"Shell Gas", "Transportation", 0.2},
		{"xyzzy", "Other", 0},
		{"", "Other", 0},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := e.Categorize(tt.desc)
			assert.Equal(t, tt.category, got.Category)
			assert.InDelta(t, tt.confidence, got.Confidence, 1e-9)
		})
	}
}

func TestCategorize_ConfidenceCapped(t *testing.T) {
	got := Default().Categorize("restaurant cafe coffee pizza burger lunch")
	assert.Equal(t, "Food & Dining", got.Category)
	assert.Equal(t, 1.0, got.Confidence)
}

func TestCategorize_TieKeepsDeclarationOrder(t *testing.T) {
	// "gas" scores 1 for both Transportation and Utilities.
	assert.Equal(t, "Transportation", Default().Categorize("gas").Category)

	e, err := NewEngine([]Rule{
		{Category: "B", Keywords: []string{"widget"}},
		{Category: "A", Keywords: []string{"widget"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "B", e.Categorize("WIDGET co").Category)
}

func TestCategorize_Tags(t *testing.T) {
	e := Default()

	got := e.Categorize("Starbucks Coffee")
	assert.Equal(t, []string{"coffee", "starbucks"}, got.Tags)

	got = e.Categorize("Spotify monthly plan $9.99")
	assert.Contains(t, got.Tags, "spotify")
	assert.Contains(t, got.Tags, "small-purchase")
	assert.Contains(t, got.Tags, "recurring")

	got = e.Categorize("Wire transfer 2,500.00")
	assert.Contains(t, got.Tags, "high-value")

	got = e.Categorize("Chipotle online order")
	assert.Contains(t, got.Tags, "online")

	assert.Empty(t, e.Categorize("xyzzy").Tags)
}

func TestCategorize_TagsCapped(t *testing.T) {
	got := Default().Categorize("restaurant cafe coffee pizza burger sushi bakery online monthly")
	assert.Len(t, got.Tags, model.MaxTags)
	assert.Equal(t, "restaurant", got.Tags[0])
}

func TestCategorize_Deterministic(t *testing.T) {
	e := Default()
	first := e.Categorize("Uber trip to airport")
	for range 10 {
		assert.Equal(t, first, e.Categorize("Uber trip to airport"))
	}
}

func TestNewEngine_Errors(t *testing.T) {
	_, err := NewEngine([]Rule{{Category: ""}})
	assert.ErrorContains(t, err, "empty category")

	_, err = NewEngine([]Rule{{Category: "A"}, {Category: "A"}})
	assert.ErrorContains(t, err, "duplicate category")

	_, err = NewEngine([]Rule{{Category: "A", Patterns: []string{"("}}})
	assert.ErrorContains(t, err, "compiling pattern")
}

func TestEngine_CategoriesAndKnown(t *testing.T) {
	e := Default()
	cats := e.Categories()
	require.Len(t, cats, 20)
	assert.Equal(t, "Food & Dining", cats[0])
	assert.Equal(t, "Other", cats[len(cats)-1])
	assert.True(t, e.Known("Cash & ATM"))
	assert.False(t, e.Known("Groceries"))

	cats[0] = "mutated"
	assert.Equal(t, "Food & Dining", e.Categories()[0])

	custom, err := NewEngine([]Rule{{Category: "Coffee", Keywords: []string{"coffee"}}})
	require.NoError(t, err)
	assert.True(t, custom.Known("Other"), "Other is always available")
	assert.Equal(t, []string{"Coffee", "Other"}, custom.Categories())
}

func TestCategorizeAll_PreservesOrder(t *testing.T) {
	e := Default()
	descs := []string{"Starbucks Coffee", "Salary Deposit", "Amazon Purchase", "xyzzy"}
	var txns []model.RawTransaction
	for i := range 40 {
		txns = append(txns, model.RawTransaction{
			Date:        time.Date(2024, 1, 1+i%28, 0, 0, 0, 0, time.UTC),
			Description: fmt.Sprintf("%s %d", descs[i%len(descs)], i),
			Amount:      decimal.NewFromInt(int64(-i)),
		})
	}

	got, err := e.CategorizeAll(context.Background(), txns, 3)
	require.NoError(t, err)
	require.Len(t, got, len(txns))
	for i := range txns {
		assert.Equal(t, txns[i].Description, got[i].Description)
		assert.Equal(t, e.Categorize(txns[i].Description).Category, got[i].Category)
	}
}

func TestCategorizeAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	txns := []model.RawTransaction{{Description: "coffee"}}
	_, err := Default().CategorizeAll(ctx, txns, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCategorizeAll_Empty(t *testing.T) {
	got, err := Default().CategorizeAll(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}
