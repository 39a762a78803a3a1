package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/storefront/internal/event/topic"
)

func TestSelector_Matches(t *testing.T) {
	tests := []struct {
		name  string
		sel   Selector
		topic topic.Topic
		want  bool
	}{
		{"exact match", Exact("basket.changed"), "basket.changed", true},
		{"exact mismatch", Exact("basket.changed"), "catalog.changed", false},
		{"exact no prefix", Exact("order"), "order.email.change", false},
		{"pattern single", Pattern("order.*.change"), "order.email.change", true},
		{"pattern single depth", Pattern("order.*.change"), "order.a.b.change", false},
		{"pattern multi", Pattern("order.**"), "order.email.change", true},
		{"pattern any", Pattern("**"), "modal.open", true},
		{"pattern other root", Pattern("order.*.change"), "contacts.email.change", false},
		{"regexp", MustRegexp(`^order\..*\.change$`), "order.payment.change", true},
		{"regexp mismatch", MustRegexp(`^order\..*\.change$`), "order.submit", false},
		{"zero value", Selector{}, "basket.changed", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sel.Matches(tt.topic))
		})
	}
}

func TestSelector_IsValid(t *testing.T) {
	assert.True(t, Exact("basket.changed").IsValid())
	assert.False(t, Exact("").IsValid())
	assert.False(t, Exact("order.*").IsValid())
	assert.True(t, Pattern("order.*").IsValid())
	assert.False(t, Pattern("").IsValid())
	assert.True(t, MustRegexp(".*").IsValid())
	assert.False(t, Selector{}.IsValid())
}

func TestRegexp_Invalid(t *testing.T) {
	_, err := Regexp("(")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSelector)

	assert.Panics(t, func() { MustRegexp("(") })
}

func TestSelector_String(t *testing.T) {
	assert.Equal(t, "exact:basket.changed", Exact("basket.changed").String())
	assert.Equal(t, "pattern:order.*.change", Pattern("order.*.change").String())
	assert.Equal(t, "regexp:^order", MustRegexp("^order").String())
	assert.Equal(t, "regexp:<nil>", Selector{kind: SelectorRegexp}.String())
	assert.Equal(t, "unknown", SelectorKind(9).String())
}
