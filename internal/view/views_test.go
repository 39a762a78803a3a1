package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/storefront/internal/store"
)

func price(n int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(n))
}

func TestPage(t *testing.T) {
	b := Page(PageProps{Counter: 3, Gallery: Block{text("card")}})
	require.Len(t, b, 3)
	assert.Contains(t, b[0].Text, "Корзина [3]")
	assert.Equal(t, "card", b[2].Text)
	assert.False(t, b[2].Style.Dim)

	locked := Page(PageProps{Gallery: Block{text("card")}, Locked: true})
	for _, l := range locked {
		assert.True(t, l.Style.Dim, l.Text)
	}

	withStatus := Page(PageProps{Status: "Не удалось загрузить каталог", Locked: true})
	last := withStatus[len(withStatus)-1]
	assert.Equal(t, "Не удалось загрузить каталог", last.Text)
	assert.False(t, last.Style.Dim)
}

func TestModal(t *testing.T) {
	plain := Modal(ModalProps{Content: Block{text("form")}})
	assert.Equal(t, []string{"form", "", "Esc: закрыть"}, lines(plain))

	withStatus := Modal(ModalProps{Content: Block{text("form")}, Status: "Не удалось оформить заказ: сервер недоступен"})
	assert.Equal(t, []string{"form", "", "Не удалось оформить заказ: сервер недоступен", "", "Esc: закрыть"}, lines(withStatus))
	assert.Equal(t, StyleTitle, withStatus[2].Style)
}

func lines(b Block) []string {
	out := make([]string, len(b))
	for i, l := range b {
		out[i] = l.Text
	}
	return out
}

func TestGallery(t *testing.T) {
	b := Gallery([]CardProps{
		{Title: "Бэкенд-антистресс", Category: store.CategoryOther, Price: price(1000), InBasket: true},
		{Title: "Мамка-таймер", Category: store.CategorySoftSkill, Selected: true},
	})
	require.Len(t, b, 2)
	assert.Equal(t, "✓ Бэкенд-антистресс [другое] 1\u00a0000 синапсов", b[0].Text)
	assert.Equal(t, "  Мамка-таймер [софт-скил] Бесценно", b[1].Text)
	assert.True(t, b[1].Style.Reverse)

	assert.Len(t, Gallery(nil), 1)
}

func TestPreviewProps_Button(t *testing.T) {
	tests := []struct {
		name     string
		props    PreviewProps
		label    string
		disabled bool
	}{
		{"priceless", PreviewProps{}, "Недоступно", true},
		{"buy", PreviewProps{Price: price(750)}, "Купить", false},
		{"remove", PreviewProps{Price: price(750), InBasket: true}, "Удалить из корзины", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			btn := tt.props.Button()
			assert.Equal(t, tt.label, btn.Label)
			assert.Equal(t, tt.disabled, btn.Disabled)
		})
	}
}

func TestPreview(t *testing.T) {
	p := PreviewPropsFor(store.Product{
		ID:          "x",
		Title:       "HEX-леденец",
		Category:    store.CategoryOther,
		Description: "Лизните этот леденец",
		Price:       price(1450),
	})
	out := Preview(p).Text()
	assert.Contains(t, out, "HEX-леденец")
	assert.Contains(t, out, "Лизните этот леденец")
	assert.Contains(t, out, "1\u00a0450 синапсов")
	assert.Contains(t, out, "[ Купить ]")
}

func TestBasket(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		p := BasketPropsFor(nil, -1)
		assert.True(t, p.SubmitButton().Disabled)
		out := Basket(p).Text()
		assert.Contains(t, out, "Корзина пуста")
		assert.Contains(t, out, "0 синапсов")
	})

	t.Run("items", func(t *testing.T) {
		p := BasketPropsFor([]store.BasketEntry{
			{ID: "a", Title: "Фреймворк куки судьбы", Price: price(2500)},
			{ID: "b", Title: "Кнопка «Замьютить кота»", Price: price(2000)},
		}, 1)
		assert.False(t, p.SubmitButton().Disabled)
		assert.True(t, p.Total.Equal(decimal.NewFromInt(4500)))

		b := Basket(p)
		assert.Equal(t, "1. Фреймворк куки судьбы  2\u00a0500 синапсов", b[1].Text)
		assert.Equal(t, "2. Кнопка «Замьютить кота»  2\u00a0000 синапсов", b[2].Text)
		assert.True(t, b[2].Style.Reverse)
		assert.Contains(t, b.Text(), "4\u00a0500 синапсов")
		assert.NotContains(t, b.Text(), "Корзина пуста")
	})
}

func TestOrderForm(t *testing.T) {
	b := OrderForm(OrderFormProps{
		FormState: FormState{Errors: []string{"Нужно указать адрес!"}, Focus: OrderFocusAddress},
		Payment:   store.PaymentCash,
		Address:   "Main",
	})
	out := b.Text()
	assert.Contains(t, out, "( ) Онлайн  (•) При получении")
	assert.Contains(t, out, "Адрес доставки: Main_")
	assert.Contains(t, out, "Нужно указать адрес!")

	last := b[len(b)-1]
	assert.Equal(t, "[ Далее ]", last.Text)
	assert.True(t, last.Style.Dim)
}

func TestContactsForm(t *testing.T) {
	b := ContactsForm(ContactsFormProps{
		FormState: FormState{
			Valid:  false,
			Errors: []string{"Нужно указать телефон!", "Нужно указать email!"},
			Focus:  ContactsFocusSubmit,
		},
		Email: "a@b.c",
	})
	out := b.Text()
	assert.Contains(t, out, "Email: a@b.c_")
	assert.Contains(t, out, "Нужно указать телефон!; Нужно указать email!")

	valid := ContactsForm(ContactsFormProps{FormState: FormState{Valid: true, Focus: ContactsFocusSubmit}})
	last := valid[len(valid)-1]
	assert.False(t, last.Style.Dim)
	assert.True(t, last.Style.Reverse)
}

func TestSuccess(t *testing.T) {
	out := Success(SuccessProps{Total: decimal.NewFromInt(3000)}).Text()
	assert.Contains(t, out, "Списано 3\u00a0000 синапсов")
}

func TestNextFocus(t *testing.T) {
	assert.Equal(t, 1, NextFocus(0, 1, 3))
	assert.Equal(t, 0, NextFocus(2, 1, 3))
	assert.Equal(t, 2, NextFocus(0, -1, 3))
}
