package view

import (
	"strings"

	"github.com/dshills/storefront/internal/store"
)

// Focus positions within the order form.
const (
	OrderFocusPayment = iota
	OrderFocusAddress
	OrderFocusSubmit
	OrderFocusCount
)

// Focus positions within the contacts form.
const (
	ContactsFocusEmail = iota
	ContactsFocusPhone
	ContactsFocusSubmit
	ContactsFocusCount
)

// NextFocus cycles focus forward (delta 1) or backward (delta -1) over n
// positions.
func NextFocus(focus, delta, n int) int {
	return ((focus+delta)%n + n) % n
}

// PaymentLabels maps payment methods to their button captions.
var PaymentLabels = map[store.Payment]string{
	store.PaymentCard: "Онлайн",
	store.PaymentCash: "При получении",
}

// Payments lists the payment buttons in display order.
var Payments = []store.Payment{store.PaymentCard, store.PaymentCash}

// FormState is the part shared by both checkout forms.
type FormState struct {
	Valid  bool
	Errors []string
	Focus  int
}

func (f FormState) footer(label string, submitFocus int) Block {
	out := Block{text("")}
	if len(f.Errors) > 0 {
		out = append(out, styled(strings.Join(f.Errors, "; "), StyleMuted))
	}
	return append(out, Button{
		Label:    label,
		Disabled: !f.Valid,
		Focused:  f.Focus == submitFocus,
	}.Line())
}

func input(label, value string, focused bool) Line {
	st := StyleInput
	if focused {
		st = StyleSelected
	}
	return styled(label+": "+value+"_", st)
}

// OrderFormProps drives the payment and address step.
type OrderFormProps struct {
	FormState
	Payment store.Payment
	Address string
}

// OrderForm renders payment buttons and the address input.
func OrderForm(p OrderFormProps) Block {
	var sb strings.Builder
	for i, pay := range Payments {
		if i > 0 {
			sb.WriteString("  ")
		}
		mark := "( )"
		if pay == p.Payment {
			mark = "(•)"
		}
		sb.WriteString(mark + " " + PaymentLabels[pay])
	}
	payStyle := StylePlain
	if p.Focus == OrderFocusPayment {
		payStyle = StyleSelected
	}

	out := Block{
		styled("Способ оплаты", StyleTitle),
		styled(sb.String(), payStyle),
		text(""),
		input("Адрес доставки", p.Address, p.Focus == OrderFocusAddress),
	}
	return append(out, p.footer("Далее", OrderFocusSubmit)...)
}

// ContactsFormProps drives the contacts step.
type ContactsFormProps struct {
	FormState
	Email string
	Phone string
}

// ContactsForm renders the email and phone inputs.
func ContactsForm(p ContactsFormProps) Block {
	out := Block{
		styled("Контакты", StyleTitle),
		input("Email", p.Email, p.Focus == ContactsFocusEmail),
		input("Телефон", p.Phone, p.Focus == ContactsFocusPhone),
	}
	return append(out, p.footer("Оплатить", ContactsFocusSubmit)...)
}
