package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerError(t *testing.T) {
	inner := errors.New("boom")
	err := &HandlerError{SubscriptionID: "s1", Topic: "basket.changed", Err: inner}

	assert.Equal(t, "handler error for subscription s1 on topic basket.changed: boom", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestPanicError(t *testing.T) {
	err := &PanicError{SubscriptionID: "s1", Topic: "modal.open", Value: "oops"}

	assert.Equal(t, "handler panic for subscription s1 on topic modal.open: oops", err.Error())
	assert.ErrorIs(t, err, ErrHandlerPanic)
	assert.NotErrorIs(t, err, ErrNilHandler)
}

func TestPayloadTypeError(t *testing.T) {
	err := &PayloadTypeError{Topic: "card.select", Want: "string", Got: "int"}

	assert.Equal(t, "topic card.select: payload is int, want string", err.Error())
	assert.ErrorIs(t, err, ErrPayloadType)
}
