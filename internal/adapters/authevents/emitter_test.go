package authevents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/maint/internal/domain"
)

func TestEmitter_DeliversInSubscriptionOrder(t *testing.T) {
	emitter := NewEmitter()
	var calls []string

	emitter.Subscribe(func(_ context.Context, event domain.AuthEvent, _ *domain.Session) {
		calls = append(calls, "first:"+string(event))
	})
	emitter.Subscribe(func(_ context.Context, event domain.AuthEvent, _ *domain.Session) {
		calls = append(calls, "second:"+string(event))
	})

	emitter.Emit(context.Background(), domain.AuthEventSignedIn, &domain.Session{})

	assert.Equal(t, []string{"first:SIGNED_IN", "second:SIGNED_IN"}, calls)
}

func TestEmitter_UnsubscribeStopsDelivery(t *testing.T) {
	emitter := NewEmitter()
	count := 0

	unsubscribe := emitter.Subscribe(func(context.Context, domain.AuthEvent, *domain.Session) {
		count++
	})
	emitter.Emit(context.Background(), domain.AuthEventSignedOut, nil)

	unsubscribe()
	unsubscribe()
	emitter.Emit(context.Background(), domain.AuthEventSignedOut, nil)

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, emitter.Len())
}

func TestEmitter_HandlerMayUnsubscribeDuringEmit(t *testing.T) {
	emitter := NewEmitter()
	secondCalled := false

	var unsubscribe func()
	unsubscribe = emitter.Subscribe(func(context.Context, domain.AuthEvent, *domain.Session) {
		unsubscribe()
	})
	emitter.Subscribe(func(context.Context, domain.AuthEvent, *domain.Session) {
		secondCalled = true
	})

	emitter.Emit(context.Background(), domain.AuthEventTokenRefreshed, nil)

	assert.True(t, secondCalled)
	assert.Equal(t, 1, emitter.Len())
}
