package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// Notifier отправляет приглашения на предложенные встречи
type Notifier struct {
	dispatcher Dispatcher
	renderer   *Renderer
	metrics    MetricsRecorder
	timeout    time.Duration
	log        Logger
}

// New создает новый экземпляр Notifier
func New(dispatcher Dispatcher, renderer *Renderer, metrics MetricsRecorder, timeout time.Duration, log Logger) *Notifier {
	return &Notifier{
		dispatcher: dispatcher,
		renderer:   renderer,
		metrics:    metrics,
		timeout:    timeout,
		log:        log,
	}
}

// NotifyInvite рендерит и отправляет одно приглашение
// Ошибка доставки возвращается вызывающему и не повторяется здесь
func (n *Notifier) NotifyInvite(ctx context.Context, invite domain.InviteNotification) error {
	if invite.Address == "" {
		n.metrics.ObserveInviteDelivery(false)
		return fmt.Errorf("%w: invite=%d", ErrNoAddress, invite.InviteID)
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	body := n.renderer.Render(invite)

	if err := n.dispatcher.Dispatch(ctx, invite.Address, body); err != nil {
		n.metrics.ObserveInviteDelivery(false)
		n.log.Warn("Notifier: failed to deliver invite=%d to=%s: %v", invite.InviteID, invite.Address, err)
		return fmt.Errorf("%w: invite=%d: %v", ErrSend, invite.InviteID, err)
	}

	n.metrics.ObserveInviteDelivery(true)
	n.log.Info("Notifier: invite=%d delivered to=%s", invite.InviteID, invite.Address)
	return nil
}
