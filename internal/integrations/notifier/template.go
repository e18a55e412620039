package notifier

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// Renderer подставляет данные приглашения в шаблон сообщения
// Поддерживаемые плейсхолдеры: {name}, {title}, {date}, {time}
type Renderer struct {
	template string
	location *time.Location
}

// NewRenderer создает рендерер; дата и время выводятся в часовом поясе салона
func NewRenderer(template string, location *time.Location) *Renderer {
	if location == nil {
		location = time.Local
	}
	return &Renderer{template: template, location: location}
}

// Render возвращает текст сообщения
func (r *Renderer) Render(n domain.InviteNotification) string {
	start := n.StartAt.In(r.location)

	return strings.NewReplacer(
		"{name}", n.CustomerName,
		"{title}", n.Title,
		"{date}", start.Format(domain.DateFormat),
		"{time}", start.Format(domain.TimeFormat),
	).Replace(r.template)
}
