package meeting

import "github.com/m04kA/SMC-SalonScheduling/internal/domain"

// InvitesFilter фильтр выборки приглашений встречи
type InvitesFilter struct {
	SourceCategoryID *int64               // только приглашения, добавленные из категории
	Statuses         []domain.InviteStatus // пусто = любые
}
