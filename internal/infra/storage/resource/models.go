package resource

import "github.com/m04kA/SMC-SalonScheduling/internal/domain"

// Filter фильтр выборки ресурсов
type Filter struct {
	Category   *domain.ServiceCategory // nil = любая категория
	ActiveOnly bool
	IDs        []int64 // пусто = любые
}
