package sessionstore

import (
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/workflow"
)

// Session одна workflow-сессия подбора бронирования.
// Сессии короткоживущие и TTL-ограниченные: истекшая сессия эквивалентна
// отмененной. Каждая сессия владеет своей машиной состояний эксклюзивно.
type Session struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	SiteID    string            `json:"siteId"`
	Machine   *workflow.Machine `json:"machine"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
