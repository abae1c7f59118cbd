package eligibility

import "github.com/m04kA/SLN-SchedulingService/internal/domain"

// EligibleServices возвращает подмножество каталога, которое профессионал
// может выполнять. Услуга исключается, если в денилисте профессионала
// встречается ее основной идентификатор ИЛИ legacy-код: каталог исторически
// несет две схемы идентификаторов, и денилист может ссылаться на любую.
// Пустой денилист возвращает каталог без изменений.
func EligibleServices(allServices []domain.Service, professional domain.Professional) []domain.Service {
	if len(professional.ExcludedServiceIDs) == 0 {
		return allServices
	}

	excluded := make(map[string]struct{}, len(professional.ExcludedServiceIDs))
	for _, id := range professional.ExcludedServiceIDs {
		excluded[id] = struct{}{}
	}

	eligible := make([]domain.Service, 0, len(allServices))
	for _, svc := range allServices {
		if _, ok := excluded[svc.ID]; ok {
			continue
		}
		if svc.HasLegacyCode() {
			if _, ok := excluded[*svc.LegacyCode]; ok {
				continue
			}
		}
		eligible = append(eligible, svc)
	}

	return eligible
}

// HasEligibleServices проверяет, остается ли у профессионала хотя бы одна
// доступная услуга. Используется для включения/отключения выбора в UI.
func HasEligibleServices(professional domain.Professional, allServices []domain.Service) bool {
	return len(EligibleServices(allServices, professional)) > 0
}

// IsEligible проверяет одну услугу против денилиста профессионала
func IsEligible(svc domain.Service, professional domain.Professional) bool {
	for _, id := range professional.ExcludedServiceIDs {
		if id == svc.ID {
			return false
		}
		if svc.HasLegacyCode() && id == *svc.LegacyCode {
			return false
		}
	}
	return true
}
