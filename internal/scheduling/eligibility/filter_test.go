package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/pkg/ptr"
)

func catalog() []domain.Service {
	return []domain.Service{
		{ID: "svc-cut", Name: "Стрижка", DurationMinutes: 30, Price: 1500},
		{ID: "svc-color", LegacyCode: ptr.Ptr("COL-7"), Name: "Окрашивание", DurationMinutes: 120, Price: 6000},
		{ID: "svc-manicure", LegacyCode: ptr.Ptr("MAN-2"), Name: "Маникюр", DurationMinutes: 60, Price: 2500},
	}
}

func TestEligibleServices_EmptyDenylistIsIdentity(t *testing.T) {
	all := catalog()
	pro := domain.Professional{ID: "pro-1"}

	got := EligibleServices(all, pro)

	assert.Equal(t, all, got)
}

func TestEligibleServices_ExcludesByPrimaryID(t *testing.T) {
	pro := domain.Professional{ID: "pro-1", ExcludedServiceIDs: []string{"svc-cut"}}

	got := EligibleServices(catalog(), pro)

	require.Len(t, got, 2)
	assert.Equal(t, "svc-color", got[0].ID)
	assert.Equal(t, "svc-manicure", got[1].ID)
}

func TestEligibleServices_ExcludesByLegacyCode(t *testing.T) {
	pro := domain.Professional{ID: "pro-1", ExcludedServiceIDs: []string{"COL-7"}}

	got := EligibleServices(catalog(), pro)

	require.Len(t, got, 2)
	for _, svc := range got {
		assert.NotEqual(t, "svc-color", svc.ID)
	}
}

func TestEligibleServices_NoExcludedKeyEverReturned(t *testing.T) {
	pro := domain.Professional{ID: "pro-1", ExcludedServiceIDs: []string{"svc-cut", "MAN-2", "unknown-id"}}

	got := EligibleServices(catalog(), pro)

	excluded := map[string]struct{}{}
	for _, id := range pro.ExcludedServiceIDs {
		excluded[id] = struct{}{}
	}
	for _, svc := range got {
		_, byID := excluded[svc.ID]
		assert.False(t, byID, "service %s excluded by id must not be returned", svc.ID)
		if svc.HasLegacyCode() {
			_, byCode := excluded[*svc.LegacyCode]
			assert.False(t, byCode, "service %s excluded by legacy code must not be returned", svc.ID)
		}
	}
	require.Len(t, got, 1)
	assert.Equal(t, "svc-color", got[0].ID)
}

func TestHasEligibleServices(t *testing.T) {
	all := catalog()

	assert.True(t, HasEligibleServices(domain.Professional{ID: "pro-1"}, all))

	blockedAll := domain.Professional{
		ID:                 "pro-2",
		ExcludedServiceIDs: []string{"svc-cut", "svc-color", "svc-manicure"},
	}
	assert.False(t, HasEligibleServices(blockedAll, all))
}

func TestIsEligible(t *testing.T) {
	svc := catalog()[1] // svc-color / COL-7

	assert.True(t, IsEligible(svc, domain.Professional{ID: "pro-1"}))
	assert.False(t, IsEligible(svc, domain.Professional{ID: "pro-1", ExcludedServiceIDs: []string{"svc-color"}}))
	assert.False(t, IsEligible(svc, domain.Professional{ID: "pro-1", ExcludedServiceIDs: []string{"COL-7"}}))
}
