package services

import "github.com/renato0307/maint/internal/domain"

// AccommodationResource is the remote side of the accommodation collection
type AccommodationResource = ResourceService[domain.Accommodation, domain.CreateAccommodationData, domain.UpdateAccommodationData]

// AccommodationStore is the local accommodation collection with status views
type AccommodationStore struct {
	*ResourceStore[domain.Accommodation, domain.CreateAccommodationData, domain.UpdateAccommodationData]
}

// NewAccommodationStore creates an empty AccommodationStore
func NewAccommodationStore(service AccommodationResource) *AccommodationStore {
	return &AccommodationStore{
		ResourceStore: NewResourceStore[domain.Accommodation, domain.CreateAccommodationData, domain.UpdateAccommodationData]("accommodations", service),
	}
}

func accommodationWithStatus(status domain.AccommodationStatus) func(domain.Accommodation) bool {
	return func(a domain.Accommodation) bool { return a.Status == status }
}

func (s *AccommodationStore) Active() []domain.Accommodation {
	return s.Filter(accommodationWithStatus(domain.AccommodationActive))
}

func (s *AccommodationStore) Inactive() []domain.Accommodation {
	return s.Filter(accommodationWithStatus(domain.AccommodationInactive))
}

func (s *AccommodationStore) TotalCount() int {
	return s.Count()
}

func (s *AccommodationStore) ActiveCount() int {
	return s.CountWhere(accommodationWithStatus(domain.AccommodationActive))
}

func (s *AccommodationStore) InactiveCount() int {
	return s.CountWhere(accommodationWithStatus(domain.AccommodationInactive))
}
