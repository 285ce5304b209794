package services

import "cabsy/internal/repositories"

var (
	_ UserStore    = (*repositories.UserRepository)(nil)
	_ DriverStore  = (*repositories.DriverRepository)(nil)
	_ CabStore     = (*repositories.CabRepository)(nil)
	_ RideStore    = (*repositories.RideRepository)(nil)
	_ PaymentStore = (*repositories.PaymentRepository)(nil)
	_ RatingStore  = (*repositories.RatingRepository)(nil)

	_ UserStore    = (*fakeUsers)(nil)
	_ DriverStore  = (*fakeDrivers)(nil)
	_ CabStore     = (*fakeCabs)(nil)
	_ RideStore    = (*fakeRides)(nil)
	_ PaymentStore = (*fakePayments)(nil)
	_ RatingStore  = (*fakeRatings)(nil)
)
