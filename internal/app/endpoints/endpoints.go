package endpoints

type Endpoints struct {
	BookingEndpoint BookingEndpoint
}
