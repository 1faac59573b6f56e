package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/ijalalfrz/airline-booking-service/internal/app/dto"
	"github.com/ijalalfrz/airline-booking-service/internal/app/endpoints"
	httptransport "github.com/ijalalfrz/airline-booking-service/internal/pkg/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
func MakeHTTPRouter(endpts endpoints.Endpoints) *chi.Mux {
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(),
			httptransport.Recoverer(slog.Default()),
			render.SetContentType(render.ContentTypeJSON),
		)

		booking := endpts.BookingEndpoint

		router.Route("/bookings", func(router chi.Router) {
			router.Post("/", httptransport.MakeHandlerFunc(
				booking.BookTrip,
				httptransport.DecodeRequest[dto.BookTripRequest],
				httptransport.ResponseWithBody,
			))
			router.Post("/cancel", httptransport.MakeHandlerFunc(
				booking.CancelTrip,
				httptransport.DecodeRequest[dto.CancelTripRequest],
				httptransport.ResponseWithBody,
			))
		})

		router.Get("/customers/{customerID}", httptransport.MakeHandlerFunc(
			booking.GetCustomer,
			decodeGetCustomerRequest,
			httptransport.ResponseWithBody,
		))

		router.Route("/segments", func(router chi.Router) {
			router.Post("/filter", httptransport.MakeHandlerFunc(
				booking.FilterSegments,
				httptransport.DecodeRequest[dto.FilterSegmentsRequest],
				httptransport.ResponseWithBody,
			))
			router.Get("/{flightID}", httptransport.MakeHandlerFunc(
				booking.GetSegment,
				decodeGetSegmentRequest,
				httptransport.ResponseWithBody,
			))
		})

		router.Get("/stats", httptransport.MakeHandlerFunc(
			booking.Stats,
			httptransport.NoRequest,
			httptransport.ResponseWithBody,
		))
	})

	return router
}
