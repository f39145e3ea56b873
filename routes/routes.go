package routes

import (
	"github.com/julienschmidt/httprouter"

	"travelbook/middleware"
	"travelbook/ratelim"
	"travelbook/travelhandlers"
)

func AddTravelRoutes(router *httprouter.Router, h *travelhandlers.Handlers, rateLimiter *ratelim.RateLimiter) {
	auth := middleware.Authenticate
	write := func(next httprouter.Handle) httprouter.Handle {
		return rateLimiter.Limit(auth(next))
	}

	router.POST("/api/travels", write(h.CreateTravel))                       //Create a travel
	router.GET("/api/travels", auth(h.ListTravels))                          //Filter, sort and page travels
	router.GET("/api/travel-stats", auth(h.TravelStats))                     //Stats over the filtered set
	router.GET("/api/travels/:travelId", auth(h.GetTravel))                  //Fetch a travel
	router.PUT("/api/travels/:travelId", write(h.UpdateTravel))              //Partial update
	router.DELETE("/api/travels/:travelId", write(h.DeleteTravel))           //Delete a travel and everything nested
	router.GET("/api/travels/:travelId/export.pdf", auth(h.ExportTravelPDF)) //Printable travel
}

func AddItineraryRoutes(router *httprouter.Router, h *travelhandlers.Handlers, rateLimiter *ratelim.RateLimiter) {
	auth := middleware.Authenticate
	write := func(next httprouter.Handle) httprouter.Handle {
		return rateLimiter.Limit(auth(next))
	}
	const it = "/api/travels/:travelId/itineraries"

	router.GET(it, auth(h.ListItineraries))
	router.POST(it, write(h.AddItinerary))
	router.GET(it+"/:itineraryId", auth(h.GetItinerary))
	router.PUT(it+"/:itineraryId", write(h.UpdateItinerary))
	router.DELETE(it+"/:itineraryId", write(h.DeleteItinerary))

	router.GET(it+"/:itineraryId/bookings", auth(h.ListBookings))
	router.POST(it+"/:itineraryId/bookings", write(h.AddBooking))
	router.GET(it+"/:itineraryId/bookings/:bookingId", auth(h.GetBooking))
	router.PUT(it+"/:itineraryId/bookings/:bookingId", write(h.UpdateBooking))
	router.DELETE(it+"/:itineraryId/bookings/:bookingId", write(h.DeleteBooking))

	router.GET(it+"/:itineraryId/activities", auth(h.ListActivities))
	router.POST(it+"/:itineraryId/activities", write(h.AddActivity))
	router.GET(it+"/:itineraryId/activities/:activityId", auth(h.GetActivity))
	router.PUT(it+"/:itineraryId/activities/:activityId", write(h.UpdateActivity))
	router.DELETE(it+"/:itineraryId/activities/:activityId", write(h.DeleteActivity))
}

func AddDocumentRoutes(router *httprouter.Router, h *travelhandlers.Handlers, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/travels/:travelId/documents", rateLimiter.Limit(middleware.Authenticate(h.AddDocument)))
	router.GET("/api/travels/:travelId/documents", middleware.Authenticate(h.ListDocuments))
	router.GET("/api/travel-documents/stats", middleware.Authenticate(h.DocumentStats))
}
