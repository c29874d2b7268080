package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/stripe/stripe-go/v78"

	"elysian/internal/api"
	"elysian/internal/auth"
	"elysian/internal/repository"
	"elysian/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	roomRepo := repository.NewRoomRepository(database)
	bookingRepo := repository.NewBookingRepository(database)
	packageRepo := repository.NewPackageRepository(database)
	checkoutRepo := repository.NewCheckoutRepository(database)
	attendanceRepo := repository.NewAttendanceRepository(database)
	jobRepo := repository.NewJobRepository(database)
	authRepo := repository.NewAuthRepository(database)

	sender := service.NewSenderService()
	stripeSvc := service.NewStripeService()
	jobSvc := service.NewJobService(jobRepo)
	roomSvc := service.NewRoomService(roomRepo, bookingRepo)
	bookingSvc := service.NewBookingService(bookingRepo, roomRepo, sender, jobSvc)
	packageSvc := service.NewPackageService(packageRepo, roomRepo, bookingRepo, sender, jobSvc)
	checkoutSvc := service.NewCheckoutService(checkoutRepo, bookingRepo, packageRepo, roomRepo, stripeSvc, sender)
	attendanceSvc := service.NewAttendanceService(attendanceRepo)
	authSvc := service.NewAuthService(authRepo)

	roomHandler := api.NewRoomHandler(roomSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc, packageSvc)
	packageHandler := api.NewPackageHandler(packageSvc)
	checkoutHandler := api.NewCheckoutHandler(checkoutSvc)
	attendanceHandler := api.NewAttendanceHandler(attendanceSvc)
	authHandler := api.NewAuthHandler(authSvc)
	stripeHandler := api.NewStripeWebhookHandler(os.Getenv("STRIPE_WEBHOOK_SECRET"), checkoutSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/availability", roomHandler.CheckAvailability).Methods("POST")
	r.HandleFunc("/api/rooms", roomHandler.ListRooms).Methods("GET")
	r.HandleFunc("/api/rooms/test", roomHandler.ListRooms).Methods("GET")
	r.HandleFunc("/api/packages", packageHandler.ListPackages).Methods("GET")
	r.HandleFunc("/api/bookings/guest", bookingHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/bookings/{booking_id}", bookingHandler.GetBooking).Methods("GET")
	r.HandleFunc("/api/packages/book/guest", packageHandler.CreatePackageBooking).Methods("POST")
	r.HandleFunc("/api/stripe/webhook", stripeHandler.HandleWebhook).Methods("POST")

	// Back-office endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/auth/register", authHandler.CreateAdmin).Methods("POST")

	admin.HandleFunc("/rooms", roomHandler.CreateRoom).Methods("POST")
	admin.HandleFunc("/rooms/{id}", roomHandler.UpdateRoom).Methods("PUT")
	admin.HandleFunc("/rooms/{id}", roomHandler.DeleteRoom).Methods("DELETE")

	admin.HandleFunc("/bookings", bookingHandler.CreateBooking).Methods("POST")
	admin.HandleFunc("/bookings", bookingHandler.ListBookings).Methods("GET")
	admin.HandleFunc("/bookings/{booking_id}/check-in", bookingHandler.CheckIn).Methods("PUT")
	admin.HandleFunc("/bookings/{booking_id}/extend", bookingHandler.ExtendStay).Methods("PUT")
	admin.HandleFunc("/bookings/{booking_id}", bookingHandler.CancelBooking).Methods("DELETE")

	admin.HandleFunc("/packages", packageHandler.CreatePackage).Methods("POST")
	admin.HandleFunc("/packages/book", packageHandler.CreatePackageBooking).Methods("POST")
	admin.HandleFunc("/packages/bookingsall", packageHandler.ListPackageBookings).Methods("GET")
	admin.HandleFunc("/packages/{id}", packageHandler.GetPackage).Methods("GET")
	admin.HandleFunc("/packages/{id}", packageHandler.DeletePackage).Methods("DELETE")

	admin.HandleFunc("/bill/active-rooms", checkoutHandler.ActiveRooms).Methods("GET")
	admin.HandleFunc("/bill/checkouts", checkoutHandler.ListCheckouts).Methods("GET")
	admin.HandleFunc("/bill/checkouts/{id}/details", checkoutHandler.GetCheckout).Methods("GET")
	admin.HandleFunc("/bill/checkout/{room_number}", checkoutHandler.Checkout).Methods("POST")
	admin.HandleFunc("/bill/share/{room_number}", checkoutHandler.ShareBill).Methods("POST")
	admin.HandleFunc("/bill/{room_number}", checkoutHandler.GetBill).Methods("GET")

	admin.HandleFunc("/employees", attendanceHandler.ListEmployees).Methods("GET")
	admin.HandleFunc("/attendance/clock-in", attendanceHandler.ClockIn).Methods("POST")
	admin.HandleFunc("/attendance/clock-out", attendanceHandler.ClockOut).Methods("POST")
	admin.HandleFunc("/attendance/work-logs/{employee_id}", attendanceHandler.ListLogs).Methods("GET")
	admin.HandleFunc("/attendance/monthly-report/{employee_id}", attendanceHandler.MonthlyReport).Methods("GET")

	c := cron.New()
	if _, err := c.AddFunc("@hourly", func() {
		if err := jobSvc.RefreshRoomStatuses(); err != nil {
			log.Printf("%v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule room status job: %v", err)
	}
	if _, err := c.AddFunc("10 0 * * *", func() {
		if err := jobSvc.ExpireNoShows(); err != nil {
			log.Printf("%v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule booking sweep job: %v", err)
	}
	c.Start()
	defer c.Stop()

	corsHandler := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{os.Getenv("FRONTEND_URL"), "http://localhost:3000"}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "Stripe-Signature"}),
	)(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
