package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"FINDME_BACK-END/internal/config"
	"FINDME_BACK-END/internal/handlers"
	"FINDME_BACK-END/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	forgotPasswordHandler *handlers.ForgotPasswordHandler,
	profileHandler *handlers.ProfileHandler,
	peopleHandler *handlers.PeopleHandler,
	locationHandler *handlers.LocationHandler,
	googleAuthHandler *handlers.GoogleAuthHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Health check routes
	http.HandleFunc("/healthz", healthHandler.Livez)
	http.HandleFunc("/livez", healthHandler.Livez)
	http.HandleFunc("/readyz", healthHandler.Readyz)

	// Registration and login
	http.HandleFunc("/api/register/verify", authHandler.RequestVerification)
	http.HandleFunc("/api/register", authHandler.Register)
	http.HandleFunc("/api/login", authHandler.Login)

	// Password recovery
	http.HandleFunc("/api/forgot-password", forgotPasswordHandler.ForgotPassword)
	http.HandleFunc("/api/verify-otp", forgotPasswordHandler.VerifyOTP)
	http.HandleFunc("/api/reset-password", forgotPasswordHandler.ResetPassword)

	// Google OAuth
	http.HandleFunc("/api/auth/google/login", googleAuthHandler.GoogleLogin)
	http.HandleFunc("/api/auth/google/callback", googleAuthHandler.GoogleCallback)

	// Authenticated routes
	http.HandleFunc("/api/user/profile", middleware.AuthMiddleware(profileHandler.Handle, &cfg.JWT))
	http.HandleFunc("/api/people", middleware.AuthMiddleware(peopleHandler.Handle, &cfg.JWT))
	http.HandleFunc("/api/people/", middleware.AuthMiddleware(peopleHandler.HandleByID, &cfg.JWT))
	http.HandleFunc("/api/location/update", middleware.AuthMiddleware(locationHandler.Update, &cfg.JWT))

	// Swagger documentation
	http.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Uploaded images are served straight from disk when the disk driver
	// is active; the s3 driver hands out absolute URLs instead.
	if cfg.Storage.Driver == "disk" {
		http.Handle("/public/uploads/",
			http.StripPrefix("/public/uploads/", http.FileServer(http.Dir(cfg.Storage.UploadDir))))
	}

	// Root route
	http.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("FindMe backend is running."))
}
