package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"studorgCPT/cmd/app"
	"studorgCPT/internal/config"
	handlers "studorgCPT/internal/handler"
	"studorgCPT/internal/middleware"
	"studorgCPT/internal/models"
)

// newRouter собирает таблицу маршрутов. Статические сегменты
// регистрируются раньше параметризованных, иначе /my уйдет в {id}.
func newRouter(handler *handlers.Handlers, authMw, contentRoles, adminRoles middleware.Middleware) *mux.Router {
	secured := func(h http.HandlerFunc) http.Handler { return authMw(h) }
	officer := func(h http.HandlerFunc) http.Handler { return authMw(contentRoles(h)) }
	admin := func(h http.HandlerFunc) http.Handler { return authMw(adminRoles(h)) }

	r := mux.NewRouter()

	r.HandleFunc("/", handlers.HomeHandler).Methods("GET")
	r.HandleFunc("/health", handlers.HealthHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", handler.Register).Methods("POST")
	api.HandleFunc("/auth/login", handler.Login).Methods("POST")
	api.HandleFunc("/auth/logout", handler.Logout).Methods("POST")
	api.Handle("/auth/me", secured(handler.Me)).Methods("GET")
	api.Handle("/auth/change-password", secured(handler.ChangePassword)).Methods("PUT")
	api.Handle("/auth/reset-password/{id}", admin(handler.ResetPassword)).Methods("PUT")

	api.HandleFunc("/announcements", handler.GetAnnouncements).Methods("GET")
	api.Handle("/announcements/my/announcements", secured(handler.GetMyAnnouncements)).Methods("GET")
	api.HandleFunc("/announcements/{id}", handler.GetAnnouncement).Methods("GET")
	api.Handle("/announcements", officer(handler.CreateAnnouncement)).Methods("POST")
	api.Handle("/announcements/{id}", officer(handler.UpdateAnnouncement)).Methods("PATCH")
	api.Handle("/announcements/{id}", officer(handler.DeleteAnnouncement)).Methods("DELETE")
	api.Handle("/announcements/{id}/publish", officer(handler.PublishAnnouncement)).Methods("PATCH")

	api.HandleFunc("/events", handler.GetEvents).Methods("GET")
	api.Handle("/events/my/events", secured(handler.GetMyEvents)).Methods("GET")
	api.HandleFunc("/events/{id}", handler.GetEvent).Methods("GET")
	api.Handle("/events", officer(handler.CreateEvent)).Methods("POST")
	api.Handle("/events/{id}", officer(handler.UpdateEvent)).Methods("PATCH")
	api.Handle("/events/{id}", officer(handler.DeleteEvent)).Methods("DELETE")
	api.Handle("/events/{id}/publish", officer(handler.PublishEvent)).Methods("PATCH")

	api.HandleFunc("/merchandise", handler.GetMerchandise).Methods("GET")
	api.HandleFunc("/merchandise/{id}", handler.GetMerchandiseItem).Methods("GET")
	api.Handle("/merchandise", officer(handler.CreateMerchandise)).Methods("POST")
	api.Handle("/merchandise/{id}", officer(handler.UpdateMerchandise)).Methods("PATCH")
	api.Handle("/merchandise/{id}", officer(handler.DeleteMerchandise)).Methods("DELETE")

	api.HandleFunc("/testimonials", handler.GetTestimonials).Methods("GET")
	api.HandleFunc("/testimonials/{id}", handler.GetTestimonial).Methods("GET")
	api.Handle("/testimonials", officer(handler.CreateTestimonial)).Methods("POST")
	api.Handle("/testimonials/{id}", officer(handler.UpdateTestimonial)).Methods("PATCH")
	api.Handle("/testimonials/{id}", officer(handler.DeleteTestimonial)).Methods("DELETE")
	api.Handle("/testimonials/{id}/toggle", officer(handler.ToggleTestimonial)).Methods("PATCH")

	api.Handle("/users", admin(handler.GetUsers)).Methods("GET")
	api.Handle("/users", admin(handler.Register)).Methods("POST")
	api.Handle("/users/search", admin(handler.SearchUsers)).Methods("GET")
	api.Handle("/users/stats", admin(handler.UserStats)).Methods("GET")
	api.Handle("/users/bulk-upload", admin(handler.BulkUploadUsers)).Methods("POST")
	api.Handle("/users/{id}", secured(handler.GetUserByID)).Methods("GET")
	api.Handle("/users/{id}", secured(handler.UpdateUser)).Methods("PATCH")
	api.Handle("/users/{id}/toggle-status", admin(handler.ToggleUserStatus)).Methods("PATCH")
	api.Handle("/users/{id}", admin(handler.DeleteUser)).Methods("DELETE")

	return r
}

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	authMw := middleware.Auth(cfg, repo.User)
	contentRoles := middleware.RequireRoles(
		models.RoleCouncilOfficer,
		models.RoleCommitteeOfficer,
		models.RoleFaculty,
	)
	adminRoles := middleware.RequireRoles(
		models.RoleCouncilOfficer,
		models.RoleFaculty,
	)

	// setting up routes
	r := newRouter(handler, authMw, contentRoles, adminRoles)

	handlerChain := middleware.Chain(
		r,
		middleware.Logging,
		middleware.CORS,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
