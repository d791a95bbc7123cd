package handlers

// AppHandlers holds all handlers of the application.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	UserHandler     *UserHandler
	CustomerHandler *CustomerHandler
	LeadHandler     *LeadHandler
	HealthHandler   *HealthHandler
}
