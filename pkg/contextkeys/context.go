package contextkeys

// contextKey avoids collisions with other packages' context values.
type contextKey string

// DBContextKey holds the *gorm.DB handle injected per request.
const DBContextKey = contextKey("db")
