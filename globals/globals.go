package globals

var (
	// JwtSecret is set from JWT_SECRET at startup.
	JwtSecret = []byte("")
)

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"
const TwinIDKey ContextKey = "twinId"
