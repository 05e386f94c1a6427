package context

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const principalKey = "credguard.principal"

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID     uuid.UUID
	Username   string
	Privileges []string
}

// SetPrincipal stores the authenticated caller in echo.Context.
func SetPrincipal(c echo.Context, p Principal) {
	c.Set(principalKey, p)
}

// GetPrincipal returns the authenticated caller, if any.
func GetPrincipal(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	if !ok || p.Username == "" {
		return Principal{}, false
	}

	return p, true
}
