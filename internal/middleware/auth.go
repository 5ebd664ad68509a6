package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/service"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/pkg/auth"
)

const actorContextKey = "actor"

// JWTAuth resolves the bearer token into an Actor descriptor once per
// request. Handlers read the actor from the context instead of inspecting
// user entities.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := auth.ParseValidate(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			SetActor(c, service.Actor{
				UserID: claims.UserID,
				Admin:  claims.Admin,
				Worker: claims.Worker,
			})
			return next(c)
		}
	}
}

func SetActor(c echo.Context, actor service.Actor) {
	c.Set(actorContextKey, actor)
}

func ActorFromContext(c echo.Context) (service.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(service.Actor)
	return actor, ok
}
