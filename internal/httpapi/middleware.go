package httpapi

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// APIKeyAuth пропускает запросы с ключом "Authorization: Api-Key <key>" или X-API-KEY.
// С пустым ключом проверка выключена.
func APIKeyAuth(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if key == "" {
			return next
		}
		return func(c echo.Context) error {
			if !validKey(c.Request(), key) {
				return c.JSON(http.StatusUnauthorized, errorBody{Detail: "Invalid API key"})
			}
			return next(c)
		}
	}
}

func validKey(r *http.Request, key string) bool {
	got := r.Header.Get("X-API-KEY")
	if auth := r.Header.Get("Authorization"); got == "" && strings.HasPrefix(auth, "Api-Key ") {
		got = strings.TrimSpace(strings.TrimPrefix(auth, "Api-Key "))
	}
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(key)) == 1
}
