package middleware

import (
	"context"
	"net/http"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/api/handlers"
)

// HeaderCitizenNIC заголовок с NIC аутентифицированного гражданина,
// проставляется API-шлюзом
const HeaderCitizenNIC = "X-Citizen-NIC"

type contextKey string

const citizenNICKey contextKey = "citizen_nic"

// Auth проверяет наличие заголовка X-Citizen-NIC и кладет NIC в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nic := r.Header.Get(HeaderCitizenNIC)
		if nic == "" {
			handlers.RespondUnauthorized(w, "missing "+HeaderCitizenNIC+" header")
			return
		}

		ctx := context.WithValue(r.Context(), citizenNICKey, nic)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CitizenNIC извлекает NIC гражданина из контекста запроса
func CitizenNIC(ctx context.Context) (string, bool) {
	nic, ok := ctx.Value(citizenNICKey).(string)
	return nic, ok
}
