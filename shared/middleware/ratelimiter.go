package middleware

import (
	"net/http"

	"github.com/itchan-dev/feedback/shared/middleware/ratelimiter"
	"github.com/itchan-dev/feedback/shared/utils"
)

func RateLimit(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, r, err)
				return
			}
			if !rl.Allow(identity) {
				utils.WriteText(w, http.StatusTooManyRequests, "Rate limit exceeded, try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
