package scoringhandlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// Routes mounts the scoring HTTP surface. Mutation routes share one IP rate
// limiter; scoreboard reads are unthrottled since devices poll them.
func (h *ScoringHandlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(CorrelationMiddleware)

	limiter := NewIPRateLimiter(rate.Limit(5), 10)

	r.Route("/games", func(r chi.Router) {
		r.Get("/{gameID}/scoreboard", h.GetScoreboard)

		r.Group(func(r chi.Router) {
			r.Use(RateLimitMiddleware(limiter))

			r.Post("/", h.CreateGame)
			r.Put("/{gameID}/players/{playerID}/scores/{hole}", h.SetScore)
			r.Delete("/{gameID}/players/{playerID}/scores/{hole}", h.ClearScore)

			r.Post("/{gameID}/holes/{hole}/junk", h.TogglePlayerJunk)
			r.Post("/{gameID}/holes/{hole}/multipliers", h.ToggleTeamMultiplier)
			r.Post("/{gameID}/holes/{hole}/custom-multiplier", h.SetCustomMultiplier)
			r.Post("/{gameID}/holes/{hole}/tee-flip", h.RecordTeeFlip)

			r.Put("/{gameID}/holes/{hole}/options", h.SetHoleOption)
			r.Delete("/{gameID}/holes/{hole}/options/{optionName}", h.ClearHoleOption)
			r.Put("/{gameID}/options/{optionName}", h.SetGameOption)
			r.Post("/{gameID}/spec/reset", h.ResetSpec)
		})
	})
	return r
}
