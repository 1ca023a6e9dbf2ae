package app

import (
	"github.com/rs/zerolog/log"
)

// softFail is the gallery's error policy: an upstream failure is logged and
// replaced by the empty result, never returned to the caller.
func softFail[T any](op, target string, result T, err error, empty T) T {
	if err == nil {
		return result
	}
	softFailures.WithLabelValues(op).Inc()
	log.Error().Err(err).Str("op", op).Str("target", target).Msg("gallery call failed, returning empty result")
	return empty
}
