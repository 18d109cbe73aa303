// Package metrics defines and registers all custom Prometheus metrics for
// the board API. It is the single source of truth for metric names, labels,
// and help strings. Registration happens at import time via promauto; the
// HTTP-level request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "board"

// SignInsTotal counts sign-in attempts by outcome.
// Label:
//   - result: "success", "invalid_password", "email_not_found", "throttled"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts issued tokens by kind.
// Label:
//   - kind: "access" or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens issued, by kind.",
	},
	[]string{"kind"},
)

// AuthFailuresTotal counts requests rejected by the authentication
// middleware before reaching a handler.
// Label:
//   - reason: short snake_case description of the defect
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the auth middleware.",
	},
	[]string{"reason"},
)

// ArticlesCreatedTotal counts successfully created articles.
var ArticlesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_created_total",
		Help:      "Total number of articles created.",
	},
)

// CommentsCreatedTotal counts successfully created comments.
var CommentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Total number of comments created.",
	},
)
