// Package metrics defines and registers all custom Prometheus metrics for
// the portal. It is the single source of truth for metric names, labels, and
// help strings. Registration happens at import time via promauto; generic
// HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// --- Credential scoping ---

// CredentialMismatchTotal counts stored credentials discarded because their
// decoded role claim disagreed with the role the endpoint required.
// Labels:
//   - expected: the role the endpoint was classified into
//   - actual: the role claim found inside the stored token
var CredentialMismatchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credential_mismatch_total",
		Help:      "Stored credentials discarded due to a role-claim mismatch.",
	},
	[]string{"expected", "actual"},
)

// GuardRedirectsTotal counts navigations bounced by the route guard.
// Labels:
//   - reason: "unauthorized", "guest_violation", or "role_denied"
//   - role: the role resolved for the target route ("" when none)
var GuardRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Navigations redirected by the route guard, by reason and role.",
	},
	[]string{"reason", "role"},
)

// ImpersonationGrantsTotal counts credentials accepted from the one-shot
// ?token= query parameter (admin "login as" flow), by landing role.
var ImpersonationGrantsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "impersonation_grants_total",
		Help:      "Credentials stored from the login-as query parameter, by role.",
	},
	[]string{"role"},
)

// --- Upstream backend ---

// UpstreamRequestsTotal counts calls forwarded to the backend API.
// Labels:
//   - method: HTTP method
//   - status: numeric HTTP status of the backend response, or "error" when
//     the request never completed
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Requests forwarded to the backend API, by method and status.",
	},
	[]string{"method", "status"},
)

// UpstreamRequestDuration measures backend round-trip time.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of backend API round trips.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// --- Voice sessions ---

// VoiceTransitionsTotal counts voice state machine transitions, including
// rejected ones (to = "rejected").
var VoiceTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "voice_transitions_total",
		Help:      "Voice session state transitions, by source and target state.",
	},
	[]string{"from", "to"},
)
