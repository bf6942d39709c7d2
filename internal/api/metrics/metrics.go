// Package metrics defines and registers the custom Prometheus metrics for
// the member API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "memberhub"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// MembersCreatedTotal counts successful member registrations.
var MembersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "members_created_total",
		Help:      "Total number of members created.",
	},
)

// MemberMutationsTotal counts member mutations.
// Labels:
//   - op: "update", "delete", or "set_roles"
//   - result: "ok" or "error"
var MemberMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "member_mutations_total",
		Help:      "Total number of member mutations, by operation and result.",
	},
	[]string{"op", "result"},
)
