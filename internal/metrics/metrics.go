package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ProofsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "battleship_proofs_generated_total",
			Help: "Total proofs produced by the proof oracle",
		},
		[]string{"circuit"},
	)
	RuleViolations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "battleship_rule_violations_total",
			Help: "Total protocol runs aborted by a violated rule",
		},
		[]string{"circuit", "rule"},
	)
	VerificationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "battleship_verification_failures_total",
			Help: "Total proofs that did not check against their verification key",
		},
		[]string{"circuit"},
	)
)

func init() {
	prometheus.MustRegister(ProofsGenerated)
	prometheus.MustRegister(RuleViolations)
	prometheus.MustRegister(VerificationFailures)
}
