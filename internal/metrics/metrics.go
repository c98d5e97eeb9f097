package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	WebhooksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "jira_agent_webhooks_total", Help: "Webhook requests by flow and outcome"},
		[]string{"flow", "outcome"},
	)
	IssuesCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "jira_agent_issues_created_total", Help: "GitHub issues created by flow"},
		[]string{"flow"},
	)
	AdvisoryFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "jira_agent_advisory_failures_total", Help: "Best-effort Jira step failures by step"},
		[]string{"step"},
	)
)

func init() {
	prometheus.MustRegister(WebhooksTotal, IssuesCreatedTotal, AdvisoryFailuresTotal)
}
