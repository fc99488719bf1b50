package qpay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "qpay_client_requests_total",
	Help: "Outgoing qPay requests by endpoint path and result.",
}, []string{"path", "result"})
