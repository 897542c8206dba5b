package metrics

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	stageTransitions  *prometheus.CounterVec
	notifications     *prometheus.CounterVec
	notificationPush  *prometheus.CounterVec
	scrapCascades     prometheus.Counter
	websocketSessions prometheus.Gauge
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		stageTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gearguard",
			Name:      "stage_transitions_total",
			Help:      "Maintenance request stage changes, by source and target stage.",
		}, []string{"from", "to"}),
		notifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gearguard",
			Name:      "notifications_total",
			Help:      "Notifications emitted, by type and result.",
		}, []string{"type", "result"}),
		notificationPush: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gearguard",
			Name:      "notification_push_total",
			Help:      "Websocket pushes of created notifications, by result.",
		}, []string{"result"}),
		scrapCascades: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "gearguard",
			Name:      "scrap_cascades_total",
			Help:      "Equipment scrapped as a side effect of a request reaching Scrap.",
		}),
		websocketSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "gearguard",
			Name:      "websocket_sessions",
			Help:      "Currently open websocket connections.",
		}),
	}
})

func StageTransition(from, to string) {
	metricsSingleton().stageTransitions.WithLabelValues(from, to).Inc()
}

// Notification records an emitted notification; result is "ok" or "error".
func Notification(notificationType, result string) {
	metricsSingleton().notifications.WithLabelValues(notificationType, result).Inc()
}

// NotificationPush records a websocket push; result is "delivered", "offline" or "error".
func NotificationPush(result string) {
	metricsSingleton().notificationPush.WithLabelValues(result).Inc()
}

func ScrapCascade() {
	metricsSingleton().scrapCascades.Inc()
}

func WebsocketOpened() { metricsSingleton().websocketSessions.Inc() }
func WebsocketClosed() { metricsSingleton().websocketSessions.Dec() }

// Register mounts the Prometheus scrape handler on path (default /metrics).
func Register(e *echo.Echo, path string) {
	if path == "" {
		path = "/metrics"
	}
	e.GET(path, echo.WrapHandler(promhttp.Handler()))
}

// Handler is exposed for tests that scrape without an echo instance.
func Handler() http.Handler {
	return promhttp.Handler()
}
