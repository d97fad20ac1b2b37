package config

import (
	"github.com/knadh/koanf/providers/confmap"

	"github.com/julianstephens/fitlife/internal/constants"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"user_id":  constants.DefaultUserID,
		"database": constants.DefaultDatabase,
		"timezone": "Local",
		"debug":    false,
		"theme":    "charm",
		"notifications": map[string]interface{}{
			"enabled":     true,
			"backend":     constants.NotifyBackendTray,
			"duration_ms": constants.NotificationDurationMs,
		},
		"daemon": map[string]interface{}{
			"schedule":     constants.DefaultDaemonSchedule,
			"metrics_addr": constants.DefaultMetricsAddr,
		},
		"swipe": map[string]interface{}{
			"reveal_fraction": constants.DefaultSwipeRevealFraction,
			"delete_fraction": constants.DefaultSwipeDeleteFraction,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return constants.DefaultConfigFile
}
