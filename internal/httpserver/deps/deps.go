package deps

import (
	"time"

	"github.com/dxwatch/dxwatch/internal/cache"
	"github.com/dxwatch/dxwatch/internal/logger"
	"github.com/dxwatch/dxwatch/internal/status"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Cache    *cache.SpotCache // parsed spot history, fed by the cluster manager
	Reporter *status.Reporter // aggregated connection + cache status
}
