package echoutil

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// LogHandlerFunc logs each request on arrival and its response on the way
// out, with the latency and the handler error (if any).
func LogHandlerFunc(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		method := c.Request().Method
		path := c.Request().URL
		start := time.Now()
		c.Logger().Infof("< request @[%s] %s %s", start, method, path)

		var err error
		defer func() {
			c.Logger().Infof(
				"> response status = %d (for request @[%s] %s %s) in %v / error = %+v",
				c.Response().Status, start, method, path, time.Since(start), err,
			)
		}()

		err = next(c)
		return err
	}
}

// SetLevel maps a loglevel expression to echo's logger level.
// Unknown expressions fall back to warn, loudly.
func SetLevel(e *echo.Echo, loglevel string) {
	switch strings.ToLower(loglevel) {
	case "debug":
		e.Logger.SetLevel(log.DEBUG)
	case "info":
		e.Logger.SetLevel(log.INFO)
	case "warn", "":
		e.Logger.SetLevel(log.WARN)
	case "error":
		e.Logger.SetLevel(log.ERROR)
	case "off":
		e.Logger.SetLevel(log.OFF)
	default:
		e.Logger.SetLevel(log.WARN)
		e.Logger.Warnf("unknown loglevel: %s . fall-backed to warn", loglevel)
	}
}
