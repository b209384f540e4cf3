// Package autoload initializes the global logger from the LOG_* environment
// when blank-imported.
package autoload

import (
	configx "github.com/krishivaani/krishivaani/pkg/config"
	logx "github.com/krishivaani/krishivaani/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
