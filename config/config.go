package config

import (
	"github.com/datastax/page-data-blocks/log"
	"time"
)

type Config interface {
	SaveDelay() time.Duration
	Permissions() Permissions
	Naming() NamingConvention
	Logger() log.Logger
}
