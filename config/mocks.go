package config

import (
	"github.com/datastax/page-data-blocks/log"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"time"
)

type ConfigMock struct {
	mock.Mock
}

func NewConfigMock() *ConfigMock {
	return &ConfigMock{}
}

func (o *ConfigMock) Default() *ConfigMock {
	o.On("SaveDelay").Return(10 * time.Millisecond)
	o.On("Permissions").Return(ReadRecords | UpdateRecords)
	o.On("Naming").Return(NewDefaultNaming())
	o.On("Logger").Return(log.NewZapLogger(zap.NewNop()))
	return o
}

func (o *ConfigMock) SaveDelay() time.Duration {
	args := o.Called()
	return args.Get(0).(time.Duration)
}

func (o *ConfigMock) Permissions() Permissions {
	args := o.Called()
	return args.Get(0).(Permissions)
}

func (o *ConfigMock) Naming() NamingConvention {
	args := o.Called()
	return args.Get(0).(NamingConvention)
}

func (o *ConfigMock) Logger() log.Logger {
	args := o.Called()
	return args.Get(0).(log.Logger)
}
