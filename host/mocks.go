package host

import (
	"context"
	"github.com/stretchr/testify/mock"
)

type TableMock struct {
	mock.Mock
}

func (o *TableMock) Name() string {
	return o.Called().String(0)
}

func (o *TableMock) Fields() []Field {
	return o.Called().Get(0).([]Field)
}

func (o *TableMock) FieldIfExists(name string) (Field, bool) {
	args := o.Called(name)
	return args.Get(0).(Field), args.Bool(1)
}

func (o *TableMock) Records(ctx context.Context) ([]Record, error) {
	args := o.Called(ctx)
	return args.Get(0).([]Record), args.Error(1)
}

func (o *TableMock) CanUpdateRecords() bool {
	return o.Called().Bool(0)
}

func (o *TableMock) UpdateRecord(ctx context.Context, recordID string, cells map[string]string) error {
	args := o.Called(ctx, recordID, cells)
	return args.Error(0)
}

// NewTableMock returns a mock answering Name with name.
func NewTableMock(name string) *TableMock {
	tableMock := &TableMock{}
	tableMock.On("Name").Return(name)
	return tableMock
}
