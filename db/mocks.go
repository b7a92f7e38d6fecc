package db

import (
	"github.com/gocql/gocql"
	"github.com/stretchr/testify/mock"
)

type SessionMock struct {
	mock.Mock
}

func (o *SessionMock) Execute(query string, options *QueryOptions, values ...interface{}) error {
	args := o.Called(query, options, values)
	return args.Error(0)
}

func (o *SessionMock) ExecuteIter(query string, options *QueryOptions, values ...interface{}) (ResultSet, error) {
	args := o.Called(query, options, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ResultSet), args.Error(1)
}

func (o *SessionMock) KeyspaceMetadata(keyspaceName string) (*gocql.KeyspaceMetadata, error) {
	args := o.Called(keyspaceName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gocql.KeyspaceMetadata), args.Error(1)
}

type ResultMock struct {
	mock.Mock
}

func NewResultMock(rows ...map[string]interface{}) *ResultMock {
	resultMock := &ResultMock{}
	resultMock.On("Values").Return(rows)
	resultMock.On("PageState").Return("")
	return resultMock
}

func (o *ResultMock) PageState() string {
	return o.Called().String(0)
}

func (o *ResultMock) Values() []map[string]interface{} {
	args := o.Called()
	return args.Get(0).([]map[string]interface{})
}

// booksColumns describes store.books, keyed by title.
var booksColumns = []struct {
	name     string
	kind     gocql.ColumnKind
	typeCode gocql.Type
}{
	{"title", gocql.ColumnPartitionKey, gocql.TypeText},
	{"pages", gocql.ColumnRegular, gocql.TypeInt},
	{"first_name", gocql.ColumnRegular, gocql.TypeText},
	{"last_name", gocql.ColumnRegular, gocql.TypeText},
	{"price", gocql.ColumnRegular, gocql.TypeDecimal},
}

// NewSessionMock returns a session for the keyspace "store", holding the single table "books".
func NewSessionMock() *SessionMock {
	books := &gocql.TableMetadata{
		Keyspace: "store",
		Name:     "books",
		Columns:  make(map[string]*gocql.ColumnMetadata, len(booksColumns)),
	}
	for _, c := range booksColumns {
		column := &gocql.ColumnMetadata{
			Keyspace: books.Keyspace,
			Table:    books.Name,
			Name:     c.name,
			Kind:     c.kind,
			Type:     gocql.NewNativeType(0, c.typeCode, ""),
		}
		books.Columns[c.name] = column
		switch c.kind {
		case gocql.ColumnPartitionKey:
			column.ComponentIndex = len(books.PartitionKey)
			books.PartitionKey = append(books.PartitionKey, column)
		case gocql.ColumnClusteringKey:
			column.ComponentIndex = len(books.ClusteringColumns)
			books.ClusteringColumns = append(books.ClusteringColumns, column)
		}
	}

	sessionMock := &SessionMock{}
	sessionMock.On("KeyspaceMetadata", "store").Return(&gocql.KeyspaceMetadata{
		Name:   "store",
		Tables: map[string]*gocql.TableMetadata{books.Name: books},
	}, nil)
	return sessionMock
}
