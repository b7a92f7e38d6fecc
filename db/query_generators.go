package db

import (
	"errors"
	"fmt"
	"github.com/gocql/gocql"
	"strings"
)

type SelectInfo struct {
	Keyspace string
	Table    string
}

type UpdateInfo struct {
	Keyspace    string
	Table       *gocql.TableMetadata
	Columns     []string
	QueryParams []interface{}
	IfExists    bool
}

// Select reads every row of a table
func (db *Db) Select(info *SelectInfo, options *QueryOptions) (ResultSet, error) {
	query := fmt.Sprintf("SELECT * FROM %s.%s", quoteIdentifier(info.Keyspace), quoteIdentifier(info.Table))
	return db.session.ExecuteIter(query, options)
}

// Update sets the regular columns of a single row. Key columns in info.Columns select the row.
// It returns whether the update was applied, which is always true unless IfExists is set.
func (db *Db) Update(info *UpdateInfo, options *QueryOptions) (bool, error) {
	// We have to differentiate between WHERE and SET clauses
	setClause := make([]string, 0, len(info.Columns))
	whereClause := make([]string, 0, len(info.Columns))
	setParameters := make([]interface{}, 0, len(info.QueryParams))
	whereParameters := make([]interface{}, 0, len(info.QueryParams))

	keys := make(map[string]bool)
	for _, c := range info.Table.PartitionKey {
		keys[c.Name] = true
	}
	for _, c := range info.Table.ClusteringColumns {
		keys[c.Name] = true
	}

	for i, columnName := range info.Columns {
		if keys[columnName] {
			whereClause = append(whereClause, fmt.Sprintf("%s = ?", quoteIdentifier(columnName)))
			whereParameters = append(whereParameters, info.QueryParams[i])
		} else {
			setClause = append(setClause, fmt.Sprintf("%s = ?", quoteIdentifier(columnName)))
			setParameters = append(setParameters, info.QueryParams[i])
		}
	}

	if len(whereClause) != len(keys) {
		return false, errors.New("partition and clustering keys must be included in query")
	}
	if len(setClause) == 0 {
		return false, errors.New("query must include columns to update")
	}

	queryParameters := append(setParameters, whereParameters...)

	query := fmt.Sprintf("UPDATE %s.%s SET %s WHERE %s",
		quoteIdentifier(info.Keyspace), quoteIdentifier(info.Table.Name),
		strings.Join(setClause, ", "), strings.Join(whereClause, " AND "))

	if !info.IfExists {
		err := db.session.Execute(query, options, queryParameters...)
		return err == nil, err
	}

	query += " IF EXISTS"
	result, err := db.session.ExecuteIter(query, options, queryParameters...)
	if err != nil {
		return false, err
	}
	return applied(result), nil
}

func applied(result ResultSet) bool {
	values := result.Values()
	if len(values) == 0 {
		return false
	}
	switch value := values[0]["[applied]"].(type) {
	case bool:
		return value
	case *bool:
		return value != nil && *value
	}
	return false
}

func quoteIdentifier(name string) string {
	return `"` + strings.Replace(name, `"`, `""`, -1) + `"`
}
