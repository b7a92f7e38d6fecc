package blocks

import (
	"fmt"
	"github.com/datastax/page-data-blocks/aggregate"
	"github.com/datastax/page-data-blocks/types"
	"github.com/mitchellh/mapstructure"
)

type DisplayType string

const (
	DisplayCount   DisplayType = "count"
	DisplaySummary DisplayType = "summary"
)

type NumberProps struct {
	Title       string             `mapstructure:"title" json:"title"`
	TableName   string             `mapstructure:"tableName" json:"tableName"`
	DisplayType DisplayType        `mapstructure:"displayType" json:"displayType" validate:"omitempty,oneof=count summary"`
	FieldName   string             `mapstructure:"fieldName" json:"fieldName"`
	SummaryType aggregate.StatKind `mapstructure:"summaryType" json:"summaryType" validate:"omitempty,oneof=sum average median min max range"`
}

type StatsCardProps struct {
	Title     string `mapstructure:"title" json:"title"`
	TableName string `mapstructure:"tableName" json:"tableName"`
	RecordID  string `mapstructure:"recordId" json:"recordId"`
	FieldName string `mapstructure:"fieldName" json:"fieldName"`
}

type HeroProps struct {
	Headline        string `mapstructure:"headline" json:"headline"`
	Subhead         string `mapstructure:"subhead" json:"subhead"`
	BackgroundURL   string `mapstructure:"backgroundUrl" json:"backgroundUrl,omitempty"`
	BackgroundColor string `mapstructure:"backgroundColor" json:"backgroundColor,omitempty"`
	Alignment       string `mapstructure:"alignment" json:"alignment,omitempty"`
	// DataRef, when set, supplies the value shown under the headline.
	DataRef *types.DataRef `mapstructure:"dataRef" json:"dataRef,omitempty"`
}

type TextProps struct {
	Content string `mapstructure:"content" json:"content"`
	Size    string `mapstructure:"size" json:"size"`
	Weight  string `mapstructure:"weight" json:"weight"`
	Align   string `mapstructure:"align" json:"align,omitempty"`
	Color   string `mapstructure:"color" json:"color,omitempty"`
	// DataRef, when set, replaces Content with the resolved value.
	DataRef *types.DataRef `mapstructure:"dataRef" json:"dataRef,omitempty"`
}

type ColumnsProps struct {
	ID           string `mapstructure:"id" json:"id"`
	Columns      int    `mapstructure:"columns" json:"columns"`
	Distribution string `mapstructure:"distribution" json:"distribution"`
	Gap          string `mapstructure:"gap" json:"gap,omitempty"`
}

// DecodeProps decodes layout block props into one of the props types. Numbers and booleans
// written as strings are accepted.
func DecodeProps(raw map[string]interface{}, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       types.FilterValueHook(),
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("unable to decode block props: %w", err)
	}
	return nil
}
