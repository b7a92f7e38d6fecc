package layout

import (
	"context"
	"errors"
	"fmt"
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/log"
	"github.com/datastax/page-data-blocks/properties"
	"time"
)

// ErrNoLayoutRecord is returned when the layouts table has no record to keep the document in.
var ErrNoLayoutRecord = errors.New("no layout record found")

// Store keeps the document in the document field of the first record of the layouts table.
type Store struct {
	selection *properties.Selection
	saver     *Saver
	logger    log.Logger
}

func NewStore(selection *properties.Selection, saveDelay time.Duration, logger log.Logger) *Store {
	return &Store{
		selection: selection,
		saver:     NewSaver(selection.Table, saveDelay, logger),
		logger:    logger,
	}
}

func (s *Store) Selection() *properties.Selection {
	return s.selection
}

func (s *Store) Saver() *Saver {
	return s.saver
}

// Load returns the stored document. A cell that does not hold a valid document loads as the
// empty document.
func (s *Store) Load(ctx context.Context) (Document, error) {
	record, err := s.record(ctx)
	if err != nil {
		return Empty(), err
	}

	cell, err := record.CellValueAsString(s.selection.DocField)
	if err != nil {
		s.logger.Warn("unable to read layout document", "record", record.ID(), "error", err)
		return Empty(), nil
	}

	doc, err := Decode(cell)
	if err != nil {
		s.logger.Warn("invalid layout document, starting from an empty one",
			"record", record.ID(), "error", err)
	}
	return doc, nil
}

// Publish writes doc right away, discarding any pending save.
func (s *Store) Publish(ctx context.Context, doc Document) error {
	if !s.selection.Table.CanUpdateRecords() {
		s.logger.Error("no permission to update records", "table", s.selection.Table.Name())
		return host.ErrPermissionDenied
	}

	record, cells, err := s.prepare(ctx, doc)
	if err != nil {
		return err
	}

	if err := s.saver.WriteNow(ctx, record.ID(), cells); err != nil {
		if errors.Is(err, host.ErrPermissionDenied) || errors.Is(err, ErrSaverClosed) {
			return err
		}
		return fmt.Errorf("unable to publish layout: %w", err)
	}
	s.logger.Info("layout published", "record", record.ID())
	return nil
}

// Save schedules doc to be written once editing pauses.
func (s *Store) Save(ctx context.Context, doc Document) error {
	record, cells, err := s.prepare(ctx, doc)
	if err != nil {
		return err
	}
	return s.saver.Schedule(record.ID(), cells)
}

// Close writes any pending save.
func (s *Store) Close(ctx context.Context) error {
	return s.saver.Close(ctx)
}

func (s *Store) prepare(ctx context.Context, doc Document) (host.Record, map[string]string, error) {
	record, err := s.record(ctx)
	if err != nil {
		return nil, nil, err
	}
	encoded, err := Encode(doc)
	if err != nil {
		return nil, nil, err
	}
	return record, map[string]string{s.selection.DocField.Name: encoded}, nil
}

func (s *Store) record(ctx context.Context) (host.Record, error) {
	records, err := s.selection.Table.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to read layouts table: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoLayoutRecord
	}
	return records[0], nil
}
