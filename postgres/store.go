package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/docstore"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var _ docstore.Store = (*DocumentStore)(nil)

// documentRow is a single document of any collection.
type documentRow struct {
	ID         int64 `gorm:"primaryKey"`
	Collection string
	Body       datatypes.JSON
	CreatedAt  time.Time
}

func (documentRow) TableName() string { return "documents" }

func (row documentRow) document() (roadtrip.Document, error) {
	doc := make(roadtrip.Document)
	if err := json.Unmarshal(row.Body, &doc); err != nil {
		return nil, fmt.Errorf("%w: document %d: %s", roadtrip.ErrBadFormat, row.ID, err)
	}

	if _, ok := doc[roadtrip.IDField]; !ok {
		doc[roadtrip.IDField] = strconv.FormatInt(row.ID, 10)
	}

	return doc, nil
}

// A DocumentStore reads and writes documents in the documents table.
type DocumentStore struct {
	db *gorm.DB
}

// NewDocumentStore constructs a *DocumentStore using db,
// which Connect has run Migrations against.
func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Find implements docstore.Store.
func (s *DocumentStore) Find(ctx context.Context, collection string, filter roadtrip.Filter) ([]roadtrip.Document, error) {
	q, err := s.query(ctx, collection, filter)
	if err != nil {
		return nil, err
	}

	var rows []documentRow
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}

	found := make([]roadtrip.Document, 0, len(rows))
	for _, row := range rows {
		doc, err := row.document()
		if err != nil {
			return nil, err
		}

		found = append(found, doc)
	}

	return found, nil
}

// FindOne implements docstore.Store.
func (s *DocumentStore) FindOne(ctx context.Context, collection string, filter roadtrip.Filter) (roadtrip.Document, error) {
	q, err := s.query(ctx, collection, filter)
	if err != nil {
		return nil, err
	}

	var row documentRow
	err = q.Order("id").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no document in %s matches %v", roadtrip.ErrNotExist, collection, filter)
	}
	if err != nil {
		return nil, translate(err)
	}

	return row.document()
}

// Insert implements docstore.Store.
func (s *DocumentStore) Insert(ctx context.Context, collection string, docs ...roadtrip.Document) error {
	if len(docs) == 0 {
		return nil
	}

	rows := make([]documentRow, len(docs))
	for i, doc := range docs {
		if doc == nil {
			return fmt.Errorf("%w: nil document", roadtrip.ErrNotValid)
		}

		b, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("%w: %s", roadtrip.ErrNotValid, err)
		}

		rows[i] = documentRow{Collection: collection, Body: datatypes.JSON(b)}
	}

	return translate(s.db.WithContext(ctx).Create(&rows).Error)
}

// Delete implements docstore.Store.
func (s *DocumentStore) Delete(ctx context.Context, collection string, filter roadtrip.Filter) (int64, error) {
	q, err := s.query(ctx, collection, filter)
	if err != nil {
		return 0, err
	}

	res := q.Delete(&documentRow{})
	if res.Error != nil {
		return 0, translate(res.Error)
	}

	return res.RowsAffected, nil
}

// Count implements docstore.Store.
func (s *DocumentStore) Count(ctx context.Context, collection string, filter roadtrip.Filter) (int64, error) {
	q, err := s.query(ctx, collection, filter)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, translate(err)
	}

	return n, nil
}

// Close implements docstore.Store.
func (s *DocumentStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// query scopes a statement to the rows of collection matching filter.
func (s *DocumentStore) query(ctx context.Context, collection string, filter roadtrip.Filter) (*gorm.DB, error) {
	q := s.db.WithContext(ctx).Model(&documentRow{}).Where("collection = ?", collection)

	keys := make([]string, 0, len(filter))
	for key := range filter {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path, err := jsonPath(key)
		if err != nil {
			return nil, err
		}

		vars, err := json.Marshal(map[string]any{"v": filter[key]})
		if err != nil {
			return nil, fmt.Errorf("%w: filter on %s: %s", roadtrip.ErrNotValid, key, err)
		}

		q = q.Where("jsonb_path_exists(body, ?::jsonpath, ?::jsonb)", path, string(vars))
	}

	return q, nil
}

// jsonPath builds the SQL/JSON path predicate selecting documents whose field at key equals $v.
//
// Paths run in lax mode, which unwraps arrays along the way,
// e.g., "stops.stopId" becomes:
//
//	$."stops"."stopId" ? (@ == $v)
func jsonPath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `"\`) {
		return "", fmt.Errorf("%w: filter key %q", roadtrip.ErrNotValid, key)
	}

	var b strings.Builder
	b.WriteString("$")
	for _, seg := range strings.Split(key, ".") {
		if seg == "" {
			return "", fmt.Errorf("%w: filter key %q", roadtrip.ErrNotValid, key)
		}

		b.WriteString(`."`)
		b.WriteString(seg)
		b.WriteString(`"`)
	}
	b.WriteString(" ? (@ == $v)")

	return b.String(), nil
}
