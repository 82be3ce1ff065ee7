package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/go-cmp/cmp"
)

// UpdateRequestStatus captures the moderation state. Pending is the only
// non-terminal state.
type UpdateRequestStatus string

const (
	UpdateRequestStatusPending  UpdateRequestStatus = "pending"
	UpdateRequestStatusApproved UpdateRequestStatus = "approved"
	UpdateRequestStatusRejected UpdateRequestStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s UpdateRequestStatus) Valid() bool {
	switch s {
	case UpdateRequestStatusPending, UpdateRequestStatusApproved, UpdateRequestStatusRejected:
		return true
	}
	return false
}

// FieldSet is an untrusted, field-keyed JSON object. Values keep whatever JSON
// type the client sent (string, float64, bool, nil, nested map or slice) and
// are only interpreted when merged onto a record at approval time.
type FieldSet map[string]interface{}

// Value stores the set as JSONB.
func (f FieldSet) Value() (driver.Value, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(f)
}

// Scan reads a JSONB column.
func (f *FieldSet) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*f = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("field set: unsupported source type %T", src)
	}
	set := FieldSet{}
	if err := json.Unmarshal(raw, &set); err != nil {
		return fmt.Errorf("field set: %w", err)
	}
	*f = set
	return nil
}

// Keys returns the field names in lexical order.
func (f FieldSet) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FieldChange is one proposed change.
type FieldChange struct {
	Field string      `json:"field"`
	Old   interface{} `json:"old"`
	New   interface{} `json:"new"`
}

// DiffFieldSets lists the newData fields whose value is not deeply equal to
// the matching oldData value. A field missing from oldData counts as changed.
func DiffFieldSets(oldData, newData FieldSet) []FieldChange {
	changes := make([]FieldChange, 0, len(newData))
	for _, key := range newData.Keys() {
		next := newData[key]
		prev, ok := oldData[key]
		if ok && cmp.Equal(prev, next) {
			continue
		}
		changes = append(changes, FieldChange{Field: key, Old: prev, New: next})
	}
	return changes
}

// UpdateRequest is a proposed correction to one alumni record.
type UpdateRequest struct {
	ID          string              `db:"id" json:"id"`
	RollNumber  string              `db:"roll_number" json:"rollNumber"`
	OldData     FieldSet            `db:"old_data" json:"oldData"`
	NewData     FieldSet            `db:"new_data" json:"newData"`
	Status      UpdateRequestStatus `db:"status" json:"status"`
	SubmittedAt time.Time           `db:"submitted_at" json:"submittedAt"`
	ReviewedAt  *time.Time          `db:"reviewed_at" json:"reviewedAt,omitempty"`
	ReviewedBy  *string             `db:"reviewed_by" json:"reviewedBy,omitempty"`
	Notes       *string             `db:"notes" json:"notes,omitempty"`
}

// UpdateRequestFilter constrains listing queries. An empty Status lists all.
type UpdateRequestFilter struct {
	Status UpdateRequestStatus
	Limit  int
	Offset int
}
