package formstate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formstate/pkg/activity"
)

// PopulateFromStore replaces the fields with the JSON object stored under key
// and renames the form to key. A missing key yields an empty form. Without a
// configured store the call does nothing.
func (f *FormState) PopulateFromStore(ctx context.Context, key string) error {
	if f.cfg.store == nil {
		return nil
	}
	raw, ok, err := f.cfg.store.Get(ctx, key)
	f.cfg.logger.LogEvent(LogEvent{Kind: "store.get", Form: f.name, Key: key, Err: err})
	if err != nil {
		return fmt.Errorf("formstate: populate %q: %w", key, err)
	}
	if !ok || raw == "" {
		raw = "{}"
	}

	var fields map[string]string
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return fmt.Errorf("formstate: populate %q: decode: %w", key, err)
	}
	f.replaceFields(fields)
	f.name = key
	f.emit(activity.BuildFormRestoredEvent(f.eventInput(activity.FormEventInput{
		Key:    key,
		Fields: f.Fields(),
	})))
	return nil
}

// PersistToStore writes the fields as JSON under the form name. Without a
// configured store the call does nothing.
func (f *FormState) PersistToStore(ctx context.Context) error {
	if f.cfg.store == nil {
		return nil
	}
	payload, err := f.MarshalFields()
	if err != nil {
		return fmt.Errorf("formstate: persist %q: encode: %w", f.name, err)
	}
	err = f.cfg.store.Set(ctx, f.name, string(payload))
	f.cfg.logger.LogEvent(LogEvent{Kind: "store.set", Form: f.name, Key: f.name, Err: err})
	if err != nil {
		return fmt.Errorf("formstate: persist %q: %w", f.name, err)
	}
	f.emit(activity.BuildFormPersistedEvent(f.eventInput(activity.FormEventInput{Key: f.name})))
	return nil
}

// MarshalFields returns the JSON encoding used for persistence. Keys are
// sorted, so equal field maps encode to identical bytes. HTML characters are
// written raw, as JSON.stringify writes them.
func (f *FormState) MarshalFields() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(f.fields); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
