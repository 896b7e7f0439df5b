package relevance

import (
	"strings"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/record"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/lexicon"
)

// metadataKeys are the record fields folded into the scored "metadata"
// field.
var metadataKeys = []string{
	"subject", "tags", "keywords", "topic", "topics",
	"collection", "creator", "publisher", "contributor",
}

// fulltextKeys are the record fields that may carry extracted full text.
var fulltextKeys = []string{"fulltext", "text", "ocr"}

// FieldsFor extracts the four scored field texts from a record. Missing
// fields come back empty and score as absent.
func FieldsFor(rec record.Record) map[string]string {
	title := rec.Text("title")
	description := rec.Text("description")

	var meta []string
	for _, key := range metadataKeys {
		if s := rec.Text(key); s != "" {
			meta = append(meta, s)
		}
	}
	if md, ok := rec["metadata"]; ok {
		record.Fold(md, func(leaf record.Value) {
			if leaf.Kind() == record.KindString && leaf.Str() != "" {
				meta = append(meta, leaf.Str())
			}
		})
	}
	metadata := strings.Join(meta, " ")

	var full []string
	for _, key := range fulltextKeys {
		if s := rec.Text(key); s != "" {
			full = append(full, s)
		}
	}

	return map[string]string{
		lexicon.FieldTitle:       title,
		lexicon.FieldDescription: description,
		lexicon.FieldMetadata:    metadata,
		lexicon.FieldFulltext:    strings.Join(full, " "),
	}
}

// DocumentText joins every scored field into one blob, used for token-set
// scoring and embedding input.
func DocumentText(rec record.Record) string {
	fields := FieldsFor(rec)
	parts := make([]string, 0, len(fields))
	for _, name := range []string{
		lexicon.FieldTitle, lexicon.FieldDescription,
		lexicon.FieldMetadata, lexicon.FieldFulltext,
	} {
		if fields[name] != "" {
			parts = append(parts, fields[name])
		}
	}
	return strings.Join(parts, " ")
}
