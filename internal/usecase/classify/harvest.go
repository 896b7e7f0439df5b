package classify

import (
	"strings"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/record"
)

// harvestFields is the allowlist of record fields whose string content is
// classified. Nested values are folded to bounded depth with cycle
// protection by record.Fold.
var harvestFields = []string{
	"title", "description", "identifier", "mediatype", "creator",
	"collection", "subject", "tags", "keywords", "topic", "topics",
	"original", "original_url", "archive", "archive_url", "url",
}

// metadataSubfields are the only keys read from a nested metadata object.
var metadataSubfields = []string{"tags", "subject", "keywords", "topic", "topics"}

// linkSubfields are the only keys read from a links object.
var linkSubfields = []string{"archive", "original"}

// harvestText gathers every classifiable string from a record into one
// space-joined blob.
func harvestText(rec record.Record) string {
	var parts []string
	collect := func(v record.Value) {
		record.Fold(v, func(leaf record.Value) {
			if leaf.Kind() == record.KindString && leaf.Str() != "" {
				parts = append(parts, leaf.Str())
			}
		})
	}

	for _, field := range harvestFields {
		if v, ok := rec[field]; ok {
			collect(v)
		}
	}
	if md, ok := rec["metadata"]; ok && md.Kind() == record.KindMap {
		for _, sub := range metadataSubfields {
			if v, ok := md.Fields()[sub]; ok {
				collect(v)
			}
		}
	}
	if links, ok := rec["links"]; ok && links.Kind() == record.KindMap {
		for _, sub := range linkSubfields {
			if v, ok := links.Fields()[sub]; ok {
				collect(v)
			}
		}
	}

	return strings.Join(parts, " ")
}
