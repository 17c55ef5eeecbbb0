package store

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/gitwhisperer/whisper/internal/git"
)

// encodeDocument renders the JSON document stored by the key-value backends.
func encodeDocument(r git.CommitRecord) ([]byte, error) {
	doc := NewStoredCommit(r)
	doc.FilesChanged = normalizeFiles(doc.FilesChanged)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "encode commit %s", r.Hash)
	}
	return data, nil
}

func decodeDocument(data []byte) (StoredCommit, error) {
	var doc StoredCommit
	if err := json.Unmarshal(data, &doc); err != nil {
		return StoredCommit{}, errors.Wrap(err, "decode commit document")
	}
	if doc.ID == "" {
		doc.ID = doc.Hash
	}
	doc.FilesChanged = normalizeFiles(doc.FilesChanged)
	return doc, nil
}
