package docstore

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/npsdata/bqfirestoresync/internal/common/retry"
)

// WriteSession queues docs for writing, waits until every write has settled and returns the documents
// that could not be written together with an error describing why.
type WriteSession func(ctx context.Context, docs []Document) ([]Document, error)

// WriteWithRetry writes docs through successive sessions. Each session after the first only carries the
// documents the previous one failed to write, and is started once policy's backoff has elapsed.
// Writes that eventually succeed are invisible to the caller; the error of the final session is
// returned if policy gives up first. Documents sharing an id are collapsed into the last of them
// before the first session, since a session accepts a single write per document.
func WriteWithRetry(ctx context.Context, docs []Document, policy retry.Policy, session WriteSession) error {
	if len(docs) == 0 {
		return nil
	}
	pending := lastWriteWins(docs)
	if collapsed := len(docs) - len(pending); collapsed > 0 {
		log.Debugf("Collapsed %d writes to documents that appear more than once", collapsed)
	}
	return policy.Do(ctx, func() error {
		failed, err := session(ctx, pending)
		if err == nil {
			return nil
		}
		if len(failed) > 0 {
			log.Warnf("%d of %d documents failed to write", len(failed), len(pending))
			pending = failed
		}
		return err
	})
}

// lastWriteWins drops every document whose id appears again later in docs. Each surviving document
// keeps the position of the first write to its id.
func lastWriteWins(docs []Document) []Document {
	positions := make(map[string]int, len(docs))
	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if i, ok := positions[doc.ID]; ok {
			out[i] = doc
			continue
		}
		positions[doc.ID] = len(out)
		out = append(out, doc)
	}
	return out
}
