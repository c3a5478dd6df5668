package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	eventbus "github.com/hanpama/graphshape/internal/eventbus"
	events "github.com/hanpama/graphshape/internal/events"
	"github.com/hanpama/graphshape/internal/operation"
	reqid "github.com/hanpama/graphshape/internal/reqid"
	"github.com/hanpama/graphshape/internal/selectionset"
)

// Result is the typed outcome of a fetch. HasData is false when the server
// returned no data; Errors may accompany partial data.
type Result[D selectionset.Shape] struct {
	Data       D
	HasData    bool
	Errors     []GraphQLError
	Extensions map[string]any
}

// Fetch sends op through t and decodes the data member as op's root shape.
//
// Automatically persisted documents are first sent by hash only; when the
// server answers PersistedQueryNotFound the same body is sent once more with
// the document text added. A persisted-only document the server does not
// know fails with ErrPersistedQueryNotFound.
func Fetch[D selectionset.Shape](ctx context.Context, t Transport, op *operation.Operation[D]) (result *Result[D], err error) {
	ctx, _ = reqid.Ensure(ctx)
	doc := op.Document()
	log := loggerOf(t).With(zap.String("operation", op.Name()), zap.Stringer("mode", doc.Mode))

	start := time.Now()
	attempts := 0
	eventbus.Publish(ctx, events.FetchStart{
		OperationName: op.Name(),
		OperationType: string(op.Type()),
		Mode:          doc.Mode.String(),
		Identifier:    doc.OperationIdentifier,
	})
	defer func() {
		var gqlErrs []error
		if result != nil {
			for _, e := range result.Errors {
				gqlErrs = append(gqlErrs, e)
			}
		}
		eventbus.Publish(ctx, events.FetchFinish{
			OperationName: op.Name(),
			OperationType: string(op.Type()),
			Mode:          doc.Mode.String(),
			Attempts:      attempts,
			Errors:        gqlErrs,
			Err:           err,
			Duration:      time.Since(start),
		})
	}()

	body, err := op.Request(false).Marshal()
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	attempts++
	resp, err := t.Send(ctx, body)
	if err != nil {
		return nil, err
	}

	if IsPersistedQueryNotFound(resp.Raw) {
		switch doc.Mode {
		case operation.ModeAutomaticallyPersisted:
			log.Debug("persisted query not found; retrying with document")
			if body, err = sjson.SetBytes(body, "query", doc.Definition); err != nil {
				return nil, fmt.Errorf("encode request: %w", err)
			}
			attempts++
			if resp, err = t.Send(ctx, body); err != nil {
				return nil, err
			}
		case operation.ModePersistedOnly:
			err = fmt.Errorf("%w: %s", ErrPersistedQueryNotFound, doc.OperationIdentifier)
			return nil, err
		}
	}

	result = &Result[D]{Errors: resp.Errors, Extensions: resp.Extensions}
	if resp.Data == nil {
		log.Debug("response carried no data", zap.Int("errors", len(resp.Errors)))
		return result, nil
	}
	data, err := op.DecodeData(resp.Data)
	if err != nil {
		return result, fmt.Errorf("decode %s data: %w", op.Name(), err)
	}
	result.Data = data
	result.HasData = true
	return result, nil
}

func hasQuery(body []byte) bool {
	return gjson.GetBytes(body, "query").String() != ""
}

func loggerOf(t Transport) *zap.Logger {
	if l, ok := t.(interface{ Logger() *zap.Logger }); ok && l.Logger() != nil {
		return l.Logger()
	}
	return zap.NewNop()
}
