package intake

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ParseBatch splits a pasted blob into non-blank lines and parses each one.
// Failure isolation is a hard guarantee: a line that panics is recorded in
// Errors with its 1-based line number and never aborts the batch, and no
// failure of any kind propagates to the caller. Output order always matches
// input line order, including on the parallel path (Config.Workers > 1).
func (p *Parser) ParseBatch(ctx context.Context, blob string) BatchResult {
	lines := splitLines(blob)
	res := BatchResult{TotalLines: len(lines)}
	if len(lines) == 0 {
		return res
	}

	if p.cfg.Workers > 1 {
		return p.parseBatchParallel(ctx, lines, res)
	}

	for i, line := range lines {
		contact, ok, err := p.safeParseLine(line)
		if err != nil {
			res.Errors = append(res.Errors, LineError{Line: i + 1, Message: err.Error()})
			continue
		}
		if !ok {
			continue
		}
		res.Contacts = append(res.Contacts, contact)
	}
	res.SuccessfullyParsed = len(res.Contacts)
	return res
}

// lineOutcome carries one line's result back from a worker.
type lineOutcome struct {
	contact Contact
	ok      bool
	err     error
}

// parseBatchParallel fans lines out over a bounded worker group. Each worker
// writes to its own index in a pre-sized slice, so aggregation order equals
// input order regardless of scheduling. A cancelled context turns the
// unprocessed lines into line errors so the batch accounting still balances.
func (p *Parser) parseBatchParallel(ctx context.Context, lines []string, res BatchResult) BatchResult {
	outcomes := make([]lineOutcome, len(lines))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i] = lineOutcome{err: err}
				return nil
			}
			contact, ok, err := p.safeParseLine(line)
			outcomes[i] = lineOutcome{contact: contact, ok: ok, err: err}
			return nil
		})
	}
	// Workers never return errors; failures travel through outcomes.
	_ = g.Wait()

	for i, o := range outcomes {
		if o.err != nil {
			res.Errors = append(res.Errors, LineError{Line: i + 1, Message: o.err.Error()})
			continue
		}
		if !o.ok {
			continue
		}
		res.Contacts = append(res.Contacts, o.contact)
	}
	res.SuccessfullyParsed = len(res.Contacts)
	return res
}

// safeParseLine contains any panic raised while parsing a single line.
func (p *Parser) safeParseLine(line string) (contact Contact, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			contact, ok = Contact{}, false
			err = fmt.Errorf("parsing line: %v", r)
		}
	}()
	contact, ok = p.parseLineFn(line)
	return contact, ok, nil
}
