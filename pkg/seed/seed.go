// Package seed performs the version-gated first-run population of the
// reference store from bundled static data.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"flightbag/pkg/store"
)

// Version gates the bootstrap. Bump it when the bundled dataset changes;
// EnsureSeeded re-runs only when the stored version differs.
const Version = "2026.08"

const metaKey = "seed_version"

// EnsureSeeded populates the store with the bundled airports and navaids if
// it has not been seeded at the current version. Idempotent; meant to be
// called once at startup, outside the store's steady-state behavior.
func EnsureSeeded(ctx context.Context, st store.Store) error {
	if v, ok := st.GetMeta(ctx, metaKey); ok && v == Version {
		slog.Debug("Reference data already seeded", "version", v)
		return nil
	}

	airports := Airports()
	if err := st.UpsertAirports(ctx, airports); err != nil {
		return fmt.Errorf("seed airports: %w", err)
	}
	navaids := Navaids()
	for _, n := range navaids {
		if err := st.UpsertNavaid(ctx, n); err != nil {
			return fmt.Errorf("seed navaid %s: %w", n.Ident, err)
		}
	}

	if err := st.SetMeta(ctx, metaKey, Version); err != nil {
		return fmt.Errorf("seed version: %w", err)
	}

	slog.Info("Reference data seeded", "version", Version, "airports", len(airports), "navaids", len(navaids))
	return nil
}
